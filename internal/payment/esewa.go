// Package payment builds the signed redirect form consumed by the eSewa
// gateway. The canonical message and the ordered signed field list are part
// of the external contract and must match the gateway byte for byte.
package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"

	"github.com/google/uuid"

	"eliteroadways/internal/domain"
	"eliteroadways/internal/utils"
)

// SignedFieldNames is the fixed, ordered list of field names whose values
// are HMAC-signed. Transmitted verbatim so the gateway can rebuild the
// same message.
const SignedFieldNames = "total_amount,transaction_uuid,product_code"

// Gateway holds the injected signing configuration. The secret never
// appears as a literal anywhere in this package.
type Gateway struct {
	secret      []byte
	productCode string
	formURL     string
	successURL  string
	failureURL  string
}

func NewGateway(secretKey, productCode, formURL, successURL, failureURL string) *Gateway {
	return &Gateway{
		secret:      []byte(secretKey),
		productCode: productCode,
		formURL:     formURL,
		successURL:  successURL,
		failureURL:  failureURL,
	}
}

// Request is the ephemeral signed payment form. It is never persisted.
type Request struct {
	Amount                int64  `json:"amount"`
	TaxAmount             int64  `json:"tax_amount"`
	ProductServiceCharge  int64  `json:"product_service_charge"`
	ProductDeliveryCharge int64  `json:"product_delivery_charge"`
	TotalAmount           int64  `json:"total_amount"`
	TransactionUUID       string `json:"transaction_uuid"`
	ProductCode           string `json:"product_code"`
	SuccessURL            string `json:"success_url"`
	FailureURL            string `json:"failure_url"`
	SignedFieldNames      string `json:"signed_field_names"`
	Signature             string `json:"signature"`
	FormURL               string `json:"form_url"`
}

// FormField is one hidden input of the redirect form, in submission order.
type FormField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Sign computes HMAC-SHA256 over the canonical message
// "total_amount=<T>,transaction_uuid=<U>,product_code=<C>" and encodes the
// digest as Base64. Values are rendered exactly as submitted: no
// whitespace, integer amounts as plain digits.
func (g *Gateway) Sign(totalAmount int64, transactionUUID string) string {
	return g.signMessage(canonicalMessage(utils.FormatAmount(totalAmount), transactionUUID, g.productCode))
}

func (g *Gateway) signMessage(message string) string {
	mac := hmac.New(sha256.New, g.secret)
	mac.Write([]byte(message))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func canonicalMessage(totalAmount, transactionUUID, productCode string) string {
	return "total_amount=" + totalAmount +
		",transaction_uuid=" + transactionUUID +
		",product_code=" + productCode
}

// BuildPaymentRequest assembles a signed form for the given base amount and
// additive charges. A fresh transaction UUID is generated per call; the
// rest is deterministic in its inputs.
func (g *Gateway) BuildPaymentRequest(amount int64, charges domain.Charges) (Request, error) {
	if amount <= 0 {
		return Request{}, domain.ValidationError{Field: "amount", Msg: "must be greater than zero"}
	}
	total := charges.Total(amount)
	if total <= 0 {
		return Request{}, domain.ValidationError{Field: "total_amount", Msg: "must be greater than zero"}
	}

	txn := uuid.NewString()
	return Request{
		Amount:                amount,
		TaxAmount:             charges.Tax,
		ProductServiceCharge:  charges.Service,
		ProductDeliveryCharge: charges.Delivery,
		TotalAmount:           total,
		TransactionUUID:       txn,
		ProductCode:           g.productCode,
		SuccessURL:            g.successURL,
		FailureURL:            g.failureURL,
		SignedFieldNames:      SignedFieldNames,
		Signature:             g.Sign(total, txn),
		FormURL:               g.formURL,
	}, nil
}

// FormFields returns the hidden form inputs in the order the gateway's
// sample form lists them.
func (r Request) FormFields() []FormField {
	return []FormField{
		{Name: "amount", Value: utils.FormatAmount(r.Amount)},
		{Name: "tax_amount", Value: utils.FormatAmount(r.TaxAmount)},
		{Name: "product_service_charge", Value: utils.FormatAmount(r.ProductServiceCharge)},
		{Name: "product_delivery_charge", Value: utils.FormatAmount(r.ProductDeliveryCharge)},
		{Name: "total_amount", Value: utils.FormatAmount(r.TotalAmount)},
		{Name: "transaction_uuid", Value: r.TransactionUUID},
		{Name: "product_code", Value: r.ProductCode},
		{Name: "success_url", Value: r.SuccessURL},
		{Name: "failure_url", Value: r.FailureURL},
		{Name: "signed_field_names", Value: r.SignedFieldNames},
		{Name: "signature", Value: r.Signature},
	}
}

// CanonicalMessage re-renders the signed message for this request, useful
// for verification and tests.
func (r Request) CanonicalMessage() string {
	return canonicalMessage(utils.FormatAmount(r.TotalAmount), r.TransactionUUID, r.ProductCode)
}

// Verify recomputes the signature over the request's signed fields and
// compares in constant time.
func (g *Gateway) Verify(r Request) bool {
	expected := g.signMessage(r.CanonicalMessage())
	return hmac.Equal([]byte(expected), []byte(strings.TrimSpace(r.Signature)))
}
