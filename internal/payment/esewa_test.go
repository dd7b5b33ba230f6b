package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eliteroadways/internal/domain"
)

const testSecret = "8gBm/:&EnhH.1/q"

func testGateway() *Gateway {
	return NewGateway(testSecret, "EPAYTEST",
		"https://rc-epay.esewa.com.np/api/epay/main/v2/form",
		"http://localhost:5173/success",
		"http://localhost:5173/failure")
}

func TestSignIsDeterministic(t *testing.T) {
	g := testGateway()
	first := g.Sign(1500, "abc-123")
	second := g.Sign(1500, "abc-123")
	assert.Equal(t, first, second, "same inputs must produce the same signature")

	// Independent reference computation over the documented message shape.
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte("total_amount=1500,transaction_uuid=abc-123,product_code=EPAYTEST"))
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	assert.Equal(t, want, first)
}

func TestSignChangesWithEachField(t *testing.T) {
	g := testGateway()
	base := g.Sign(1500, "abc-123")

	assert.NotEqual(t, base, g.Sign(1501, "abc-123"), "amount change must invalidate signature")
	assert.NotEqual(t, base, g.Sign(1500, "abc-124"), "uuid change must invalidate signature")

	other := NewGateway(testSecret, "OTHER", "", "", "")
	assert.NotEqual(t, base, other.Sign(1500, "abc-123"), "product code change must invalidate signature")

	wrongKey := NewGateway("different-secret", "EPAYTEST", "", "", "")
	assert.NotEqual(t, base, wrongKey.Sign(1500, "abc-123"))
}

func TestSignatureIsValidBase64Digest(t *testing.T) {
	g := testGateway()
	raw, err := base64.StdEncoding.DecodeString(g.Sign(1500, "abc-123"))
	require.NoError(t, err)
	assert.Len(t, raw, sha256.Size)
}

func TestBuildPaymentRequest(t *testing.T) {
	g := testGateway()
	req, err := g.BuildPaymentRequest(1500, domain.Charges{})
	require.NoError(t, err)

	assert.Equal(t, int64(1500), req.Amount)
	assert.Equal(t, int64(1500), req.TotalAmount, "zero charges must not change the total")
	assert.NotEmpty(t, req.TransactionUUID)
	assert.Equal(t, "EPAYTEST", req.ProductCode)
	assert.Equal(t, "total_amount,transaction_uuid,product_code", req.SignedFieldNames)
	assert.Equal(t, g.Sign(req.TotalAmount, req.TransactionUUID), req.Signature)
	assert.True(t, g.Verify(req))

	other, err := g.BuildPaymentRequest(1500, domain.Charges{})
	require.NoError(t, err)
	assert.NotEqual(t, req.TransactionUUID, other.TransactionUUID, "transaction id must be fresh per request")
}

func TestBuildPaymentRequestAddsCharges(t *testing.T) {
	g := testGateway()
	req, err := g.BuildPaymentRequest(1500, domain.Charges{Tax: 100, Service: 20, Delivery: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(1625), req.TotalAmount)
	assert.Equal(t, "total_amount=1625,transaction_uuid="+req.TransactionUUID+",product_code=EPAYTEST", req.CanonicalMessage())
}

func TestBuildPaymentRequestRejectsNonPositiveAmount(t *testing.T) {
	g := testGateway()
	for _, amount := range []int64{0, -1, -1500} {
		_, err := g.BuildPaymentRequest(amount, domain.Charges{})
		assert.True(t, domain.IsValidation(err), "amount %d should be rejected", amount)
	}
}

func TestFormFieldsOrderMatchesContract(t *testing.T) {
	g := testGateway()
	req, err := g.BuildPaymentRequest(1500, domain.Charges{})
	require.NoError(t, err)

	fields := req.FormFields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{
		"amount", "tax_amount", "product_service_charge", "product_delivery_charge",
		"total_amount", "transaction_uuid", "product_code",
		"success_url", "failure_url", "signed_field_names", "signature",
	}, names)

	assert.Equal(t, "1500", fields[0].Value)
	assert.Equal(t, "0", fields[1].Value)
	assert.Equal(t, req.Signature, fields[10].Value)
}

func TestVerifyRejectsTamperedRequest(t *testing.T) {
	g := testGateway()
	req, err := g.BuildPaymentRequest(1500, domain.Charges{})
	require.NoError(t, err)

	tampered := req
	tampered.TotalAmount = 1
	assert.False(t, g.Verify(tampered))
}
