package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eliteroadways/internal/domain"
	"eliteroadways/internal/http/middleware"
	"eliteroadways/internal/utils"
)

type initiatePaymentRequest struct {
	Amount         int64 `json:"amount" binding:"required"`
	TaxAmount      int64 `json:"taxAmount"`
	ServiceCharge  int64 `json:"serviceCharge"`
	DeliveryCharge int64 `json:"deliveryCharge"`
}

// POST /api/payments/initiate
//
// Returns the signed field set the frontend posts to the eSewa form
// endpoint. Nothing is persisted; a failed build blocks the redirect.
func InitiatePayment(c *gin.Context) {
	var req initiatePaymentRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	charges := domain.Charges{
		Tax:      req.TaxAmount,
		Service:  req.ServiceCharge,
		Delivery: req.DeliveryCharge,
	}
	paymentReq, err := deps.Gateway.BuildPaymentRequest(req.Amount, charges)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "payment", "initiate",
		"transaction_uuid="+paymentReq.TransactionUUID)
	c.JSON(http.StatusOK, gin.H{
		"formUrl": paymentReq.FormURL,
		"fields":  paymentReq.FormFields(),
		"request": paymentReq,
	})
}

// GET /api/payments/success
//
// TODO: re-verify the gateway's returned signature (or call the eSewa
// status-check API) before treating the transaction as paid; today the
// redirect alone is trusted.
func PaymentSuccess(c *gin.Context) {
	utils.LogEvent(middleware.GetRequestID(c), "payment", "success_redirect", "data="+c.Query("data"))
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// GET /api/payments/failure
func PaymentFailure(c *gin.Context) {
	utils.LogEvent(middleware.GetRequestID(c), "payment", "failure_redirect", "")
	c.JSON(http.StatusOK, gin.H{"status": "failure"})
}
