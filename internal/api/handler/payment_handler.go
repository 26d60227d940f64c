package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chainboard/job-board-api/internal/core/ports"
)

type PaymentHandler struct {
	paymentService ports.PaymentService
}

func NewPaymentHandler(paymentService ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

type confirmPaymentRequest struct {
	JobID  string `json:"jobId"           validate:"required"`
	TxHash string `json:"transactionHash" validate:"required"`
}

type confirmPaymentResponse struct {
	Message string      `json:"message"`
	Job     jobResponse `json:"job"`
}

// Confirm verifies a claimed fee payment against the ledger and, if valid,
// marks the job as live.
//
// @Summary      Confirm a job's fee payment
// @Tags         payment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      confirmPaymentRequest  true  "Payment claim"
// @Success      200   {object}  confirmPaymentResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /payment/confirm-payment [post]
func (h *PaymentHandler) Confirm(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	var req confirmPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	// Missing fields map to domain.ErrMissingFields inside the service, so
	// no c.Validate here: the verifier owns that check and its error text.
	job, err := h.paymentService.ConfirmPayment(c.Request().Context(), ports.ConfirmPaymentInput{
		JobID:  req.JobID,
		TxHash: req.TxHash,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, confirmPaymentResponse{
		Message: "payment confirmed",
		Job:     toJobResponse(job),
	})
}
