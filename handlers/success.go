package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"visionpay/services/payment"
)

type SuccessHandler struct {
	Confirmation payment.ConfirmationService
}

func NewSuccessHandler(svc payment.ConfirmationService) *SuccessHandler {
	return &SuccessHandler{Confirmation: svc}
}

// PaymentSuccess handles the processor's return redirect.
func (h *SuccessHandler) PaymentSuccess(c *gin.Context) {
	conf, err := h.Confirmation.Confirm(c.Request.Context(), c.Query("session_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conf)
}
