package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	resdto "minute-market/internal/handler/dto/response"
	"minute-market/internal/handler/httperr"
	"minute-market/internal/pkg/errs"
	"minute-market/internal/usecase/commands"
)

const (
	headerStripeSignature = "Stripe-Signature"
	maxWebhookBody        = 1 << 20
)

type WebhookHandler struct {
	reconciler commands.PaymentReconciler
}

func NewWebhookHandler(reconciler commands.PaymentReconciler) *WebhookHandler {
	return &WebhookHandler{reconciler: reconciler}
}

// @Summary Payment provider webhook
// @Description Verified checkout events. Non-2xx responses make the provider redeliver.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Signature"
// @Success 200 {object} resdto.WebhookResponse
// @Failure 400 {object} httperr.Response
// @Router /webhooks/payments [post]
func (h *WebhookHandler) Payments(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		httperr.FromError(c, errs.Mark(err, ErrInvalidBody))
		return
	}
	outcome, err := h.reconciler.HandleWebhook(c.Request.Context(), payload, c.GetHeader(headerStripeSignature))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.WebhookResponse{Received: true, Outcome: string(outcome)})
}
