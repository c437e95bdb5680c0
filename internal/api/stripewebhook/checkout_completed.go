package stripewebhooks

import (
	"errors"
	"net/http"

	"chitrakalakar-app/internal/service/payments"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"go.uber.org/zap"
)

// handleCheckoutSessionCompleted runs the same reconciliation as the status
// poll. Sessions this service never opened are acknowledged so the provider
// stops retrying; anything else answers 500 to get a retry.
func (h *Handler) handleCheckoutSessionCompleted(c *gin.Context, session *stripe.CheckoutSession) {
	if session.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session id missing"})
		return
	}

	outcome, err := h.bridge.Reconcile(c.Request.Context(), session.ID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"status": "received", "outcome": outcome})
	case errors.Is(err, payments.ErrUnknownSession):
		h.log.Info("webhook for unknown checkout session", zap.String("session_id", session.ID))
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
	default:
		h.log.Error("webhook reconciliation failed", zap.String("session_id", session.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reconciliation failed"})
	}
}
