package payments

import (
	"net/http"
	"strings"

	"chitrakalakar-app/internal/api/dto"
	"chitrakalakar-app/internal/api/respond"
	"chitrakalakar-app/internal/domain/billing"
	paysvc "chitrakalakar-app/internal/service/payments"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	bridge *paysvc.Bridge
	appURL string
	log    *zap.Logger
}

// NewHandler builds the checkout endpoints. appURL is the fallback return
// origin when a request carries no origin_url.
func NewHandler(bridge *paysvc.Bridge, appURL string, log *zap.Logger) *Handler {
	return &Handler{bridge: bridge, appURL: strings.TrimRight(appURL, "/"), log: log}
}

func (h *Handler) CreateCheckout(c *gin.Context) {
	var body struct {
		OrderType string `json:"order_type" binding:"required"`
		EntityID  string `json:"entity_id"`
		OriginURL string `json:"origin_url"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.BadRequest(c, err.Error())
		return
	}
	origin := strings.TrimRight(body.OriginURL, "/")
	if origin == "" {
		origin = h.appURL
	}

	out, err := h.bridge.StartCheckout(c.Request.Context(), paysvc.CheckoutInput{
		UserID:    c.GetString("user_id"),
		OrderType: billing.OrderType(body.OrderType),
		EntityID:  body.EntityID,
		OriginURL: origin,
	})
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Status reconciles the session before answering, so a buyer returning from
// the provider sees the settled state even if the webhook is late.
func (h *Handler) Status(c *gin.Context) {
	outcome, tx, err := h.bridge.Status(c.Request.Context(), c.GetString("user_id"), c.Param("session_id"))
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"outcome":        outcome,
		"payment_status": tx.PaymentStatus,
		"payment":        dto.Payment(*tx),
	})
}

func (h *Handler) History(c *gin.Context) {
	list, err := h.bridge.History(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": dto.Payments(list)})
}
