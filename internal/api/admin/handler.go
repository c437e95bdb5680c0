package admin

import (
	"net/http"

	"chitrakalakar-app/internal/api/dto"
	"chitrakalakar-app/internal/api/respond"
	"chitrakalakar-app/internal/domain/orders"
	"chitrakalakar-app/internal/domain/users"
	"chitrakalakar-app/internal/service/dashboard"
	"chitrakalakar-app/internal/service/exhibitions"
	"chitrakalakar-app/internal/service/moderation"
	ordersvc "chitrakalakar-app/internal/service/orders"
	"chitrakalakar-app/internal/service/payments"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	gate      *moderation.Service
	schedule  *exhibitions.Scheduler
	dashboard *dashboard.Service
	payments  *payments.Bridge
	orders    *ordersvc.Service
	log       *zap.Logger
}

func NewHandler(gate *moderation.Service, schedule *exhibitions.Scheduler, dash *dashboard.Service, pay *payments.Bridge, o *ordersvc.Service, log *zap.Logger) *Handler {
	return &Handler{gate: gate, schedule: schedule, dashboard: dash, payments: pay, orders: o, log: log}
}

func (h *Handler) bindDecision(c *gin.Context, idKey string) (string, bool, bool) {
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		respond.BadRequest(c, "Malformed JSON")
		return "", false, false
	}
	id, _ := raw[idKey].(string)
	approved, ok := raw["approved"].(bool)
	if id == "" || !ok {
		respond.BadRequest(c, idKey+" and approved are required")
		return "", false, false
	}
	return id, approved, true
}

func (h *Handler) Dashboard(c *gin.Context) {
	sum, err := h.dashboard.Admin(c.Request.Context())
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (h *Handler) PendingArtists(c *gin.Context) {
	list, err := h.gate.PendingArtists(c.Request.Context())
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	out := make([]dto.AccountDTO, 0, len(list))
	for _, a := range list {
		out = append(out, dto.Account(a))
	}
	c.JSON(http.StatusOK, gin.H{"artists": out})
}

func (h *Handler) PendingArtworks(c *gin.Context) {
	list, err := h.gate.PendingArtworks(c.Request.Context())
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"artworks": dto.Artworks(list)})
}

func (h *Handler) PendingExhibitions(c *gin.Context) {
	list, err := h.gate.PendingExhibitions(c.Request.Context())
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exhibitions": dto.Exhibitions(list)})
}

func (h *Handler) ListUsers(c *gin.Context) {
	var role users.Role
	if q := c.Query("role"); q != "" {
		r, ok := users.ParseRole(q)
		if !ok {
			respond.BadRequest(c, "Invalid role")
			return
		}
		role = r
	}
	list, err := h.gate.Accounts(c.Request.Context(), role)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	out := make([]dto.AccountDTO, 0, len(list))
	for _, a := range list {
		out = append(out, dto.Account(a))
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

func (h *Handler) ApproveArtist(c *gin.Context) {
	id, approved, ok := h.bindDecision(c, "artist_id")
	if !ok {
		return
	}
	d, err := h.gate.DecideArtist(c.Request.Context(), id, approved)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "decision": d})
}

func (h *Handler) ApproveArtwork(c *gin.Context) {
	id, approved, ok := h.bindDecision(c, "artwork_id")
	if !ok {
		return
	}
	d, err := h.gate.DecideArtwork(c.Request.Context(), id, approved)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "decision": d})
}

func (h *Handler) ApproveExhibition(c *gin.Context) {
	id, approved, ok := h.bindDecision(c, "exhibition_id")
	if !ok {
		return
	}
	d, err := h.gate.DecideExhibition(c.Request.Context(), id, approved)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "decision": d})
}

func (h *Handler) ArchiveExhibition(c *gin.Context) {
	e, err := h.schedule.Archive(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "exhibition": dto.Exhibition(*e)})
}

func (h *Handler) ToggleUserStatus(c *gin.Context) {
	acc, err := h.gate.ToggleActive(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "is_active": acc.IsActive})
}

func (h *Handler) FeatureArtist(c *gin.Context) {
	var body struct {
		ArtistID string `json:"artist_id" binding:"required"`
		Featured *bool  `json:"featured"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.BadRequest(c, err.Error())
		return
	}
	featured := true
	if body.Featured != nil {
		featured = *body.Featured
	}
	if err := h.gate.SetFeatured(c.Request.Context(), body.ArtistID, featured); err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "is_featured": featured})
}

func (h *Handler) ListPayments(c *gin.Context) {
	list, err := h.payments.History(c.Request.Context(), "")
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": dto.Payments(list)})
}

func (h *Handler) ListOrders(c *gin.Context) {
	list, err := h.orders.ListAll(c.Request.Context(), orders.Status(c.Query("status")))
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": dto.Orders(list)})
}
