package artist

import (
	"net/http"
	"time"

	"chitrakalakar-app/internal/api/dto"
	"chitrakalakar-app/internal/api/respond"
	"chitrakalakar-app/internal/domain/orders"
	"chitrakalakar-app/internal/service/dashboard"
	"chitrakalakar-app/internal/service/exhibitions"
	ordersvc "chitrakalakar-app/internal/service/orders"
	"chitrakalakar-app/internal/service/portfolio"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the artist workspace. Every route sits behind
// RequireApprovedArtist, so user_id always names an approved, active artist.
type Handler struct {
	portfolio *portfolio.Service
	orders    *ordersvc.Service
	schedule  *exhibitions.Scheduler
	dashboard *dashboard.Service
	log       *zap.Logger
}

func NewHandler(p *portfolio.Service, o *ordersvc.Service, s *exhibitions.Scheduler, d *dashboard.Service, log *zap.Logger) *Handler {
	return &Handler{portfolio: p, orders: o, schedule: s, dashboard: d, log: log}
}

type artworkRequest struct {
	Title       string  `json:"title" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Price       int64   `json:"price"`
	Image       string  `json:"image" binding:"required"`
	Description *string `json:"description"`
}

func (r artworkRequest) input() portfolio.ArtworkInput {
	return portfolio.ArtworkInput{
		Title:       r.Title,
		Category:    r.Category,
		Price:       r.Price,
		Image:       r.Image,
		Description: r.Description,
	}
}

func (h *Handler) Dashboard(c *gin.Context) {
	sum, err := h.dashboard.Artist(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (h *Handler) ListPortfolio(c *gin.Context) {
	list, err := h.portfolio.ListForArtist(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"artworks": dto.Artworks(list)})
}

func (h *Handler) CreateArtwork(c *gin.Context) {
	var req artworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err.Error())
		return
	}
	a, err := h.portfolio.Submit(c.Request.Context(), c.GetString("user_id"), req.input())
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Artwork submitted for approval",
		"artwork": dto.Artwork(*a),
	})
}

func (h *Handler) UpdateArtwork(c *gin.Context) {
	var req artworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err.Error())
		return
	}
	a, err := h.portfolio.Update(c.Request.Context(), c.GetString("user_id"), c.Param("id"), req.input())
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"artwork": dto.Artwork(*a)})
}

func (h *Handler) DeleteArtwork(c *gin.Context) {
	if err := h.portfolio.Delete(c.Request.Context(), c.GetString("user_id"), c.Param("id")); err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) ListOrders(c *gin.Context) {
	ctx := c.Request.Context()
	artistID := c.GetString("user_id")

	list, err := h.orders.ListForArtist(ctx, artistID, orders.Status(c.Query("status")))
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	earned, err := h.orders.Earnings(ctx, artistID)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": dto.Orders(list), "total_earnings": earned})
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.BadRequest(c, err.Error())
		return
	}
	o, err := h.orders.UpdateStatus(c.Request.Context(), c.GetString("user_id"), c.Param("id"), orders.Status(body.Status))
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": dto.Order(*o)})
}

func (h *Handler) ListExhibitions(c *gin.Context) {
	list, err := h.schedule.ListForArtist(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exhibitions": dto.Exhibitions(list)})
}

func (h *Handler) CreateExhibition(c *gin.Context) {
	var body struct {
		Name        string   `json:"name" binding:"required"`
		Description *string  `json:"description"`
		StartDate   string   `json:"start_date" binding:"required"`
		EndDate     string   `json:"end_date"`
		ArtworkIDs  []string `json:"artwork_ids"`
		DaysPaid    int      `json:"days_paid"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.BadRequest(c, err.Error())
		return
	}
	start, ok := parseDate(body.StartDate)
	if !ok {
		respond.BadRequest(c, "Invalid start_date")
		return
	}
	var end time.Time
	if body.EndDate != "" {
		if end, ok = parseDate(body.EndDate); !ok {
			respond.BadRequest(c, "Invalid end_date")
			return
		}
	}

	e, err := h.schedule.Create(c.Request.Context(), exhibitions.CreateInput{
		ArtistID:    c.GetString("user_id"),
		Name:        body.Name,
		Description: body.Description,
		StartDate:   start,
		EndDate:     end,
		ArtworkIDs:  body.ArtworkIDs,
		DaysPaid:    body.DaysPaid,
	})
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":    "Exhibition submitted for approval",
		"exhibition": dto.Exhibition(*e),
		"fees":       e.Fees,
	})
}

// parseDate accepts RFC 3339 timestamps and plain calendar dates (UTC).
func parseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
