package orders

import (
	"net/http"
	"time"

	"chitrakalakar-app/internal/api/dto"
	"chitrakalakar-app/internal/api/respond"
	ordersvc "chitrakalakar-app/internal/service/orders"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	orders *ordersvc.Service
	log    *zap.Logger
}

func NewHandler(o *ordersvc.Service, log *zap.Logger) *Handler {
	return &Handler{orders: o, log: log}
}

func (h *Handler) Create(c *gin.Context) {
	var body struct {
		ArtistID     string     `json:"artist_id" binding:"required"`
		ArtworkID    *string    `json:"artwork_id"`
		ArtworkTitle string     `json:"artwork_title"`
		Amount       int64      `json:"amount" binding:"required"`
		Notes        *string    `json:"notes"`
		DueDate      *time.Time `json:"due_date"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.BadRequest(c, err.Error())
		return
	}

	o, err := h.orders.Create(c.Request.Context(), ordersvc.CreateInput{
		ArtistID:     body.ArtistID,
		ArtworkID:    body.ArtworkID,
		ArtworkTitle: body.ArtworkTitle,
		CustomerID:   c.GetString("user_id"),
		Amount:       body.Amount,
		Notes:        body.Notes,
		DueDate:      body.DueDate,
	})
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": dto.Order(*o)})
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.orders.ListForCustomer(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": dto.Orders(list)})
}

func (h *Handler) Get(c *gin.Context) {
	o, err := h.orders.Get(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": dto.Order(*o)})
}
