package public

import (
	"net/http"
	"strconv"

	"chitrakalakar-app/internal/api/dto"
	"chitrakalakar-app/internal/api/respond"
	domex "chitrakalakar-app/internal/domain/exhibitions"
	"chitrakalakar-app/internal/service/dashboard"
	"chitrakalakar-app/internal/service/exhibitions"
	"chitrakalakar-app/internal/service/moderation"
	"chitrakalakar-app/internal/service/portfolio"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultArtworkLimit  = 50
	maxArtworkLimit      = 200
	featuredArtistsLimit = 6
)

// Handler serves the unauthenticated marketplace pages. It only ever shows
// records that passed moderation.
type Handler struct {
	portfolio *portfolio.Service
	schedule  *exhibitions.Scheduler
	gate      *moderation.Service
	dashboard *dashboard.Service
	log       *zap.Logger
}

func NewHandler(p *portfolio.Service, s *exhibitions.Scheduler, g *moderation.Service, d *dashboard.Service, log *zap.Logger) *Handler {
	return &Handler{portfolio: p, schedule: s, gate: g, dashboard: d, log: log}
}

func (h *Handler) Stats(c *gin.Context) {
	sum, err := h.dashboard.Public(c.Request.Context())
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (h *Handler) Exhibitions(c *gin.Context) {
	list, err := h.schedule.ListPublic(c.Request.Context())
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	h.writeExhibitions(c, list)
}

func (h *Handler) ArchivedExhibitions(c *gin.Context) {
	list, err := h.schedule.ListArchived(c.Request.Context())
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	h.writeExhibitions(c, list)
}

// writeExhibitions adds the artist name to each listed exhibition.
func (h *Handler) writeExhibitions(c *gin.Context, list []domex.Exhibition) {
	ids := make([]string, 0, len(list))
	for _, e := range list {
		ids = append(ids, e.ArtistID)
	}
	names, err := h.dashboard.ArtistNames(c.Request.Context(), ids)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	out := dto.Exhibitions(list)
	for i := range out {
		out[i].ArtistName = names[out[i].ArtistID]
	}
	c.JSON(http.StatusOK, gin.H{"exhibitions": out})
}

func (h *Handler) Exhibition(c *gin.Context) {
	ctx := c.Request.Context()
	e, err := h.schedule.GetPublic(ctx, c.Param("id"))
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	aws, err := h.schedule.Artworks(ctx, *e)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	names, err := h.dashboard.ArtistNames(ctx, []string{e.ArtistID})
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	out := dto.Exhibition(*e)
	out.ArtistName = names[e.ArtistID]
	out.Artworks = dto.Artworks(aws)
	c.JSON(http.StatusOK, gin.H{"exhibition": out})
}

func (h *Handler) Artworks(c *gin.Context) {
	limit := defaultArtworkLimit
	if q := c.Query("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n <= 0 {
			respond.BadRequest(c, "Invalid limit")
			return
		}
		limit = min(n, maxArtworkLimit)
	}
	list, err := h.portfolio.ListPublic(c.Request.Context(), c.Query("category"), limit)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"artworks": dto.Artworks(list)})
}

func (h *Handler) Artwork(c *gin.Context) {
	a, err := h.portfolio.GetPublic(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"artwork": dto.Artwork(*a)})
}

func (h *Handler) FeaturedArtists(c *gin.Context) {
	list, err := h.gate.FeaturedArtists(c.Request.Context(), featuredArtistsLimit)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	out := make([]dto.PublicArtistDTO, 0, len(list))
	for _, a := range list {
		counts, err := h.dashboard.ArtistCounts(c.Request.Context(), a.ID)
		if err != nil {
			respond.Error(c, h.log, err)
			return
		}
		card := dto.PublicArtist(a)
		card.ArtworkCount = counts.ArtworkCount
		card.CompletedProjects = counts.CompletedProjects
		out = append(out, card)
	}
	c.JSON(http.StatusOK, gin.H{"artists": out})
}
