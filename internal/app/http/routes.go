package routes

import (
	adminapi "chitrakalakar-app/internal/api/admin"
	artistapi "chitrakalakar-app/internal/api/artist"
	authapi "chitrakalakar-app/internal/api/auth"
	ordersapi "chitrakalakar-app/internal/api/orders"
	paymentsapi "chitrakalakar-app/internal/api/payments"
	publicapi "chitrakalakar-app/internal/api/public"
	stripewebhooks "chitrakalakar-app/internal/api/stripewebhook"
	"chitrakalakar-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Auth     *authapi.Handler
	Admin    *adminapi.Handler
	Artist   *artistapi.Handler
	Orders   *ordersapi.Handler
	Payments *paymentsapi.Handler
	Public   *publicapi.Handler
	Webhook  *stripewebhooks.Handler

	// Accounts backs the approved-artist guard.
	Accounts  middleware.AccountFinder
	JWTSecret string
	Gatherer  prometheus.Gatherer
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	// Signed raw body; must not pass through the sanitizer.
	r.POST("/webhook/stripe", h.Webhook.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	if h.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.Gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api")
	api.Use(middleware.SanitizeAndCleanInputMiddleware())

	public := api.Group("/public")
	public.GET("/stats", h.Public.Stats)
	public.GET("/exhibitions", h.Public.Exhibitions)
	public.GET("/exhibitions/archived", h.Public.ArchivedExhibitions)
	public.GET("/exhibitions/:id", h.Public.Exhibition)
	public.GET("/artworks", h.Public.Artworks)
	public.GET("/artworks/:id", h.Public.Artwork)
	public.GET("/featured-artists", h.Public.FeaturedArtists)

	api.POST("/auth/signup", h.Auth.Signup)
	api.POST("/auth/login", h.Auth.Login)

	// Authenticated
	auth := api.Group("/")
	auth.Use(middleware.AuthMiddleware(h.JWTSecret), middleware.RequireActiveAccount(h.Accounts))
	auth.GET("/auth/me", h.Auth.Me)

	auth.POST("/orders", h.Orders.Create)
	auth.GET("/orders", h.Orders.List)
	auth.GET("/orders/:id", h.Orders.Get)

	auth.POST("/payments/checkout", h.Payments.CreateCheckout)
	auth.GET("/payments/status/:session_id", h.Payments.Status)
	auth.GET("/payments/history", h.Payments.History)

	// Approved artists
	artist := auth.Group("/artist")
	artist.Use(middleware.RequireApprovedArtist(h.Accounts))
	artist.GET("/dashboard", h.Artist.Dashboard)
	artist.GET("/portfolio", h.Artist.ListPortfolio)
	artist.POST("/portfolio", h.Artist.CreateArtwork)
	artist.PUT("/portfolio/:id", h.Artist.UpdateArtwork)
	artist.DELETE("/portfolio/:id", h.Artist.DeleteArtwork)
	artist.GET("/orders", h.Artist.ListOrders)
	artist.PUT("/orders/:id/status", h.Artist.UpdateOrderStatus)
	artist.GET("/exhibitions", h.Artist.ListExhibitions)
	artist.POST("/exhibitions", h.Artist.CreateExhibition)

	// Admin routes
	admin := auth.Group("/admin")
	admin.Use(middleware.RequireRole("admin"))
	admin.GET("/dashboard", h.Admin.Dashboard)
	admin.GET("/pending-artists", h.Admin.PendingArtists)
	admin.GET("/pending-artworks", h.Admin.PendingArtworks)
	admin.GET("/pending-exhibitions", h.Admin.PendingExhibitions)
	admin.GET("/users", h.Admin.ListUsers)
	admin.GET("/payments", h.Admin.ListPayments)
	admin.GET("/orders", h.Admin.ListOrders)
	admin.POST("/approve-artist", h.Admin.ApproveArtist)
	admin.POST("/approve-artwork", h.Admin.ApproveArtwork)
	admin.POST("/approve-exhibition", h.Admin.ApproveExhibition)
	admin.POST("/archive-exhibition/:id", h.Admin.ArchiveExhibition)
	admin.POST("/toggle-user-status/:id", h.Admin.ToggleUserStatus)
	admin.POST("/feature-artist", h.Admin.FeatureArtist)
}
