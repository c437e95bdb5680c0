package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"chitrakalakar-app/config"
	"chitrakalakar-app/database"
	adminapi "chitrakalakar-app/internal/api/admin"
	artistapi "chitrakalakar-app/internal/api/artist"
	authapi "chitrakalakar-app/internal/api/auth"
	ordersapi "chitrakalakar-app/internal/api/orders"
	paymentsapi "chitrakalakar-app/internal/api/payments"
	publicapi "chitrakalakar-app/internal/api/public"
	stripewebhooks "chitrakalakar-app/internal/api/stripewebhook"
	"chitrakalakar-app/internal/app/background"
	routes "chitrakalakar-app/internal/app/http"
	"chitrakalakar-app/internal/domain/events"
	domex "chitrakalakar-app/internal/domain/exhibitions"
	"chitrakalakar-app/internal/infra/kafka"
	"chitrakalakar-app/internal/infra/logger"
	"chitrakalakar-app/internal/infra/metrics"
	stripeinfra "chitrakalakar-app/internal/infra/stripe"
	"chitrakalakar-app/internal/service"
	"chitrakalakar-app/internal/service/dashboard"
	"chitrakalakar-app/internal/service/exhibitions"
	"chitrakalakar-app/internal/service/moderation"
	"chitrakalakar-app/internal/service/orders"
	"chitrakalakar-app/internal/service/payments"
	"chitrakalakar-app/internal/service/portfolio"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadEnv()

	lg, err := logger.New(cfg.LogLevel, cfg.LogFormat, "chitrakalakar-api")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, lg)
		defer kp.Close()
		publisher = kp
		lg.Info("publishing lifecycle events", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	}

	st, err := database.InitDB(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("database", zap.Error(err))
	}
	if err := database.EnsureDefaultAdmin(ctx, st, cfg.AdminEmail, cfg.AdminPassword, lg); err != nil {
		lg.Fatal("default admin", zap.Error(err))
	}

	provider, err := stripeinfra.NewProvider(cfg.StripeSecretKey)
	if err != nil {
		lg.Fatal("stripe", zap.Error(err))
	}

	deps := service.Deps{
		Events:  publisher,
		Metrics: m,
		Log:     lg,
		Timeout: cfg.CallTimeout,
	}.WithDefaults()

	gate := moderation.New(st, deps)
	orderSvc, err := orders.New(st, cfg.CommissionBPS, deps)
	if err != nil {
		lg.Fatal("orders", zap.Error(err))
	}
	schedule := exhibitions.New(st, domex.FeeSchedule{BaseFee: cfg.ExhibitionBaseFee, BaseDays: cfg.ExhibitionBaseDays}, deps)
	bridge := payments.New(st, provider, payments.Pricing{
		Currency:        cfg.Currency,
		MembershipFee:   cfg.MembershipFee,
		ArtistAnnualFee: cfg.ArtistAnnualFee,
	}, deps)
	works := portfolio.New(st, deps)
	dash := dashboard.New(st, deps)

	background.NewBackgroundTasks(schedule, cfg.SchedulerInterval, lg).StartAll(ctx)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Handlers{
		Auth:      authapi.NewHandler(st, cfg.JWTSecret, lg),
		Admin:     adminapi.NewHandler(gate, schedule, dash, bridge, orderSvc, lg),
		Artist:    artistapi.NewHandler(works, orderSvc, schedule, dash, lg),
		Orders:    ordersapi.NewHandler(orderSvc, lg),
		Payments:  paymentsapi.NewHandler(bridge, cfg.AppURL, lg),
		Public:    publicapi.NewHandler(works, schedule, gate, dash, lg),
		Webhook:   stripewebhooks.NewHandler(bridge, cfg.StripeWebhookSecret, lg),
		Accounts:  st,
		JWTSecret: cfg.JWTSecret,
		Gatherer:  reg,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		lg.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("shutdown", zap.Error(err))
	}
}
