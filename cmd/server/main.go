package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ManoharMakarla0412/coworking/internal/app"
	"github.com/ManoharMakarla0412/coworking/internal/booking"
	"github.com/ManoharMakarla0412/coworking/internal/calendar"
	"github.com/ManoharMakarla0412/coworking/internal/config"
	"github.com/ManoharMakarla0412/coworking/internal/observability"
	"github.com/ManoharMakarla0412/coworking/internal/payment"
	"github.com/ManoharMakarla0412/coworking/internal/server"
	"github.com/ManoharMakarla0412/coworking/internal/store"
)

func main() {
	ctx := context.Background()
	log := observability.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("load config")
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("connect to db")
	}
	defer pool.Close()

	cal := calendar.NewGoogleClient(cfg.CalendarID, cfg.CallTimeout)
	gate := booking.NewGate(cal, log)
	bookings := booking.NewService(gate, cal, store.NewPostgres(pool), log)

	signer := payment.NewSigner(cfg.PhonePe.MerchantKey, cfg.PhonePe.KeyIndex)
	gateway := payment.NewHTTPGateway(cfg.PhonePe.BaseURL, cfg.PhonePe.MerchantID, cfg.CallTimeout)
	payments := payment.NewOrchestrator(signer, gateway, payment.Config{
		MerchantID:  cfg.PhonePe.MerchantID,
		RedirectURL: cfg.PhonePe.RedirectURL,
		SuccessURL:  cfg.PhonePe.SuccessURL,
		FailureURL:  cfg.PhonePe.FailureURL,
	}, log)

	h := app.NewHandlers(bookings, payments, log)

	router := gin.Default()
	router.GET("/healthz", h.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// The gateway redirects the payer's browser here; it cannot carry a
	// bearer token, so the status route stays outside the auth group.
	router.GET("/api/payment/status", h.PaymentStatus)

	api := router.Group("/api", app.AuthMiddleware(cfg.JWTSecret, cfg.StaticTokens))
	{
		api.POST("/events/create-event", h.CreateEvent)
		api.POST("/payment/order", h.CreateOrder)
	}

	server.Run(router, cfg.Port, log)
}
