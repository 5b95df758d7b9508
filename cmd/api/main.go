package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/acmeshop/storefront/internal/catalog"
	"github.com/acmeshop/storefront/internal/config"
	"github.com/acmeshop/storefront/internal/handlers"
	"github.com/acmeshop/storefront/internal/orders"
	"github.com/acmeshop/storefront/internal/payments"
	"github.com/acmeshop/storefront/internal/storage"
)

func setupRouter(productsCfg handlers.ProductsConfig, ordersCfg handlers.OrdersConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), handlers.RequestID(), handlers.RequestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.RegisterProductRoutes(r, productsCfg)
	handlers.RegisterOrderRoutes(r, ordersCfg)

	return r
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	log.Info().Str("appName", cfg.AppName).Msg("Application starting")

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	var provider payments.Provider
	if cfg.PaymentsEnabled() {
		provider = payments.NewStripeProvider(cfg.StripeSecretKey,
			cfg.CheckoutSuccessURL, cfg.CheckoutCancelURL, cfg.PaymentTimeout)
		log.Info().Msg("Stripe checkout enabled")
	} else {
		provider = payments.NewDisabled()
		log.Warn().Msg("No payment provider configured, orders complete immediately")
	}

	productStore := catalog.NewStore(db)
	orderStore := orders.NewStore(db)

	r := setupRouter(
		handlers.ProductsConfig{Store: productStore},
		handlers.OrdersConfig{
			Assembler:  orders.NewAssembler(productStore, orderStore, provider),
			Reconciler: orders.NewReconciler(orderStore, provider),
			Store:      orderStore,
		},
	)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Application shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
