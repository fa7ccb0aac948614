package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vasiliy-maslov/ecommerce-shop/internal/auth"
	"github.com/vasiliy-maslov/ecommerce-shop/internal/cart"
	"github.com/vasiliy-maslov/ecommerce-shop/internal/catalog"
	"github.com/vasiliy-maslov/ecommerce-shop/internal/checkout"
	"github.com/vasiliy-maslov/ecommerce-shop/internal/config"
	"github.com/vasiliy-maslov/ecommerce-shop/internal/db"
	shopHttp "github.com/vasiliy-maslov/ecommerce-shop/internal/handler/http"
	"github.com/vasiliy-maslov/ecommerce-shop/internal/metrics"
	"github.com/vasiliy-maslov/ecommerce-shop/internal/order"
	"github.com/vasiliy-maslov/ecommerce-shop/internal/user"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Info().Msg("Starting shop service...")

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	ctx := context.Background()

	pg, err := db.New(ctx, cfg.Postgres)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err := pg.ApplyMigrations(cfg.Postgres); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply migrations")
	}

	catalogRepo := catalog.NewRepository(pg.Pool)
	catalogSvc := catalog.NewService(catalogRepo)

	cartRepo := cart.NewRepository(pg.Pool)
	cartSvc := cart.NewService(cartRepo, catalogRepo)

	checkoutSvc := checkout.NewService(checkout.NewPostgresStore(pg.Pool))

	orderRepo := order.NewRepository(pg.Pool)
	orderSvc := order.NewService(orderRepo)

	userRepo := user.NewRepository(pg.Pool)
	userSvc := user.NewService(userRepo, cfg.Auth.BcryptCost)

	tokenManager := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	serverMetrics := metrics.NewServerMetrics()

	router := shopHttp.NewRouter(shopHttp.RouterDeps{
		Catalog:  catalogSvc,
		Cart:     cartSvc,
		Checkout: checkoutSvc,
		Orders:   orderSvc,
		Users:    userSvc,
		Tokens:   tokenManager,
		Metrics:  serverMetrics,
	})

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Str("port", cfg.App.Port).Msg("Could not listen")
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	<-stopCh

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown failed")
	}

	pg.Close()

	log.Info().Msg("Shop service stopped gracefully.")
}
