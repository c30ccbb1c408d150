package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sergi0014/compras-microservicio-sprint/internal/config"
	"github.com/Sergi0014/compras-microservicio-sprint/internal/gateway"
	"github.com/Sergi0014/compras-microservicio-sprint/internal/infra"
	"github.com/Sergi0014/compras-microservicio-sprint/internal/router"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger — dev: pretty, prod: JSON
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	// Redis only backs UI preferences; without it they live in memory.
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = infra.NewRedis(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
	} else {
		log.Warn().Msg("REDIS_URL not set, theme preferences will not survive restarts")
	}

	gw := gateway.New(cfg.GatewayURL, cfg.GatewayTimeout(), gateway.CircuitBreakerConfig{
		UmbralFallos:  cfg.CBUmbralFallos,
		UmbralExitos:  cfg.CBUmbralExitos,
		TiempoAbierto: cfg.CBTiempoAbierto(),
	})

	// Startup probe is informational only: the admin must come up even with
	// the gateway down so the operator sees the full-page error state.
	if !gw.CheckConnection(context.Background()) {
		log.Warn().Str("gateway_url", cfg.GatewayURL).Msg("API Gateway unreachable at startup")
	}

	r := router.New(cfg, gw, rdb)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("compras admin listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
