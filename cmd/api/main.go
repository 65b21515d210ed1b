package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"asteroid-watch/backend-go/internal/config"
	"asteroid-watch/backend-go/internal/handlers"
	internalhttp "asteroid-watch/backend-go/internal/http"
	"asteroid-watch/backend-go/internal/logger"
	"asteroid-watch/backend-go/internal/metrics"
	"asteroid-watch/backend-go/internal/services"
)

func main() {
	_ = godotenv.Load(
		".env",
		".env.local",
		"backend-go/.env",
		"backend-go/.env.local",
	)

	boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
	cfg, err := config.Load()
	if err != nil {
		boot.Fatal().Err(err).Msg("could not load config")
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		boot.Fatal().Err(err).Msg("could not build logger")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.New(reg)

	cache := services.NewCache(cfg, log)
	neows := services.NewNeoWsClient(cfg, rec)
	api := handlers.New(cfg, cache, neows, rec, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           internalhttp.NewRouter(cfg, api, reg, rec, log),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 10*time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", srv.Addr).Str("neows", cfg.NeoBaseURL).Msg("asteroid backend listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
