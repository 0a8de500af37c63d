package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/moodic-labs/moodic/internal/adapters/catalog"
	"github.com/moodic-labs/moodic/internal/adapters/curation"
	"github.com/moodic-labs/moodic/internal/adapters/embedding"
	"github.com/moodic-labs/moodic/internal/adapters/qdrantsearch"
	"github.com/moodic-labs/moodic/internal/adapters/rest"
	"github.com/moodic-labs/moodic/internal/adapters/youtube"
	"github.com/moodic-labs/moodic/internal/config"
	"github.com/moodic-labs/moodic/internal/core/domain"
	"github.com/moodic-labs/moodic/internal/core/services"
	"github.com/moodic-labs/moodic/internal/worker"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(logger); err != nil {
		logger.Fatal("startup failed", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	// Crash early if required config is missing.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Driven adapters.
	embedder, err := embedding.NewClient(embedding.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
	})
	if err != nil {
		return err
	}

	lyricsSource, err := qdrantsearch.NewSource(startupCtx, qdrantsearch.Config{
		Host:       cfg.Qdrant.Host,
		Port:       cfg.Qdrant.Port,
		APIKey:     cfg.Qdrant.APIKey,
		Collection: cfg.Qdrant.Collection,
	}, domain.SourceLyrics)
	if err != nil {
		return err
	}

	store, err := catalog.NewStore(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	generalSource, err := catalog.NewSource(startupCtx, store, domain.SourceGeneral)
	if err != nil {
		return err
	}

	provider, err := curation.NewProvider(curation.ProviderConfig{
		Provider: cfg.Curation.Provider,
		APIKey:   cfg.Curation.APIKey,
		BaseURL:  cfg.Curation.BaseURL,
		Model:    cfg.Curation.Model,
	})
	if err != nil {
		return err
	}
	guarded := curation.NewWithBreaker(provider)

	videoClient, err := youtube.NewClient(youtube.ClientConfig{
		APIKey:  cfg.YouTube.APIKey,
		BaseURL: cfg.YouTube.BaseURL,
	})
	if err != nil {
		return err
	}
	resolver, err := youtube.NewResolver(videoClient)
	if err != nil {
		return err
	}

	// Core service. Lyrics hits win fusion ties, so they get priority 0.
	svc := services.NewOrchestrator(
		embedder,
		[]services.SourceSpec{
			{Source: lyricsSource, Priority: 0, Threshold: cfg.Pipeline.LyricsThreshold, Limit: cfg.Pipeline.LyricsLimit},
			{Source: generalSource, Priority: 1, Threshold: cfg.Pipeline.GeneralThreshold, Limit: cfg.Pipeline.GeneralLimit},
		},
		guarded,
		services.Options{
			FusedCap: cfg.Pipeline.FusedCap,
			FailMode: services.FailMode(cfg.Pipeline.FailMode),
			Strict:   cfg.Pipeline.Strict,
		},
		logger,
	)

	pool := worker.NewPool(resolver, logger, cfg.Worker.QueueSize)
	pool.Start(cfg.Worker.Count)
	defer pool.Stop()

	// Driving adapter.
	handler := rest.NewHandler(svc, resolver, pool, logger)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("moodic api listening",
		zap.String("addr", addr),
		zap.String("curation_provider", guarded.Name()),
		zap.String("fail_mode", cfg.Pipeline.FailMode),
	)

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown error", zap.Error(err))
		}
	}
	return nil
}
