package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sendbackhq/sendback/internal/common"
	"github.com/sendbackhq/sendback/internal/export"
	"github.com/sendbackhq/sendback/internal/extract"
	"github.com/sendbackhq/sendback/internal/llm"
	"github.com/sendbackhq/sendback/internal/llm/openai"
	"github.com/sendbackhq/sendback/internal/policy"
	"github.com/sendbackhq/sendback/internal/repository"
	"github.com/sendbackhq/sendback/internal/server"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(repository.Config{Path: cfg.Database.Path}, logger)
	if err != nil {
		log.Fatalf("opening database: %v", err)
	}
	defer repository.Close(db, logger)

	orders := repository.NewOrderRepository(db, logger)

	policies, err := policy.NewStore()
	if err != nil {
		log.Fatalf("loading policy table: %v", err)
	}

	// nil backend keeps the pipeline on its fallback strategies.
	var backend llm.Backend
	if cfg.LLMEnabled() {
		backend = openai.NewClient(openai.Config{
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			VisionModel: cfg.LLM.VisionModel,
			APIKey:      cfg.LLM.APIKey,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		}, logger)
		log.Infow("extraction backend configured", "model", cfg.LLM.Model)
	} else {
		log.Infow("no extraction backend configured; running on fallback extraction")
	}

	pdf := extract.NewPDFTextExtractor(extract.PDFConfig{
		Pdftotext: cfg.PDF.Pdftotext,
		MaxPages:  cfg.PDF.MaxPages,
	}, logger)
	pipeline := extract.NewPipeline(backend, pdf, logger)

	summarizer := policy.NewSummarizer(policies, backend, logger)
	exporter := export.NewService(orders, logger)

	srv := server.NewServer(server.Config{AllowedOrigins: cfg.Server.AllowedOrigins},
		orders, pipeline, policies, summarizer, exporter, logger)

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("http serving on %s", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Errorf("http shutdown: %v", err)
	}
	log.Info("stopped.")
}
