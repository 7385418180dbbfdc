package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ledgerlocal/ledgerd/internal/common"
	"github.com/ledgerlocal/ledgerd/internal/embedding"
	"github.com/ledgerlocal/ledgerd/internal/export"
	"github.com/ledgerlocal/ledgerd/internal/extract"
	"github.com/ledgerlocal/ledgerd/internal/ingest"
	"github.com/ledgerlocal/ledgerd/internal/llm"
	"github.com/ledgerlocal/ledgerd/internal/query"
	"github.com/ledgerlocal/ledgerd/internal/repository"
	"github.com/ledgerlocal/ledgerd/internal/server"
	"github.com/ledgerlocal/ledgerd/internal/vector"
)

func main() {
	configPath := flag.String("config", "ledgerd.yaml", "path to the config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	cfg, err := common.LoadConfig(*configPath)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Store
	client, db, err := repository.Open(ctx, cfg.StorePath, logger)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer repository.Close(client, db, logger)
	if err := repository.HealthCheck(ctx, db, 3*time.Second); err != nil {
		logger.Error("store health check failed", "error", err)
		os.Exit(1)
	}
	repo := repository.NewReceiptRepository(client, logger)

	// Vector index
	index, err := vector.New(cfg)
	if err != nil {
		logger.Error("failed to open vector index", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := index.Close(); err != nil {
			logger.Error("failed to close vector index", "error", err)
		}
	}()

	// Upstream clients
	completion := llm.NewClient(cfg.CompletionEndpoint, cfg.TextModel, cfg.VisionModel, cfg.MaxInflight, logger)
	embedder := embedding.NewClient(cfg.CompletionEndpoint, cfg.EmbeddingModel, cfg.EmbeddingDim, logger)

	// Services
	ingestor := ingest.NewService(repo, index, embedder, cfg.Currency, logger)
	ingestor.Queue().Start()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		ingestor.Queue().Shutdown(shutdownCtx)
	}()

	// After a restart the persistent store may be ahead of the index; a
	// sweep reconciles them before the first query.
	if count, err := repo.Count(ctx); err == nil && count > 0 && index.Count() == 0 {
		logger.Info("index.sweep_start", "receipts", count)
		if _, err := ingestor.Reindex(ctx); err != nil {
			logger.Warn("index.sweep_failed", "error", err)
		}
	}

	extractor := extract.New(completion, cfg.Currency, logger)
	planner := query.NewPlanner(repo, index, embedder, completion, logger)
	exporter := export.NewService(repo, logger)

	// Inbox watcher (optional)
	if cfg.InboxDir != "" {
		files, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
			Root:        cfg.InboxDir,
			InitialScan: true,
		}, logger)
		if err != nil {
			logger.Error("failed to start inbox watcher", "error", err)
			os.Exit(1)
		}
		go runInbox(ctx, files, extractor, ingestor, logger)
	}

	srv := server.New(repo, ingestor, planner, extractor, exporter, index, embedder, completion, cfg, logger)
	httpServer := &http.Server{
		Addr:    cfg.ListenAddr(),
		Handler: srv.Router(),
	}

	go func() {
		logger.Info("http serving", "addr", cfg.ListenAddr())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
}

// runInbox drains watcher events: extract then ingest, logging failures
// without stopping the loop.
func runInbox(ctx context.Context, files <-chan string, extractor *extract.Extractor, ingestor *ingest.Service, logger *slog.Logger) {
	for path := range files {
		image, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("inbox.read_failed", "path", path, "error", err)
			continue
		}
		res, err := extractor.Extract(ctx, image, "")
		if err != nil {
			logger.Warn("inbox.extract_failed", "path", path, "error", err)
			continue
		}
		if res.Confidence == extract.ConfidenceFailed {
			logger.Warn("inbox.extract_rejected", "path", path, "checksum", res.Checksum)
			continue
		}
		rec := res.Receipt
		id, flags, err := ingestor.Ingest(ctx, &rec)
		if err != nil {
			logger.Warn("inbox.ingest_failed", "path", path, "error", err)
			continue
		}
		logger.Info("inbox.ingested", "path", path, "receipt_id", id, "flagged", flags.Any())
	}
}
