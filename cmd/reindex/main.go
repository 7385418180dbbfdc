// Command reindex sweeps every stored receipt into the vector index. Run
// it after deleting the vector directory or switching back-ends.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/ledgerlocal/ledgerd/internal/common"
	"github.com/ledgerlocal/ledgerd/internal/embedding"
	"github.com/ledgerlocal/ledgerd/internal/ingest"
	"github.com/ledgerlocal/ledgerd/internal/repository"
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

	ctx := context.Background()

	client, db, err := repository.Open(ctx, cfg.StorePath, logger)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer repository.Close(client, db, logger)
	repo := repository.NewReceiptRepository(client, logger)

	index, err := vector.New(cfg)
	if err != nil {
		logger.Error("failed to open vector index", "error", err)
		os.Exit(1)
	}
	defer index.Close()

	embedder := embedding.NewClient(cfg.CompletionEndpoint, cfg.EmbeddingModel, cfg.EmbeddingDim, logger)
	ingestor := ingest.NewService(repo, index, embedder, cfg.Currency, logger)

	n, err := ingestor.Reindex(ctx)
	if err != nil {
		logger.Error("reindex failed", "indexed", n, "error", err)
		os.Exit(1)
	}
	logger.Info("reindex complete", "receipts", n)
}
