// Package server is the HTTP surface: thin request routing over the
// ingestor, query planner, and relational store. No business logic lives
// here.
package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ledgerlocal/ledgerd/internal/common"
	"github.com/ledgerlocal/ledgerd/internal/embedding"
	"github.com/ledgerlocal/ledgerd/internal/entity"
	"github.com/ledgerlocal/ledgerd/internal/extract"
	"github.com/ledgerlocal/ledgerd/internal/query"
	"github.com/ledgerlocal/ledgerd/internal/repository"
	"github.com/ledgerlocal/ledgerd/internal/vector"
)

// Ingestor is the write path the surface routes to.
type Ingestor interface {
	Ingest(ctx context.Context, rec *entity.Receipt) (int, entity.Flags, error)
	Delete(ctx context.Context, id int) error
	RecomputeAllFlags(ctx context.Context) (int, error)
}

// Planner answers questions.
type Planner interface {
	Answer(ctx context.Context, question string) (*query.Answer, error)
	Chat(ctx context.Context, message string, history [][2]string) (string, error)
}

// Extractor turns image bytes into a candidate record.
type Extractor interface {
	Extract(ctx context.Context, image []byte, mimeType string) (*extract.Result, error)
}

// Exporter produces workbook bytes.
type Exporter interface {
	ExportReceiptsXLSX(ctx context.Context, from, to *time.Time) ([]byte, error)
}

// HealthChecker reports completion-service liveness.
type HealthChecker interface {
	Healthy(ctx context.Context) error
}

type Server struct {
	repo      repository.ReceiptRepository
	ingestor  Ingestor
	planner   Planner
	extractor Extractor
	exporter  Exporter
	index     vector.Index
	embedder  embedding.Embedder
	llm       HealthChecker
	cfg       *common.Config
	logger    *slog.Logger
}

func New(
	repo repository.ReceiptRepository,
	ingestor Ingestor,
	planner Planner,
	extractor Extractor,
	exporter Exporter,
	index vector.Index,
	embedder embedding.Embedder,
	llm HealthChecker,
	cfg *common.Config,
	logger *slog.Logger,
) *Server {
	return &Server{
		repo:      repo,
		ingestor:  ingestor,
		planner:   planner,
		extractor: extractor,
		exporter:  exporter,
		index:     index,
		embedder:  embedder,
		llm:       llm,
		cfg:       cfg,
		logger:    logger,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.GET("/health", s.healthHandler)

	api.GET("/receipts", s.listReceiptsHandler)
	api.GET("/receipts/image/:id", s.receiptImageHandler)
	api.DELETE("/receipts/:id", s.deleteReceiptHandler)

	api.POST("/ingest", s.ingestHandler)
	api.POST("/ingest/db", s.ingestHandler) // compatibility synonym

	api.POST("/extract", s.extractHandler)
	api.POST("/extract/upload", s.extractUploadHandler)

	api.GET("/audit", s.auditHandler)
	api.POST("/audit/recompute", s.recomputeHandler)

	api.GET("/analytics/summary", s.analyticsSummaryHandler)
	api.GET("/analytics/monthly", s.analyticsMonthlyHandler)
	api.GET("/analytics/categories", s.analyticsCategoriesHandler)
	api.GET("/analytics/vendors", s.analyticsVendorsHandler)

	api.GET("/search", s.searchHandler)
	api.GET("/export/xlsx", s.exportHandler)

	api.POST("/chat/query", s.chatQueryHandler)
	api.POST("/chat", s.chatHandler)

	return r
}
