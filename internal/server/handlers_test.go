package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerlocal/ledgerd/constants"
	"github.com/ledgerlocal/ledgerd/internal/common"
	"github.com/ledgerlocal/ledgerd/internal/entity"
	"github.com/ledgerlocal/ledgerd/internal/extract"
	"github.com/ledgerlocal/ledgerd/internal/query"
	"github.com/ledgerlocal/ledgerd/internal/vector"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeRepo struct {
	receipts map[int]*entity.Receipt
}

func (r *fakeRepo) Insert(_ context.Context, rec *entity.Receipt) (int, error) { return 0, nil }
func (r *fakeRepo) Update(context.Context, *entity.Receipt) error             { return nil }
func (r *fakeRepo) Delete(context.Context, int) error                         { return nil }

func (r *fakeRepo) Get(_ context.Context, id int) (*entity.Receipt, error) {
	rec, ok := r.receipts[id]
	if !ok {
		return nil, common.E(common.KindNotFound, "receipt %d not found", id)
	}
	return rec, nil
}

func (r *fakeRepo) List(_ context.Context, f entity.ListFilter) ([]*entity.Receipt, error) {
	var out []*entity.Receipt
	for _, rec := range r.receipts {
		if f.Vendor != "" && entity.NormalizeVendor(rec.Vendor) != entity.NormalizeVendor(f.Vendor) {
			continue
		}
		if f.Category != "" && rec.Category != f.Category {
			continue
		}
		if f.Flagged != nil && *f.Flagged != rec.Flags.Any() {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeRepo) DistinctVendors(context.Context) ([]string, error) { return nil, nil }
func (r *fakeRepo) Count(context.Context) (int, error)                { return len(r.receipts), nil }
func (r *fakeRepo) AllIDs(context.Context) ([]int, error)             { return nil, nil }
func (r *fakeRepo) UpdateFlags(context.Context, int, entity.Flags) error {
	return nil
}
func (r *fakeRepo) DuplicateCandidates(context.Context, string, time.Time, decimal.Decimal, int) ([]int, error) {
	return nil, nil
}
func (r *fakeRepo) MonthlyTotals(context.Context) ([]entity.BucketTotal, error) {
	return []entity.BucketTotal{{Key: "2024-01", Total: decimal.RequireFromString("45.67"), Count: 1}}, nil
}
func (r *fakeRepo) VendorTotals(context.Context) ([]entity.BucketTotal, error)   { return nil, nil }
func (r *fakeRepo) CategoryTotals(context.Context) ([]entity.BucketTotal, error) { return nil, nil }

type fakeIngestor struct {
	lastRec *entity.Receipt
	id      int
	flags   entity.Flags
	err     error
}

func (f *fakeIngestor) Ingest(_ context.Context, rec *entity.Receipt) (int, entity.Flags, error) {
	f.lastRec = rec
	return f.id, f.flags, f.err
}
func (f *fakeIngestor) Delete(context.Context, int) error             { return nil }
func (f *fakeIngestor) RecomputeAllFlags(context.Context) (int, error) { return 2, nil }

type fakePlanner struct {
	answer *query.Answer
	err    error
}

func (p *fakePlanner) Answer(context.Context, string) (*query.Answer, error) {
	return p.answer, p.err
}
func (p *fakePlanner) Chat(context.Context, string, [][2]string) (string, error) {
	return "chat prose", p.err
}

type fakeExtractor struct {
	result *extract.Result
	err    error
}

func (e *fakeExtractor) Extract(context.Context, []byte, string) (*extract.Result, error) {
	return e.result, e.err
}

type fakeExporter struct{}

func (fakeExporter) ExportReceiptsXLSX(context.Context, *time.Time, *time.Time) ([]byte, error) {
	return []byte("xlsx-bytes"), nil
}

type fakeHealth struct{ err error }

func (h fakeHealth) Healthy(context.Context) error { return h.err }

type fakeEmbedder struct{}

func (fakeEmbedder) Embed(context.Context, string) ([]float32, error) {
	v := make([]float32, 4)
	v[0] = 1
	return v, nil
}

func sampleReceipts() map[int]*entity.Receipt {
	return map[int]*entity.Receipt{
		1: {
			ID: 1, Vendor: "REWE", Category: "Groceries", Currency: "EUR",
			Date:  time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
			Total: decimal.RequireFromString("45.67"),
			Tax:   decimal.RequireFromString("7.32"),
		},
		3: {
			ID: 3, Vendor: "Bar", Category: "Bar", Currency: "EUR",
			Date:  time.Date(2024, 2, 1, 22, 0, 0, 0, time.UTC),
			Total: decimal.RequireFromString("30.00"),
			Tax:   decimal.RequireFromString("4.75"),
			Flags: entity.Flags{Suspicious: true, MathError: true},
		},
	}
}

func newTestServer(repo *fakeRepo, ing *fakeIngestor, pl *fakePlanner, ex *fakeExtractor) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &common.Config{VectorBackend: common.VectorBackendMemory, Currency: "EUR"}
	return New(repo, ing, pl, ex, fakeExporter{}, vector.NewMemory(4), fakeEmbedder{}, fakeHealth{}, cfg, logger)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

func TestListReceipts(t *testing.T) {
	srv := newTestServer(&fakeRepo{receipts: sampleReceipts()}, &fakeIngestor{}, &fakePlanner{}, &fakeExtractor{})
	router := srv.Router()

	w := doJSON(t, router, http.MethodGet, "/api/receipts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(2), body["count"])

	w = doJSON(t, router, http.MethodGet, "/api/receipts?receiptId=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	receipts := body["receipts"].([]any)
	require.Len(t, receipts, 1)
	first := receipts[0].(map[string]any)
	assert.Equal(t, float64(1), first["id"])
	assert.Equal(t, "REWE", first["vendor"])
	assert.Equal(t, "verified", first["status"])

	w = doJSON(t, router, http.MethodGet, "/api/receipts?receiptId=99", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	body = decodeBody(t, w)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "NOT_FOUND", errObj["kind"])
}

func TestIngestEndpoint(t *testing.T) {
	ing := &fakeIngestor{id: 1}
	srv := newTestServer(&fakeRepo{receipts: map[int]*entity.Receipt{}}, ing, &fakePlanner{}, &fakeExtractor{})
	router := srv.Router()

	w := doJSON(t, router, http.MethodPost, "/api/ingest", map[string]any{
		"vendor":   "REWE",
		"date":     "2024-01-15T10:30:00Z",
		"total":    45.67,
		"tax":      7.32,
		"currency": "EUR",
		"items": []map[string]any{
			{"desc": "Brot", "amount": 2.99},
			{"desc": "Milch", "amount": 1.29},
			{"desc": "Käse", "amount": 41.39},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["id"])

	require.NotNil(t, ing.lastRec)
	assert.Equal(t, "REWE", ing.lastRec.Vendor)
	require.Len(t, ing.lastRec.Items, 3)
	assert.Equal(t, "Brot", ing.lastRec.Items[0].Description)
	assert.True(t, ing.lastRec.Items[0].Total.Equal(decimal.RequireFromString("2.99")))

	// The /api/ingest/db synonym routes to the same handler.
	w = doJSON(t, router, http.MethodPost, "/api/ingest/db", map[string]any{
		"vendor": "REWE", "date": "2024-01-15", "total": 1.00, "tax": 0,
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestIngestEndpoint_BadDate(t *testing.T) {
	srv := newTestServer(&fakeRepo{receipts: map[int]*entity.Receipt{}}, &fakeIngestor{}, &fakePlanner{}, &fakeExtractor{})
	w := doJSON(t, srv.Router(), http.MethodPost, "/api/ingest", map[string]any{
		"vendor": "REWE", "date": "yesterday", "total": 1.00,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "VALIDATION", body["error"].(map[string]any)["kind"])
}

func TestExtractEndpoint_Failed(t *testing.T) {
	ex := &fakeExtractor{result: &extract.Result{
		Confidence: extract.ConfidenceFailed,
		Raw:        "gibberish",
		Checksum:   "abc123",
	}}
	srv := newTestServer(&fakeRepo{receipts: map[int]*entity.Receipt{}}, &fakeIngestor{}, &fakePlanner{}, ex)

	w := doJSON(t, srv.Router(), http.MethodPost, "/api/extract", map[string]any{
		"image": "aGVsbG8=", "mime": "image/jpeg",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decodeBody(t, w)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "EXTRACTION_FAILED", errObj["kind"])
	assert.Equal(t, "abc123", errObj["checksum"])
	assert.Equal(t, "gibberish", errObj["rawOutput"])
}

func TestExtractEndpoint_OK(t *testing.T) {
	ex := &fakeExtractor{result: &extract.Result{
		Confidence: extract.ConfidenceOK,
		Receipt: entity.Receipt{
			Vendor: "REWE", Currency: "EUR",
			Date:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Total: decimal.RequireFromString("45.67"),
		},
	}}
	srv := newTestServer(&fakeRepo{receipts: map[int]*entity.Receipt{}}, &fakeIngestor{}, &fakePlanner{}, ex)

	w := doJSON(t, srv.Router(), http.MethodPost, "/api/extract", map[string]any{
		"image": "aGVsbG8=", "mime": "image/jpeg",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "ok", body["confidence"])
}

func TestAuditEndpoint_GroupsByFlag(t *testing.T) {
	srv := newTestServer(&fakeRepo{receipts: sampleReceipts()}, &fakeIngestor{}, &fakePlanner{}, &fakeExtractor{})

	w := doJSON(t, srv.Router(), http.MethodGet, "/api/audit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])
	groups := body["groups"].(map[string]any)
	assert.Len(t, groups["suspicious"].([]any), 1)
	assert.Len(t, groups["math_error"].([]any), 1)
	assert.Empty(t, groups["duplicate"].([]any))
}

func TestChatQueryEndpoint(t *testing.T) {
	total := decimal.RequireFromString("25.00")
	pl := &fakePlanner{answer: &query.Answer{
		Intent:      constants.IntentSumByCategory,
		Answer:      "You spent 25.00 EUR on alcohol.",
		TotalAmount: &total,
		Count:       1,
		ReceiptIDs:  []int{3},
		Receipts:    []*entity.Receipt{sampleReceipts()[3]},
	}}
	srv := newTestServer(&fakeRepo{receipts: sampleReceipts()}, &fakeIngestor{}, pl, &fakeExtractor{})

	w := doJSON(t, srv.Router(), http.MethodPost, "/api/chat/query", map[string]any{
		"query": "how much did I spend on alcohol?",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, 25.00, body["totalAmount"])
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, []any{float64(3)}, body["receiptIds"])
	assert.NotEmpty(t, body["answer"])

	w = doJSON(t, srv.Router(), http.MethodPost, "/api/chat/query", map[string]any{"query": "  "})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatQueryEndpoint_UpstreamTimeout(t *testing.T) {
	pl := &fakePlanner{err: common.E(common.KindUpstreamTimeout, "model too slow")}
	srv := newTestServer(&fakeRepo{receipts: map[int]*entity.Receipt{}}, &fakeIngestor{}, pl, &fakeExtractor{})

	w := doJSON(t, srv.Router(), http.MethodPost, "/api/chat/query", map[string]any{"query": "hi"})
	require.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(&fakeRepo{receipts: sampleReceipts()}, &fakeIngestor{}, &fakePlanner{}, &fakeExtractor{})

	w := doJSON(t, srv.Router(), http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "healthy", body["status"])
	vectorInfo := body["vector"].(map[string]any)
	assert.Equal(t, "memory", vectorInfo["backend"])
}

func TestRecomputeEndpoint(t *testing.T) {
	srv := newTestServer(&fakeRepo{receipts: map[int]*entity.Receipt{}}, &fakeIngestor{}, &fakePlanner{}, &fakeExtractor{})

	w := doJSON(t, srv.Router(), http.MethodPost, "/api/audit/recompute", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decodeBody(t, w)["changed"])
}

func TestAnalyticsMonthly(t *testing.T) {
	srv := newTestServer(&fakeRepo{receipts: sampleReceipts()}, &fakeIngestor{}, &fakePlanner{}, &fakeExtractor{})

	w := doJSON(t, srv.Router(), http.MethodGet, "/api/analytics/monthly", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	monthly := body["monthly"].([]any)
	require.Len(t, monthly, 1)
	bucket := monthly[0].(map[string]any)
	assert.Equal(t, "2024-01", bucket["key"])
	assert.Equal(t, 45.67, bucket["total"])
}

func TestExportEndpoint(t *testing.T) {
	srv := newTestServer(&fakeRepo{receipts: sampleReceipts()}, &fakeIngestor{}, &fakePlanner{}, &fakeExtractor{})

	w := doJSON(t, srv.Router(), http.MethodGet, "/api/export/xlsx", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "xlsx-bytes", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "receipts.xlsx")
}
