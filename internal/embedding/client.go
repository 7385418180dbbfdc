// Package embedding wraps the local text-to-vector endpoint. The model is
// opaque; the contract is a 384-dimensional unit-normalized vector.
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerlocal/ledgerd/internal/common"
)

// Timeout bounds a single embedding computation.
const Timeout = 10 * time.Second

// Embedder converts free text into a unit-normalized vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type Client struct {
	http    *http.Client
	baseURL string
	model   string
	dim     int
	logger  *slog.Logger
}

func NewClient(baseURL, model string, dim int, logger *slog.Logger) *Client {
	return &Client{
		http:    &http.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		dim:     dim,
		logger:  logger,
	}
}

func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	reqID := uuid.New().String()
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	body, err := json.Marshal(map[string]any{
		"model":  c.model,
		"prompt": text,
	})
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "encode embedding request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "build embedding request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			c.logger.Error("embed.timeout", "req_id", reqID, "elapsed_ms", time.Since(start).Milliseconds())
			return nil, common.Wrap(common.KindUpstreamTimeout, "embedding timed out", err)
		}
		c.logger.Error("embed.send_error", "req_id", reqID, "error", err)
		return nil, common.Wrap(common.KindUpstreamUnavailable, "embedding service unreachable", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		c.logger.Error("embed.status_error", "req_id", reqID, "status", resp.StatusCode)
		return nil, common.E(common.KindUpstreamUnavailable, "embedding service status %d", resp.StatusCode)
	}

	var out struct {
		Embedding []float64 `json:"embedding"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, common.Wrap(common.KindUpstreamUnavailable, "decode embedding response", err)
	}
	if len(out.Embedding) != c.dim {
		return nil, common.E(common.KindUpstreamUnavailable, "embedding dimension %d, want %d", len(out.Embedding), c.dim)
	}

	c.logger.Debug("embed.ok", "req_id", reqID, "text_len", len(text), "elapsed_ms", time.Since(start).Milliseconds())
	return Normalize(out.Embedding), nil
}

// Normalize converts to float32 and L2-normalizes. A zero vector is
// returned unchanged.
func Normalize(v []float64) []float32 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	norm := math.Sqrt(sum)
	out := make([]float32, len(v))
	if norm == 0 {
		for i, x := range v {
			out[i] = float32(x)
		}
		return out
	}
	for i, x := range v {
		out[i] = float32(x / norm)
	}
	return out
}
