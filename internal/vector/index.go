// Package vector implements the embedding-backed similarity index over
// receipt documents. Two interchangeable back-ends satisfy the same
// contract: an in-memory store and a persistent on-disk store.
package vector

import (
	"context"

	"github.com/ledgerlocal/ledgerd/internal/common"
)

// Entry is one indexed receipt document.
type Entry struct {
	ID        int
	Document  string
	Embedding []float32 // L2-normalized, common.EmbeddingDim wide
	Meta      map[string]string
}

// Hit is one search result.
type Hit struct {
	ID       int
	Score    float64
	Document string
	Meta     map[string]string
}

// Index is the capability set both back-ends implement. Add upserts by id.
// Search returns the top-k entries by cosine similarity, ties broken by
// descending id; the filter is an equality conjunction over metadata keys.
type Index interface {
	Add(ctx context.Context, e Entry) error
	Remove(ctx context.Context, id int) error
	Search(ctx context.Context, query []float32, k int, filter map[string]string) ([]Hit, error)
	Count() int
	Close() error
}

// New selects a back-end by configuration.
func New(cfg *common.Config) (Index, error) {
	switch cfg.VectorBackend {
	case common.VectorBackendMemory:
		return NewMemory(cfg.EmbeddingDim), nil
	case common.VectorBackendPersistent:
		return OpenPersistent(cfg.VectorPath, cfg.EmbeddingDim)
	default:
		return nil, common.E(common.KindValidation, "unknown vector backend %q", cfg.VectorBackend)
	}
}

func dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func matches(meta, filter map[string]string) bool {
	for k, v := range filter {
		if meta[k] != v {
			return false
		}
	}
	return true
}
