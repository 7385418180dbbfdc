package vector

import (
	"context"
	"sort"
	"sync"

	"github.com/ledgerlocal/ledgerd/internal/common"
)

// Memory is the in-memory back-end: brute-force cosine similarity over
// L2-normalized vectors, guarded by a reader-writer lock.
type Memory struct {
	mu      sync.RWMutex
	dim     int
	entries map[int]Entry
}

func NewMemory(dim int) *Memory {
	return &Memory{dim: dim, entries: make(map[int]Entry)}
}

func (m *Memory) Add(_ context.Context, e Entry) error {
	if len(e.Embedding) != m.dim {
		return common.E(common.KindIndexFailure, "embedding dimension %d, want %d", len(e.Embedding), m.dim)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[e.ID] = e
	return nil
}

func (m *Memory) Remove(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

func (m *Memory) Search(_ context.Context, query []float32, k int, filter map[string]string) ([]Hit, error) {
	if k <= 0 {
		k = 5
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	hits := make([]Hit, 0, len(m.entries))
	for _, e := range m.entries {
		if !matches(e.Meta, filter) {
			continue
		}
		hits = append(hits, Hit{
			ID:       e.ID,
			Score:    dot(e.Embedding, query),
			Document: e.Document,
			Meta:     e.Meta,
		})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ID > hits[j].ID
	})
	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

func (m *Memory) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *Memory) Close() error { return nil }
