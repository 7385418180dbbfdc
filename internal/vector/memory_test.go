package vector

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerlocal/ledgerd/internal/entity"
)

const testDim = 4

func unit(values ...float32) []float32 {
	v := make([]float32, testDim)
	copy(v, values)
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	norm := math.Sqrt(sum)
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
	return v
}

func entry(id int, v []float32, meta map[string]string) Entry {
	if meta == nil {
		meta = map[string]string{}
	}
	return Entry{ID: id, Document: "doc", Embedding: v, Meta: meta}
}

func TestMemory_SearchOrdering(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(testDim)

	require.NoError(t, m.Add(ctx, entry(1, unit(1, 0, 0, 0), nil)))
	require.NoError(t, m.Add(ctx, entry(2, unit(0, 1, 0, 0), nil)))
	require.NoError(t, m.Add(ctx, entry(3, unit(1, 1, 0, 0), nil)))

	hits, err := m.Search(ctx, unit(1, 0, 0, 0), 3, nil)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, 1, hits[0].ID)
	assert.Equal(t, 3, hits[1].ID)
	assert.Equal(t, 2, hits[2].ID)
	assert.Greater(t, hits[0].Score, hits[1].Score)
}

func TestMemory_TieBrokenByDescendingID(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(testDim)

	v := unit(1, 0, 0, 0)
	require.NoError(t, m.Add(ctx, entry(1, v, nil)))
	require.NoError(t, m.Add(ctx, entry(2, v, nil)))
	require.NoError(t, m.Add(ctx, entry(3, v, nil)))

	hits, err := m.Search(ctx, v, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2, 1}, []int{hits[0].ID, hits[1].ID, hits[2].ID})
}

func TestMemory_Filter(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(testDim)

	v := unit(1, 0, 0, 0)
	require.NoError(t, m.Add(ctx, entry(1, v, map[string]string{"vendor": "rewe"})))
	require.NoError(t, m.Add(ctx, entry(2, v, map[string]string{"vendor": "aldi"})))

	hits, err := m.Search(ctx, v, 10, map[string]string{"vendor": "rewe"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 1, hits[0].ID)
}

func TestMemory_UpsertAndRemove(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(testDim)

	require.NoError(t, m.Add(ctx, entry(1, unit(1, 0, 0, 0), nil)))
	require.NoError(t, m.Add(ctx, entry(1, unit(0, 1, 0, 0), nil))) // upsert
	assert.Equal(t, 1, m.Count())

	hits, err := m.Search(ctx, unit(0, 1, 0, 0), 1, nil)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-6)

	require.NoError(t, m.Remove(ctx, 1))
	assert.Equal(t, 0, m.Count())
	hits, err = m.Search(ctx, unit(0, 1, 0, 0), 1, nil)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestMemory_DimensionMismatch(t *testing.T) {
	m := NewMemory(testDim)
	err := m.Add(context.Background(), Entry{ID: 1, Embedding: []float32{1, 0}})
	require.Error(t, err)
}

func TestPersistent_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	p, err := OpenPersistent(dir, testDim)
	require.NoError(t, err)
	require.NoError(t, p.Add(ctx, entry(1, unit(1, 0, 0, 0), map[string]string{"vendor": "rewe"})))
	require.NoError(t, p.Add(ctx, entry(2, unit(0, 1, 0, 0), nil)))
	require.NoError(t, p.Close())

	// Reopen: entries survive the restart.
	p2, err := OpenPersistent(dir, testDim)
	require.NoError(t, err)
	assert.Equal(t, 2, p2.Count())

	hits, err := p2.Search(ctx, unit(1, 0, 0, 0), 1, nil)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 1, hits[0].ID)
	assert.Equal(t, "rewe", hits[0].Meta["vendor"])

	require.NoError(t, p2.Remove(ctx, 1))
	require.NoError(t, p2.Close())

	p3, err := OpenPersistent(dir, testDim)
	require.NoError(t, err)
	assert.Equal(t, 1, p3.Count())
}

func TestDocumentTemplate(t *testing.T) {
	r := &entity.Receipt{
		ID:       1,
		Vendor:   "REWE",
		Date:     time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Total:    decimal.RequireFromString("45.67"),
		Currency: "EUR",
		Category: "Groceries",
		Items: []entity.LineItem{
			{Description: "Brot", Total: decimal.RequireFromString("2.99")},
		},
	}
	doc := Document(r)
	assert.Contains(t, doc, "Receipt from REWE")
	assert.Contains(t, doc, "Date: 2024-01-15")
	assert.Contains(t, doc, "Total: 45.67 EUR")
	assert.Contains(t, doc, "Category: Groceries")
	assert.Contains(t, doc, "- Brot: 2.99")

	meta := Metadata(r)
	assert.Equal(t, "rewe", meta["vendor"])
	assert.Equal(t, "false", meta["flagged"])
	assert.Equal(t, "45.67", meta["total"])
}
