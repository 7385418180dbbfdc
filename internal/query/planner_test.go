package query

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerlocal/ledgerd/constants"
	"github.com/ledgerlocal/ledgerd/internal/common"
	"github.com/ledgerlocal/ledgerd/internal/entity"
	"github.com/ledgerlocal/ledgerd/internal/vector"
)

type fakeStore struct {
	receipts []*entity.Receipt
	lastFilt entity.ListFilter
}

func (s *fakeStore) List(_ context.Context, f entity.ListFilter) ([]*entity.Receipt, error) {
	s.lastFilt = f
	var out []*entity.Receipt
	for _, r := range s.receipts {
		if f.Vendor != "" && entity.NormalizeVendor(r.Vendor) != entity.NormalizeVendor(f.Vendor) {
			continue
		}
		if f.Category != "" && r.Category != f.Category {
			continue
		}
		if f.From != nil && r.Date.Before(*f.From) {
			continue
		}
		if f.FlagKind == "duplicate" && !r.Flags.Duplicate {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *fakeStore) DistinctVendors(context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, r := range s.receipts {
		if !seen[r.Vendor] {
			seen[r.Vendor] = true
			out = append(out, r.Vendor)
		}
	}
	return out, nil
}

type fakeEmbedder struct{ err error }

func (e fakeEmbedder) Embed(context.Context, string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	v := make([]float32, 4)
	v[0] = 1
	return v, nil
}

type fakeLLM struct {
	response string
	err      error
	lastSys  string
	lastUser string
}

func (l *fakeLLM) CompleteText(_ context.Context, system, user string) (string, error) {
	l.lastSys, l.lastUser = system, user
	if l.err != nil {
		return "", l.err
	}
	return l.response, nil
}

func (l *fakeLLM) CompleteChat(_ context.Context, msgs [][2]string) (string, error) {
	if len(msgs) > 0 {
		l.lastSys = msgs[0][1]
		l.lastUser = msgs[len(msgs)-1][1]
	}
	if l.err != nil {
		return "", l.err
	}
	return l.response, nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testReceipts() []*entity.Receipt {
	return []*entity.Receipt{
		{
			ID: 1, Vendor: "REWE", Category: "Groceries", Currency: "EUR",
			Date:  time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
			Total: dec("45.67"), Tax: dec("7.32"),
			Items: []entity.LineItem{
				{Description: "Brot", Total: dec("2.99")},
				{Description: "Milch", Total: dec("1.29")},
				{Description: "Käse", Total: dec("41.39")},
			},
		},
		{
			ID: 3, Vendor: "Bar", Category: "Bar", Currency: "EUR",
			Date:  time.Date(2024, 2, 1, 22, 0, 0, 0, time.UTC),
			Total: dec("30.00"), Tax: dec("4.75"),
			Flags: entity.Flags{Suspicious: true, MathError: true},
			Items: []entity.LineItem{
				{Description: "Beer", Total: dec("5.00")},
				{Description: "Wine", Total: dec("20.00")},
			},
		},
	}
}

func newTestPlanner(store *fakeStore, idx vector.Index, llm *fakeLLM, embedErr error) *Planner {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPlanner(store, idx, fakeEmbedder{err: embedErr}, llm, logger)
}

func seededIndex(t *testing.T, recs []*entity.Receipt) vector.Index {
	t.Helper()
	idx := vector.NewMemory(4)
	for _, r := range recs {
		v := make([]float32, 4)
		v[0] = 1
		require.NoError(t, idx.Add(context.Background(), vector.Entry{
			ID:        r.ID,
			Document:  vector.Document(r),
			Embedding: v,
			Meta:      vector.Metadata(r),
		}))
	}
	return idx
}

func TestAnswer_AlcoholKeywordSumsMatchingItems(t *testing.T) {
	store := &fakeStore{receipts: testReceipts()}
	llm := &fakeLLM{response: "You spent 25.00 EUR on alcohol across 1 receipt."}
	p := newTestPlanner(store, seededIndex(t, store.receipts), llm, nil)

	ans, err := p.Answer(context.Background(), "how much did I spend on alcohol?")
	require.NoError(t, err)
	assert.Equal(t, constants.IntentSumByCategory, ans.Intent)
	require.NotNil(t, ans.TotalAmount)
	assert.True(t, ans.TotalAmount.Equal(dec("25.00")), "got %s", ans.TotalAmount)
	assert.Equal(t, 1, ans.Count)
	assert.Equal(t, []int{3}, ans.ReceiptIDs)
	// The prompt forbids computing and carries the precomputed numbers.
	assert.Contains(t, llm.lastSys, "may not compute")
	assert.Contains(t, llm.lastUser, "25.00")
}

func TestAnswer_VendorSum(t *testing.T) {
	store := &fakeStore{receipts: testReceipts()}
	llm := &fakeLLM{response: "prose"}
	p := newTestPlanner(store, seededIndex(t, store.receipts), llm, nil)

	ans, err := p.Answer(context.Background(), "how much did we spend at REWE?")
	require.NoError(t, err)
	assert.Equal(t, constants.IntentSumByVendor, ans.Intent)
	assert.True(t, ans.TotalAmount.Equal(dec("45.67")))
	assert.Equal(t, 1, ans.Count)
	assert.Equal(t, []int{1}, ans.ReceiptIDs)
}

func TestAnswer_EmptyDomain(t *testing.T) {
	store := &fakeStore{receipts: nil}
	llm := &fakeLLM{response: "should not be called"}
	p := newTestPlanner(store, vector.NewMemory(4), llm, nil)

	ans, err := p.Answer(context.Background(), "how much did I spend on alcohol?")
	require.NoError(t, err)
	assert.Equal(t, "No matching receipts.", ans.Answer)
	assert.True(t, ans.TotalAmount.IsZero())
	assert.Equal(t, 0, ans.Count)
	assert.Empty(t, llm.lastUser, "completion service must not be called for empty results")
}

func TestAnswer_OfflineLLMDegradesGracefully(t *testing.T) {
	store := &fakeStore{receipts: testReceipts()}
	llm := &fakeLLM{err: common.E(common.KindUpstreamUnavailable, "connection refused")}
	p := newTestPlanner(store, seededIndex(t, store.receipts), llm, nil)

	ans, err := p.Answer(context.Background(), "how much did I spend on alcohol?")
	require.NoError(t, err)
	assert.True(t, ans.TotalAmount.Equal(dec("25.00")))
	assert.Equal(t, offlineProse, ans.Answer)
}

func TestAnswer_EmbedFailureStillAggregates(t *testing.T) {
	store := &fakeStore{receipts: testReceipts()}
	llm := &fakeLLM{response: "prose"}
	p := newTestPlanner(store, vector.NewMemory(4), llm,
		common.E(common.KindUpstreamUnavailable, "embedding down"))

	ans, err := p.Answer(context.Background(), "how much did I spend on alcohol?")
	require.NoError(t, err)
	assert.True(t, ans.TotalAmount.Equal(dec("25.00")))
	// Sources fall back to the aggregation domain.
	assert.Equal(t, []int{3}, ans.ReceiptIDs)
}

func TestAnswer_TopK(t *testing.T) {
	store := &fakeStore{receipts: testReceipts()}
	llm := &fakeLLM{response: "prose"}
	p := newTestPlanner(store, seededIndex(t, store.receipts), llm, nil)

	ans, err := p.Answer(context.Background(), "top 1 expenses")
	require.NoError(t, err)
	assert.Equal(t, constants.IntentListTopK, ans.Intent)
	assert.Equal(t, 1, ans.Count)
	assert.True(t, ans.TotalAmount.Equal(dec("45.67")))
	assert.Equal(t, []int{1}, ans.ReceiptIDs)
}

func TestAnswer_Freeform(t *testing.T) {
	store := &fakeStore{receipts: testReceipts()}
	llm := &fakeLLM{response: "Those receipts are from January and February."}
	p := newTestPlanner(store, seededIndex(t, store.receipts), llm, nil)

	ans, err := p.Answer(context.Background(), "tell me about my spending habits")
	require.NoError(t, err)
	assert.Equal(t, constants.IntentFreeform, ans.Intent)
	assert.Nil(t, ans.TotalAmount)
	assert.NotEmpty(t, ans.ReceiptIDs)
	assert.Equal(t, "Those receipts are from January and February.", ans.Answer)
}

func TestAnswer_DeterministicTotalIsPure(t *testing.T) {
	store := &fakeStore{receipts: testReceipts()}
	llm := &fakeLLM{response: "prose"}
	p := newTestPlanner(store, seededIndex(t, store.receipts), llm, nil)

	first, err := p.Answer(context.Background(), "how much did I spend on alcohol?")
	require.NoError(t, err)
	second, err := p.Answer(context.Background(), "how much did I spend on alcohol?")
	require.NoError(t, err)
	assert.True(t, first.TotalAmount.Equal(*second.TotalAmount))
	assert.Equal(t, first.ReceiptIDs, second.ReceiptIDs)
}

func TestChat_BoundsHistory(t *testing.T) {
	store := &fakeStore{receipts: testReceipts()}
	llm := &fakeLLM{response: "hi"}
	p := newTestPlanner(store, seededIndex(t, store.receipts), llm, nil)

	history := make([][2]string, 25)
	for i := range history {
		history[i] = [2]string{"user", "old turn"}
	}
	_, err := p.Chat(context.Background(), "hello", history)
	require.NoError(t, err)
	assert.Equal(t, "hello", llm.lastUser)
}

func TestChat_UpstreamErrorSurfaced(t *testing.T) {
	store := &fakeStore{receipts: nil}
	llm := &fakeLLM{err: common.E(common.KindUpstreamTimeout, "slow model")}
	p := newTestPlanner(store, vector.NewMemory(4), llm, nil)

	_, err := p.Chat(context.Background(), "hello", nil)
	require.Error(t, err)
	assert.Equal(t, common.KindUpstreamTimeout, common.KindOf(err))
}
