package ingest

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerlocal/ledgerd/internal/common"
	"github.com/ledgerlocal/ledgerd/internal/entity"
	"github.com/ledgerlocal/ledgerd/internal/vector"
)

// fakeRepo is an in-memory ReceiptRepository.
type fakeRepo struct {
	nextID   int
	receipts map[int]*entity.Receipt
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, receipts: map[int]*entity.Receipt{}}
}

func (r *fakeRepo) Insert(_ context.Context, rec *entity.Receipt) (int, error) {
	id := r.nextID
	r.nextID++
	clone := *rec
	clone.ID = id
	r.receipts[id] = &clone
	return id, nil
}

func (r *fakeRepo) Update(_ context.Context, rec *entity.Receipt) error {
	if _, ok := r.receipts[rec.ID]; !ok {
		return common.E(common.KindNotFound, "receipt %d not found", rec.ID)
	}
	clone := *rec
	r.receipts[rec.ID] = &clone
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.receipts[id]; !ok {
		return common.E(common.KindNotFound, "receipt %d not found", id)
	}
	delete(r.receipts, id)
	return nil
}

func (r *fakeRepo) Get(_ context.Context, id int) (*entity.Receipt, error) {
	rec, ok := r.receipts[id]
	if !ok {
		return nil, common.E(common.KindNotFound, "receipt %d not found", id)
	}
	clone := *rec
	return &clone, nil
}

func (r *fakeRepo) List(context.Context, entity.ListFilter) ([]*entity.Receipt, error) {
	var out []*entity.Receipt
	for _, rec := range r.receipts {
		out = append(out, rec)
	}
	return out, nil
}

func (r *fakeRepo) DistinctVendors(context.Context) ([]string, error) { return nil, nil }

func (r *fakeRepo) Count(context.Context) (int, error) { return len(r.receipts), nil }

func (r *fakeRepo) AllIDs(context.Context) ([]int, error) {
	var ids []int
	for id := range r.receipts {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

func (r *fakeRepo) UpdateFlags(_ context.Context, id int, flags entity.Flags) error {
	rec, ok := r.receipts[id]
	if !ok {
		return common.E(common.KindNotFound, "receipt %d not found", id)
	}
	rec.Flags = flags
	return nil
}

func (r *fakeRepo) DuplicateCandidates(_ context.Context, vendorNorm string, day time.Time, total decimal.Decimal, excludeID int) ([]int, error) {
	var ids []int
	for id, rec := range r.receipts {
		if id == excludeID {
			continue
		}
		if entity.NormalizeVendor(rec.Vendor) != vendorNorm {
			continue
		}
		if rec.Date.UTC().Format("2006-01-02") != day.Format("2006-01-02") {
			continue
		}
		if entity.SameAmount(rec.Total, total) {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids, nil
}

func (r *fakeRepo) MonthlyTotals(context.Context) ([]entity.BucketTotal, error)  { return nil, nil }
func (r *fakeRepo) VendorTotals(context.Context) ([]entity.BucketTotal, error)   { return nil, nil }
func (r *fakeRepo) CategoryTotals(context.Context) ([]entity.BucketTotal, error) { return nil, nil }

type stubEmbedder struct{ err error }

func (e stubEmbedder) Embed(context.Context, string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	v := make([]float32, 4)
	v[0] = 1
	return v, nil
}

// flakyIndex fails Add until allowed.
type flakyIndex struct {
	*vector.Memory
	fail bool
}

func (f *flakyIndex) Add(ctx context.Context, e vector.Entry) error {
	if f.fail {
		return common.E(common.KindIndexFailure, "index down")
	}
	return f.Memory.Add(ctx, e)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sample() *entity.Receipt {
	return &entity.Receipt{
		Vendor:   "REWE",
		Date:     time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Total:    dec("45.67"),
		Tax:      dec("7.32"),
		Currency: "EUR",
		Items: []entity.LineItem{
			{Description: "Brot", Total: dec("2.99")},
			{Description: "Milch", Total: dec("1.29")},
			{Description: "Käse", Total: dec("41.39")},
		},
	}
}

func newTestService(repo *fakeRepo, idx vector.Index) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, idx, stubEmbedder{}, "EUR", logger)
}

func TestIngest_CleanReceipt(t *testing.T) {
	repo := newFakeRepo()
	idx := vector.NewMemory(4)
	svc := newTestService(repo, idx)

	id, flags, err := svc.Ingest(context.Background(), sample())
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	assert.Equal(t, entity.Flags{}, flags)
	assert.Equal(t, 1, idx.Count())

	stored, err := repo.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "REWE", stored.Vendor)
}

func TestIngest_DuplicateFlagsBothReceipts(t *testing.T) {
	repo := newFakeRepo()
	idx := vector.NewMemory(4)
	svc := newTestService(repo, idx)

	ctx := context.Background()
	id1, flags1, err := svc.Ingest(ctx, sample())
	require.NoError(t, err)
	assert.False(t, flags1.Duplicate)

	id2, flags2, err := svc.Ingest(ctx, sample())
	require.NoError(t, err)
	assert.Equal(t, 2, id2)
	assert.True(t, flags2.Duplicate)

	// The earlier receipt is re-flagged too.
	first, err := repo.Get(ctx, id1)
	require.NoError(t, err)
	assert.True(t, first.Flags.Duplicate)
}

func TestIngest_VendorNormalizationForDuplicates(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, vector.NewMemory(4))

	ctx := context.Background()
	first := sample()
	first.Vendor = "  REWE  "
	_, _, err := svc.Ingest(ctx, first)
	require.NoError(t, err)

	second := sample()
	second.Vendor = "rewe"
	_, flags, err := svc.Ingest(ctx, second)
	require.NoError(t, err)
	assert.True(t, flags.Duplicate)
}

func TestIngest_ValidationErrors(t *testing.T) {
	svc := newTestService(newFakeRepo(), vector.NewMemory(4))
	ctx := context.Background()

	r := sample()
	r.Vendor = "   "
	_, _, err := svc.Ingest(ctx, r)
	assert.Equal(t, common.KindValidation, common.KindOf(err))

	r = sample()
	r.Total = dec("-1.00")
	_, _, err = svc.Ingest(ctx, r)
	assert.Equal(t, common.KindValidation, common.KindOf(err))

	r = sample()
	r.Tax = r.Total.Add(dec("0.01"))
	_, _, err = svc.Ingest(ctx, r)
	assert.Equal(t, common.KindValidation, common.KindOf(err))

	r = sample()
	r.Items[0].Quantity = 2
	r.Items[0].UnitPrice = dec("2.99")
	r.Items[0].Total = dec("2.99") // 2 x 2.99 != 2.99
	_, _, err = svc.Ingest(ctx, r)
	assert.Equal(t, common.KindValidation, common.KindOf(err))
}

func TestIngest_DefaultsCurrencyAndQuantity(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, vector.NewMemory(4))

	r := sample()
	r.Currency = ""
	r.Items[0].Quantity = 0
	id, _, err := svc.Ingest(context.Background(), r)
	require.NoError(t, err)

	stored, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "EUR", stored.Currency)
	assert.Equal(t, 1, stored.Items[0].Quantity)
}

func TestIngest_IndexFailureDefersNotFails(t *testing.T) {
	repo := newFakeRepo()
	idx := &flakyIndex{Memory: vector.NewMemory(4), fail: true}
	svc := newTestService(repo, idx)

	id, _, err := svc.Ingest(context.Background(), sample())
	require.NoError(t, err, "store write must survive an index failure")
	assert.Equal(t, 1, id)
	assert.Equal(t, 1, svc.Queue().Len())
	assert.Equal(t, 0, idx.Count())

	// Receipt is queryable by identifier even though not yet searchable.
	_, err = repo.Get(context.Background(), id)
	require.NoError(t, err)
}

func TestDelete_EvictsVector(t *testing.T) {
	repo := newFakeRepo()
	idx := vector.NewMemory(4)
	svc := newTestService(repo, idx)

	ctx := context.Background()
	id, _, err := svc.Ingest(ctx, sample())
	require.NoError(t, err)
	require.Equal(t, 1, idx.Count())

	require.NoError(t, svc.Delete(ctx, id))
	assert.Equal(t, 0, idx.Count())
	_, err = repo.Get(ctx, id)
	assert.Equal(t, common.KindNotFound, common.KindOf(err))
}

func TestRecomputeAllFlags(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, vector.NewMemory(4))
	ctx := context.Background()

	id, _, err := svc.Ingest(ctx, sample())
	require.NoError(t, err)

	// Corrupt the cached flags behind the engine's back.
	require.NoError(t, repo.UpdateFlags(ctx, id, entity.Flags{MathError: true}))

	changed, err := svc.RecomputeAllFlags(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	rec, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.Flags{}, rec.Flags)

	// A second run is idempotent.
	changed, err = svc.RecomputeAllFlags(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, changed)
}

func TestReindex(t *testing.T) {
	repo := newFakeRepo()
	idx := vector.NewMemory(4)
	svc := newTestService(repo, idx)
	ctx := context.Background()

	_, _, err := svc.Ingest(ctx, sample())
	require.NoError(t, err)
	other := sample()
	other.Vendor = "Aldi"
	_, _, err = svc.Ingest(ctx, other)
	require.NoError(t, err)

	// Simulate a lost index.
	fresh := vector.NewMemory(4)
	svc2 := newTestService(repo, fresh)
	n, err := svc2.Reindex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, fresh.Count())
}

func TestReconcileQueue_RetriesAndDrops(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	attempts := 0
	q := NewReconcileQueue(func(context.Context, int) error {
		attempts++
		return common.E(common.KindIndexFailure, "still down")
	}, logger)

	q.Defer(7)
	assert.Equal(t, 1, q.Len())
	q.Defer(7) // idempotent
	assert.Equal(t, 1, q.Len())

	// Drive sweeps directly instead of waiting for the tick. The first
	// retry is not due until the base delay has passed.
	q.sweep()
	assert.Equal(t, 0, attempts)

	q.mu.Lock()
	q.pending[7].nextTry = time.Now().Add(-time.Second)
	q.mu.Unlock()
	q.sweep()
	assert.Equal(t, 1, attempts)
	assert.Equal(t, 1, q.Len())

	// Exhaust the attempt budget; the entry is dropped.
	for i := 0; i < reconcileMaxTries; i++ {
		q.mu.Lock()
		if e, ok := q.pending[7]; ok {
			e.nextTry = time.Now().Add(-time.Second)
		}
		q.mu.Unlock()
		q.sweep()
	}
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, reconcileMaxTries, attempts)
}

func TestReconcileQueue_Recovers(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	healthy := false
	q := NewReconcileQueue(func(context.Context, int) error {
		if !healthy {
			return common.E(common.KindIndexFailure, "down")
		}
		return nil
	}, logger)

	q.Defer(3)
	q.mu.Lock()
	q.pending[3].nextTry = time.Now().Add(-time.Second)
	q.mu.Unlock()
	q.sweep()
	assert.Equal(t, 1, q.Len())

	healthy = true
	q.mu.Lock()
	q.pending[3].nextTry = time.Now().Add(-time.Second)
	q.mu.Unlock()
	q.sweep()
	assert.Equal(t, 0, q.Len())
}
