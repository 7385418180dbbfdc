package repository

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerlocal/ledgerd/gen/ent/enttest"
	"github.com/ledgerlocal/ledgerd/internal/common"
	"github.com/ledgerlocal/ledgerd/internal/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestRepo(t *testing.T) ReceiptRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?cache=shared&_busy_timeout=5000",
		filepath.Join(t.TempDir(), "test.db"))
	client := enttest.Open(t, "sqlite3", dsn)
	t.Cleanup(func() { _ = client.Close() })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewReceiptRepository(client, logger)
}

func receiptFixture(vendor string, day time.Time, total string) *entity.Receipt {
	return &entity.Receipt{
		Vendor:   vendor,
		Date:     day,
		Total:    dec(total),
		Tax:      dec("1.00"),
		Currency: "EUR",
		Items: []entity.LineItem{
			{Description: "Posten", Quantity: 1, UnitPrice: dec(total), Total: dec(total)},
		},
	}
}

func TestInsertAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	rec := receiptFixture("REWE", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), "45.67")
	rec.Category = "Groceries"
	rec.Flags = entity.Flags{Suspicious: true}

	id, err := repo.Insert(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "REWE", got.Vendor)
	assert.True(t, got.Total.Equal(dec("45.67")))
	assert.Equal(t, "Groceries", got.Category)
	assert.True(t, got.Flags.Suspicious)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Posten", got.Items[0].Description)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestGet_NotFound(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.Get(context.Background(), 42)
	assert.Equal(t, common.KindNotFound, common.KindOf(err))
}

func TestMonotonicIDs(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 3; i++ {
		id, err := repo.Insert(ctx, receiptFixture(fmt.Sprintf("V%d", i), day, "10.00"))
		require.NoError(t, err)
		assert.Equal(t, i, id)
	}
}

func TestList_OrderingAndFilters(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)

	_, err := repo.Insert(ctx, receiptFixture("REWE", jan, "10.00"))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, receiptFixture("Aldi", feb, "20.00"))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, receiptFixture("REWE", feb, "30.00"))
	require.NoError(t, err)

	// Default ordering: tx_date desc, id desc.
	all, err := repo.List(ctx, entity.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int{3, 2, 1}, []int{all[0].ID, all[1].ID, all[2].ID})

	// Vendor filter matches the normalized form.
	rewes, err := repo.List(ctx, entity.ListFilter{Vendor: "  rewe "})
	require.NoError(t, err)
	assert.Len(t, rewes, 2)

	// Date range.
	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	febOnly, err := repo.List(ctx, entity.ListFilter{From: &from})
	require.NoError(t, err)
	assert.Len(t, febOnly, 2)
}

func TestList_FlagFilters(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	clean := receiptFixture("A", day, "10.00")
	_, err := repo.Insert(ctx, clean)
	require.NoError(t, err)

	flagged := receiptFixture("B", day, "20.00")
	flagged.Flags = entity.Flags{MathError: true}
	_, err = repo.Insert(ctx, flagged)
	require.NoError(t, err)

	yes := true
	out, err := repo.List(ctx, entity.ListFilter{Flagged: &yes})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "B", out[0].Vendor)

	out, err = repo.List(ctx, entity.ListFilter{FlagKind: "math_error"})
	require.NoError(t, err)
	assert.Len(t, out, 1)

	no := false
	out, err = repo.List(ctx, entity.ListFilter{Flagged: &no})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "A", out[0].Vendor)
}

func TestDelete_CascadesToItems(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Insert(ctx, receiptFixture("REWE", time.Now().UTC(), "9.99"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, id))
	_, err = repo.Get(ctx, id)
	assert.Equal(t, common.KindNotFound, common.KindOf(err))

	assert.Equal(t, common.KindNotFound, common.KindOf(repo.Delete(ctx, id)))
}

func TestUpdate_FullReplacement(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	rec := receiptFixture("REWE", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "10.00")
	id, err := repo.Insert(ctx, rec)
	require.NoError(t, err)

	rec.ID = id
	rec.Vendor = "REWE City"
	rec.Items = []entity.LineItem{
		{Description: "Neu", Quantity: 2, UnitPrice: dec("3.00"), Total: dec("6.00")},
	}
	require.NoError(t, repo.Update(ctx, rec))

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "REWE City", got.Vendor)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Neu", got.Items[0].Description)
	assert.Equal(t, 2, got.Items[0].Quantity)
}

func TestDuplicateCandidates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	day := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	id1, err := repo.Insert(ctx, receiptFixture("REWE", day, "45.67"))
	require.NoError(t, err)

	// Same vendor (modulo normalization), same calendar day, total within
	// one minor unit.
	later := time.Date(2024, 1, 15, 23, 59, 0, 0, time.UTC)
	ids, err := repo.DuplicateCandidates(ctx, "rewe", later, dec("45.68"), 0)
	require.NoError(t, err)
	assert.Equal(t, []int{id1}, ids)

	// Different day.
	ids, err = repo.DuplicateCandidates(ctx, "rewe", day.AddDate(0, 0, 1), dec("45.67"), 0)
	require.NoError(t, err)
	assert.Empty(t, ids)

	// Amount outside the minor unit.
	ids, err = repo.DuplicateCandidates(ctx, "rewe", day, dec("45.70"), 0)
	require.NoError(t, err)
	assert.Empty(t, ids)

	// Self-match excluded.
	ids, err = repo.DuplicateCandidates(ctx, "rewe", day, dec("45.67"), id1)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestAggregations_OrderingAndTies(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	jan := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)

	a := receiptFixture("Alpha", jan, "50.00")
	a.Category = "Travel"
	_, err := repo.Insert(ctx, a)
	require.NoError(t, err)

	b := receiptFixture("Beta", feb, "50.00")
	b.Category = "Meals"
	_, err = repo.Insert(ctx, b)
	require.NoError(t, err)

	c := receiptFixture("Alpha", feb, "25.00")
	c.Category = "Travel"
	_, err = repo.Insert(ctx, c)
	require.NoError(t, err)

	vendors, err := repo.VendorTotals(ctx)
	require.NoError(t, err)
	require.Len(t, vendors, 2)
	assert.Equal(t, "Alpha", vendors[0].Key)
	assert.True(t, vendors[0].Total.Equal(dec("75.00")))
	assert.Equal(t, 2, vendors[0].Count)

	categories, err := repo.CategoryTotals(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Travel", categories[0].Key)

	monthly, err := repo.MonthlyTotals(ctx)
	require.NoError(t, err)
	require.Len(t, monthly, 2)
	// Descending amount: February carries 75.00, January 50.00.
	assert.Equal(t, "2024-02", monthly[0].Key)
	assert.True(t, monthly[0].Total.Equal(dec("75.00")))

	// Equal totals tie-break by name ascending.
	d := receiptFixture("Beta", feb, "25.00")
	d.Category = "Meals"
	_, err = repo.Insert(ctx, d)
	require.NoError(t, err)

	vendors, err = repo.VendorTotals(ctx)
	require.NoError(t, err)
	require.Len(t, vendors, 2)
	assert.Equal(t, "Alpha", vendors[0].Key)
	assert.Equal(t, "Beta", vendors[1].Key)
}

func TestDistinctVendors(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	day := time.Now().UTC()
	_, err := repo.Insert(ctx, receiptFixture("REWE", day, "1.00"))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, receiptFixture("REWE", day.AddDate(0, 0, 1), "2.00"))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, receiptFixture("Aldi", day, "3.00"))
	require.NoError(t, err)

	vendors, err := repo.DistinctVendors(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"REWE", "Aldi"}, vendors)
}
