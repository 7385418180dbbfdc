package audit

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerlocal/ledgerd/internal/entity"
)

type fakeProbe struct {
	ids []int
	err error
}

func (p fakeProbe) Candidates(context.Context, *entity.Receipt) ([]int, error) {
	return p.ids, p.err
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func cleanReceipt() *entity.Receipt {
	return &entity.Receipt{
		Vendor:   "REWE",
		Date:     date(2024, 1, 15),
		Total:    dec("45.67"),
		Tax:      dec("7.32"),
		Currency: "EUR",
		Items: []entity.LineItem{
			{Description: "Brot", Quantity: 1, UnitPrice: dec("2.99"), Total: dec("2.99")},
			{Description: "Milch", Quantity: 1, UnitPrice: dec("1.29"), Total: dec("1.29")},
			{Description: "Käse", Quantity: 1, UnitPrice: dec("41.39"), Total: dec("41.39")},
		},
	}
}

func TestRun_CleanReceipt(t *testing.T) {
	flags, err := Run(context.Background(), cleanReceipt(), fakeProbe{})
	require.NoError(t, err)
	assert.Equal(t, entity.Flags{}, flags)
}

func TestRun_MathErrorAndSuspicious(t *testing.T) {
	// Line sum 25.00 vs total-tax 25.25: off by 0.25.
	r := &entity.Receipt{
		Vendor:   "Bar",
		Date:     date(2024, 2, 1),
		Total:    dec("30.00"),
		Tax:      dec("4.75"),
		Currency: "EUR",
		Items: []entity.LineItem{
			{Description: "Beer", Quantity: 1, UnitPrice: dec("5.00"), Total: dec("5.00")},
			{Description: "Wine", Quantity: 1, UnitPrice: dec("20.00"), Total: dec("20.00")},
		},
	}
	flags, err := Run(context.Background(), r, fakeProbe{})
	require.NoError(t, err)
	assert.True(t, flags.MathError)
	assert.True(t, flags.Suspicious)
	assert.False(t, flags.MissingVAT)
	assert.False(t, flags.Duplicate)
}

func TestRun_MathErrorTolerance(t *testing.T) {
	r := cleanReceipt()
	// Exactly one minor unit off is still within tolerance.
	r.Total = r.Total.Add(dec("0.01"))
	flags, err := Run(context.Background(), r, fakeProbe{})
	require.NoError(t, err)
	assert.False(t, flags.MathError)

	r.Total = r.Total.Add(dec("0.01"))
	flags, err = Run(context.Background(), r, fakeProbe{})
	require.NoError(t, err)
	assert.True(t, flags.MathError)
}

func TestRun_MissingVAT(t *testing.T) {
	r := cleanReceipt()
	r.Tax = decimal.Zero
	r.Total = dec("45.67")
	flags, err := Run(context.Background(), r, fakeProbe{})
	require.NoError(t, err)
	assert.True(t, flags.MissingVAT)
	// 2.99+1.29+41.39 = 45.67 = total - 0, so no math error.
	assert.False(t, flags.MathError)
}

func TestRun_MissingVAT_ZeroRateItems(t *testing.T) {
	zero := decimal.Zero
	r := &entity.Receipt{
		Vendor:   "Kiosk",
		Date:     date(2024, 3, 3),
		Total:    dec("10.00"),
		Tax:      dec("1.00"),
		Currency: "EUR",
		Items: []entity.LineItem{
			{Description: "Zeitung", Quantity: 1, UnitPrice: dec("9.00"), Total: dec("9.00"), VATRate: &zero},
		},
	}
	flags, err := Run(context.Background(), r, fakeProbe{})
	require.NoError(t, err)
	assert.True(t, flags.MissingVAT)
}

func TestRun_EmptyItems(t *testing.T) {
	// Cash-register receipt with only a grand total: legal, no math error,
	// missing-VAT driven by tax alone.
	r := &entity.Receipt{
		Vendor:   "Kiosk",
		Date:     date(2024, 3, 3),
		Total:    dec("9.99"),
		Tax:      dec("1.59"),
		Currency: "EUR",
	}
	flags, err := Run(context.Background(), r, fakeProbe{})
	require.NoError(t, err)
	assert.Equal(t, entity.Flags{}, flags)

	r.Tax = decimal.Zero
	flags, err = Run(context.Background(), r, fakeProbe{})
	require.NoError(t, err)
	assert.True(t, flags.MissingVAT)
	assert.False(t, flags.MathError)
}

func TestRun_TaxEqualsTotal(t *testing.T) {
	r := &entity.Receipt{
		Vendor:   "Amt",
		Date:     date(2024, 4, 1),
		Total:    dec("5.00"),
		Tax:      dec("5.00"),
		Currency: "EUR",
	}
	flags, err := Run(context.Background(), r, fakeProbe{})
	require.NoError(t, err)
	assert.False(t, flags.MissingVAT)
}

func TestRun_SuspiciousCategory(t *testing.T) {
	for _, cat := range []string{"bar", "Bar", "alcohol", "Tobacco"} {
		r := cleanReceipt()
		r.Category = cat
		flags, err := Run(context.Background(), r, fakeProbe{})
		require.NoError(t, err)
		assert.True(t, flags.Suspicious, "category %q", cat)
	}

	r := cleanReceipt()
	r.Category = "Groceries"
	flags, err := Run(context.Background(), r, fakeProbe{})
	require.NoError(t, err)
	assert.False(t, flags.Suspicious)
}

func TestRun_SuspiciousItemSubstring(t *testing.T) {
	r := cleanReceipt()
	r.Items = append(r.Items, entity.LineItem{
		Description: "Craft BEER six-pack", Quantity: 1,
		UnitPrice: dec("0.00"), Total: dec("0.00"),
	})
	flags, err := Run(context.Background(), r, fakeProbe{})
	require.NoError(t, err)
	assert.True(t, flags.Suspicious)
}

func TestRun_Duplicate(t *testing.T) {
	flags, err := Run(context.Background(), cleanReceipt(), fakeProbe{ids: []int{7}})
	require.NoError(t, err)
	assert.True(t, flags.Duplicate)
}

func TestRun_ProbeError(t *testing.T) {
	_, err := Run(context.Background(), cleanReceipt(), fakeProbe{err: assert.AnError})
	require.Error(t, err)
}

func TestRun_NilProbe(t *testing.T) {
	flags, err := Run(context.Background(), cleanReceipt(), nil)
	require.NoError(t, err)
	assert.False(t, flags.Duplicate)
}
