package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeVendor(t *testing.T) {
	assert.Equal(t, "rewe", NormalizeVendor("  REWE  "))
	assert.Equal(t, "rewe", NormalizeVendor("rewe"))
	assert.Equal(t, "deutsche bahn", NormalizeVendor("Deutsche\t Bahn"))
	assert.Equal(t, "", NormalizeVendor("   "))
}

func TestSameAmount(t *testing.T) {
	a := decimal.RequireFromString("25.00")
	assert.True(t, SameAmount(a, decimal.RequireFromString("25.01")))
	assert.True(t, SameAmount(a, decimal.RequireFromString("24.99")))
	assert.False(t, SameAmount(a, decimal.RequireFromString("25.02")))
}

func TestFlagsAny(t *testing.T) {
	assert.False(t, Flags{}.Any())
	assert.True(t, Flags{MathError: true}.Any())
}

func TestItemsSum(t *testing.T) {
	r := Receipt{Items: []LineItem{
		{Total: decimal.RequireFromString("5.00")},
		{Total: decimal.RequireFromString("20.00")},
	}}
	assert.True(t, r.ItemsSum().Equal(decimal.RequireFromString("25.00")))
}
