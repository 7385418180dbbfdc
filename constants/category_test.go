package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalize(t *testing.T) {
	for in, want := range map[string]Category{
		"elektronik":   Electronics,
		"Electronics":  Electronics,
		"LEBENSMITTEL": Groceries,
		"office":       OfficeSupplies,
		"tanken":       Fuel,
	} {
		got, ok := Canonicalize(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	got, ok := Canonicalize("completely made up")
	assert.False(t, ok)
	assert.Equal(t, Other, got)

	_, ok = Canonicalize("  ")
	assert.False(t, ok)
}

func TestFindInQuery_PrefersLongerKeyword(t *testing.T) {
	cat, ok := FindInQuery("how much for office supplies last month?")
	assert.True(t, ok)
	assert.Equal(t, OfficeSupplies, cat)
}

func TestSuspiciousMatching(t *testing.T) {
	assert.True(t, IsSuspiciousDescription("Craft BEER six-pack"))
	assert.True(t, IsSuspiciousDescription("a pack of cigarettes"))
	assert.False(t, IsSuspiciousDescription("Mineralwasser"))

	assert.True(t, IsSuspiciousCategory("Bar"))
	assert.True(t, IsSuspiciousCategory(" alcohol "))
	assert.False(t, IsSuspiciousCategory("Groceries"))
}

func TestExpandKeyword(t *testing.T) {
	assert.Contains(t, ExpandKeyword("alcohol"), "beer")
	assert.Contains(t, ExpandKeyword("alcohol"), "wine")
	assert.Equal(t, []string{"beer"}, ExpandKeyword("beer"))
}
