package constants

import "strings"

// Watchlist terms for the suspicious-category check. Matching is a
// case-insensitive substring test over line-item descriptions.
var SuspiciousItemTerms = []string{
	"alcohol",
	"wine",
	"beer",
	"spirits",
	"tobacco",
	"cigarette",
}

// Categories that mark a receipt suspicious regardless of its items.
var SuspiciousCategories = []string{
	"bar",
	"alcohol",
	"tobacco",
}

// FlagKind identifies one of the four audit flags.
type FlagKind string

const (
	FlagDuplicate  FlagKind = "duplicate"
	FlagSuspicious FlagKind = "suspicious"
	FlagMissingVAT FlagKind = "missing_vat"
	FlagMathError  FlagKind = "math_error"
)

// keywordGroups widens the umbrella terms: a question about "alcohol"
// must match beer and wine line items too.
var keywordGroups = map[string][]string{
	"alcohol": {"alcohol", "wine", "beer", "spirits"},
	"tobacco": {"tobacco", "cigarette"},
}

// ExpandKeyword returns the watchlist terms a query keyword stands for.
func ExpandKeyword(kw string) []string {
	if g, ok := keywordGroups[strings.ToLower(kw)]; ok {
		return g
	}
	return []string{strings.ToLower(kw)}
}

// IsSuspiciousDescription reports whether a line-item description matches
// any watchlist term.
func IsSuspiciousDescription(desc string) bool {
	d := strings.ToLower(desc)
	for _, term := range SuspiciousItemTerms {
		if strings.Contains(d, term) {
			return true
		}
	}
	return false
}

// IsSuspiciousCategory reports whether a receipt category is on the
// suspicious list.
func IsSuspiciousCategory(category string) bool {
	c := strings.ToLower(strings.TrimSpace(category))
	for _, s := range SuspiciousCategories {
		if c == s {
			return true
		}
	}
	return false
}
