package query

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerlocal/ledgerd/constants"
)

// Filters is the structured filter the classifier extracts from a
// question. Zero values mean the filter is absent.
type Filters struct {
	Category  string // canonical category name
	Keyword   string // item-level watchlist keyword ("alcohol", "beer", ...)
	Vendor    string
	From      *time.Time
	AmountMin *decimal.Decimal
	AmountMax *decimal.Decimal
	FlagKind  constants.FlagKind
	TopK      int
}

// Classify maps a question to an intent plus extracted filters. Intent
// matching walks the fixed lexicon in order; the first matching entry
// wins. The three sum intents share trigger terms and are refined by the
// extracted filters.
func Classify(question string, knownVendors []string, now time.Time) (constants.Intent, Filters) {
	q := strings.ToLower(question)
	f := extractFilters(q, knownVendors, now)

	for _, rule := range constants.IntentLexicon {
		for _, term := range rule.Terms {
			if !strings.Contains(q, term) {
				continue
			}
			intent := rule.Intent
			if intent == constants.IntentSumByCategory {
				// shared sum trigger; refine by filters
				switch {
				case f.Category != "" || f.Keyword != "":
					intent = constants.IntentSumByCategory
				case f.Vendor != "":
					intent = constants.IntentSumByVendor
				default:
					intent = constants.IntentSumByPeriod
				}
			}
			return intent, f
		}
	}

	if f.Category != "" || f.Keyword != "" || f.Vendor != "" || f.From != nil || f.FlagKind != "" {
		return constants.IntentFindSpecific, f
	}
	return constants.IntentFreeform, f
}

func extractFilters(q string, knownVendors []string, now time.Time) Filters {
	var f Filters

	// Item-level watchlist keywords take precedence over the category they
	// also map to: "alcohol" sums matching line items, not receipt totals.
	for _, term := range constants.SuspiciousItemTerms {
		if strings.Contains(q, term) {
			f.Keyword = term
			break
		}
	}
	if f.Keyword == "" {
		if cat, ok := constants.FindInQuery(q); ok {
			f.Category = string(cat)
		}
	}

	for _, vendor := range knownVendors {
		v := strings.ToLower(strings.TrimSpace(vendor))
		if v != "" && strings.Contains(q, v) {
			f.Vendor = vendor
			break
		}
	}

	if m := constants.AmountBetweenPattern.FindStringSubmatch(q); m != nil {
		if lo, ok := parseAmount(m[1]); ok {
			f.AmountMin = &lo
		}
		if hi, ok := parseAmount(m[2]); ok {
			f.AmountMax = &hi
		}
	} else {
		if m := constants.AmountUnderPattern.FindStringSubmatch(q); m != nil {
			if hi, ok := parseAmount(m[1]); ok {
				f.AmountMax = &hi
			}
		}
		if m := constants.AmountOverPattern.FindStringSubmatch(q); m != nil {
			if lo, ok := parseAmount(m[1]); ok {
				f.AmountMin = &lo
			}
		}
	}

	for kw, days := range constants.DateKeywords {
		if strings.Contains(q, kw) {
			from := now.AddDate(0, 0, -days)
			f.From = &from
			break
		}
	}

	for kind, kws := range constants.AuditKeywords {
		for _, kw := range kws {
			if strings.Contains(q, kw) {
				f.FlagKind = kind
				break
			}
		}
		if f.FlagKind != "" {
			break
		}
	}

	f.TopK = 3
	if m := constants.TopKPattern.FindStringSubmatch(q); m != nil {
		if n, ok := parseAmount(m[1]); ok && n.IsPositive() {
			f.TopK = int(n.IntPart())
		}
	}
	return f
}

func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.Replace(strings.TrimSpace(s), ",", ".", 1)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
