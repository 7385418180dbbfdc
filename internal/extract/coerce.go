package extract

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// parseDecimal coerces a JSON value to a two-digit decimal. String input
// tolerates both '.' and ',' as the decimal separator ("1.234,56",
// "1,234.56", "12,50") but is otherwise strict.
func parseDecimal(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case float64:
		return decimal.NewFromFloat(t).Round(2), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return decimal.Zero, false
		}
		s = normalizeSeparators(s)
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, false
		}
		return d.Round(2), true
	default:
		return decimal.Zero, false
	}
}

// normalizeSeparators rewrites a locale-formatted amount into canonical
// dot-decimal form.
func normalizeSeparators(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	lastDot := strings.LastIndexByte(s, '.')
	lastComma := strings.LastIndexByte(s, ',')
	switch {
	case lastComma > lastDot:
		// comma is the decimal separator; dots are grouping
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case lastDot > lastComma:
		// dot is the decimal separator; commas are grouping
		s = strings.ReplaceAll(s, ",", "")
	}
	return s
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"02.01.2006",
}

// parseDate tries ISO-8601 first, then the dd.mm.yyyy fallback common on
// European receipts.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
