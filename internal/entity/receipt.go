package entity

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Flags is the set of audit flags derived from a receipt and the store.
// They are a cached value of the audit engine's output, never set by hand.
type Flags struct {
	Duplicate  bool `json:"duplicate"`
	Suspicious bool `json:"suspicious"`
	MissingVAT bool `json:"missingVAT"`
	MathError  bool `json:"mathError"`
}

// Any reports whether at least one flag is set.
func (f Flags) Any() bool {
	return f.Duplicate || f.Suspicious || f.MissingVAT || f.MathError
}

// LineItem is one row inside a receipt.
type LineItem struct {
	ID          int
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
	VATRate     *decimal.Decimal // percent, 0-100
}

// Receipt is one purchase event, the primary unit of storage and retrieval.
type Receipt struct {
	ID            int
	Vendor        string
	Date          time.Time
	Total         decimal.Decimal
	Tax           decimal.Decimal
	Currency      string
	Category      string
	PaymentMethod string
	ReceiptNumber string
	ImageRef      string
	Flags         Flags
	Items         []LineItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ItemsSum returns the sum of per-line totals.
func (r *Receipt) ItemsSum() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range r.Items {
		sum = sum.Add(it.Total)
	}
	return sum
}

var spaceRun = regexp.MustCompile(`\s+`)

// NormalizeVendor trims, collapses inner whitespace, and lowercases a
// vendor name. Duplicate detection and vendor filters compare this form.
func NormalizeVendor(name string) string {
	return strings.ToLower(spaceRun.ReplaceAllString(strings.TrimSpace(name), " "))
}

// MinorUnit is the comparison tolerance for money equality checks (one
// currency minor unit, e.g. 0.01 EUR).
var MinorUnit = decimal.New(1, -2)

// SameAmount reports whether two amounts are equal within one minor unit.
func SameAmount(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(MinorUnit)
}

// ListFilter narrows a list-receipts query. Zero values mean "no filter".
type ListFilter struct {
	Vendor   string // matched against the normalized vendor name
	Category string
	From     *time.Time
	To       *time.Time
	Flagged  *bool  // any flag set / none set
	FlagKind string // one of the constants.FlagKind values
}

// BucketTotal is one row of an aggregation result.
type BucketTotal struct {
	Key   string          `json:"key"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}
