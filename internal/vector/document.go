package vector

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ledgerlocal/ledgerd/internal/entity"
)

// Document renders the fixed searchable text for a receipt: vendor, date,
// total, category, and every line-item description.
func Document(r *entity.Receipt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Receipt from %s\n", r.Vendor)
	fmt.Fprintf(&b, "Date: %s\n", r.Date.UTC().Format("2006-01-02"))
	fmt.Fprintf(&b, "Total: %s %s\n", r.Total.StringFixed(2), r.Currency)
	category := r.Category
	if category == "" {
		category = "unknown"
	}
	fmt.Fprintf(&b, "Category: %s\n", category)
	if len(r.Items) == 0 {
		b.WriteString("Items: none")
	} else {
		b.WriteString("Items:")
		for _, it := range r.Items {
			fmt.Fprintf(&b, "\n  - %s: %s", it.Description, it.Total.StringFixed(2))
		}
	}
	return b.String()
}

// Metadata builds the filterable metadata mapping for a receipt.
func Metadata(r *entity.Receipt) map[string]string {
	return map[string]string{
		"vendor":   entity.NormalizeVendor(r.Vendor),
		"category": r.Category,
		"date":     r.Date.UTC().Format("2006-01-02"),
		"total":    r.Total.StringFixed(2),
		"flagged":  strconv.FormatBool(r.Flags.Any()),
	}
}
