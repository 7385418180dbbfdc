package constants

import (
	"strings"
)

type Category string

const (
	Electronics    Category = "Electronics"
	Hardware       Category = "Hardware"
	Travel         Category = "Travel"
	Groceries      Category = "Groceries"
	Fuel           Category = "Fuel"
	OfficeSupplies Category = "Office Supplies"
	Meals          Category = "Meals"
	Software       Category = "Software"
	Bar            Category = "Bar"
	Other          Category = "Other"
)

var allCategories = []Category{
	Electronics,
	Hardware,
	Travel,
	Groceries,
	Fuel,
	OfficeSupplies,
	Meals,
	Software,
	Bar,
	Other,
}

func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// synonyms maps lowercased labels (German and English) to canonical
// categories. The German entries match the receipts this system ingests.
var synonyms = map[string]Category{
	"electronics":     Electronics,
	"elektronik":      Electronics,
	"hardware":        Hardware,
	"travel":          Travel,
	"reise":           Travel,
	"reisen":          Travel,
	"groceries":       Groceries,
	"lebensmittel":    Groceries,
	"einkauf":         Groceries,
	"supermarkt":      Groceries,
	"fuel":            Fuel,
	"gas":             Fuel,
	"kraftstoff":      Fuel,
	"tanken":          Fuel,
	"benzin":          Fuel,
	"sprit":           Fuel,
	"tankstelle":      Fuel,
	"office supplies": OfficeSupplies,
	"office":          OfficeSupplies,
	"büro":            OfficeSupplies,
	"buero":           OfficeSupplies,
	"bürobedarf":      OfficeSupplies,
	"meals":           Meals,
	"essen":           Meals,
	"mahlzeiten":      Meals,
	"restaurant":      Meals,
	"software":        Software,
	"bar":             Bar,
	"alcohol":         Bar,
	"alkohol":         Bar,
	"tobacco":         Bar,
	"sonstiges":       Other,
	"other":           Other,
}

// Canonicalize maps a free-text label to a canonical category. The second
// return is false when the label was unknown and Other was substituted.
func Canonicalize(input string) (Category, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return Other, false
	}
	if c, ok := synonyms[normalized]; ok {
		return c, true
	}
	for _, c := range allCategories {
		if normalized == strings.ToLower(string(c)) {
			return c, true
		}
	}
	return Other, false
}

// FindInQuery scans a user question for a category keyword. Longer keywords
// are tried first so "office supplies" wins over "office".
func FindInQuery(query string) (Category, bool) {
	q := strings.ToLower(query)
	best := ""
	for kw := range synonyms {
		if strings.Contains(q, kw) && len(kw) > len(best) {
			best = kw
		}
	}
	if best == "" {
		return "", false
	}
	return synonyms[best], true
}
