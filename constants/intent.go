package constants

import "regexp"

// Intent is the query planner's classification of a user question.
type Intent string

const (
	IntentSumByCategory Intent = "sum_by_category"
	IntentSumByVendor   Intent = "sum_by_vendor"
	IntentSumByPeriod   Intent = "sum_by_period"
	IntentCount         Intent = "count"
	IntentListTopK      Intent = "list_top_k"
	IntentFindSpecific  Intent = "find_specific"
	IntentFreeform      Intent = "freeform"
)

// IntentRule binds an intent to its trigger terms. Classification walks the
// lexicon in order and the first rule with a matching term wins.
type IntentRule struct {
	Intent Intent
	Terms  []string
}

// IntentLexicon is the fixed classification lexicon (German and English).
// The three sum intents share trigger terms; the planner refines the pick
// using the filters it extracted from the question.
var IntentLexicon = []IntentRule{
	{IntentListTopK, []string{"top ", "highest", "largest", "biggest", "höchste", "höchsten", "größte"}},
	{IntentCount, []string{"how many", "wie viele", "number of", "anzahl", "count"}},
	{IntentSumByCategory, []string{"how much", "wie viel", "wieviel", "spent", "ausgegeben", "total", "sum", "summe", "gesamt"}},
	{IntentFindSpecific, []string{"show", "find", "list", "which", "zeige", "zeig", "finde", "suche", "welche", "gib mir"}},
}

// Amount filter patterns, tolerant of comma decimals.
var (
	AmountUnderPattern   = regexp.MustCompile(`(?i)(?:unter|below|less than|under)\s+(\d+(?:[.,]\d+)?)`)
	AmountOverPattern    = regexp.MustCompile(`(?i)(?:über|ueber|above|over|more than|greater than)\s+(\d+(?:[.,]\d+)?)`)
	AmountBetweenPattern = regexp.MustCompile(`(?i)(?:zwischen|between)\s+(\d+(?:[.,]\d+)?)\s+(?:und|and)\s+(\d+(?:[.,]\d+)?)`)
	TopKPattern          = regexp.MustCompile(`(?i)top\s*(\d+)`)
)

// Date filter keywords, each mapping to a trailing window in days.
var DateKeywords = map[string]int{
	"last week":       7,
	"this week":       7,
	"letzte woche":    7,
	"letzten woche":   7,
	"last month":      30,
	"this month":      30,
	"letzter monat":   30,
	"letzten monat":   30,
	"last quarter":    90,
	"letztes quartal": 90,
	"last year":       365,
	"this year":       365,
	"letztes jahr":    365,
}

// Audit flag keywords for flag-filtered questions.
var AuditKeywords = map[FlagKind][]string{
	FlagDuplicate:  {"duplicate", "duplikat", "doppelt"},
	FlagSuspicious: {"suspicious", "verdächtig", "verdaechtig"},
	FlagMissingVAT: {"missing vat", "no vat", "fehlende mwst", "ohne mwst", "keine mwst"},
	FlagMathError:  {"math error", "rechenfehler", "mismatch", "falsch berechnet"},
}
