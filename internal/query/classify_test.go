package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerlocal/ledgerd/constants"
)

var classifyNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestClassify_SumByCategory_Keyword(t *testing.T) {
	intent, f := Classify("how much did I spend on alcohol?", nil, classifyNow)
	assert.Equal(t, constants.IntentSumByCategory, intent)
	assert.Equal(t, "alcohol", f.Keyword)
}

func TestClassify_SumByCategory_Category(t *testing.T) {
	intent, f := Classify("wie viel habe ich für Elektronik ausgegeben?", nil, classifyNow)
	assert.Equal(t, constants.IntentSumByCategory, intent)
	assert.Equal(t, string(constants.Electronics), f.Category)
	assert.Empty(t, f.Keyword)
}

func TestClassify_SumByVendor(t *testing.T) {
	intent, f := Classify("how much did we spend at Saturn?", []string{"Saturn", "REWE"}, classifyNow)
	assert.Equal(t, constants.IntentSumByVendor, intent)
	assert.Equal(t, "Saturn", f.Vendor)
}

func TestClassify_SumByPeriod(t *testing.T) {
	intent, f := Classify("how much did we spend last month?", nil, classifyNow)
	assert.Equal(t, constants.IntentSumByPeriod, intent)
	require.NotNil(t, f.From)
	assert.Equal(t, classifyNow.AddDate(0, 0, -30), *f.From)
}

func TestClassify_Count(t *testing.T) {
	intent, _ := Classify("how many receipts do we have from last week?", nil, classifyNow)
	assert.Equal(t, constants.IntentCount, intent)
}

func TestClassify_TopK(t *testing.T) {
	intent, f := Classify("what were my top 5 expenses?", nil, classifyNow)
	assert.Equal(t, constants.IntentListTopK, intent)
	assert.Equal(t, 5, f.TopK)

	intent, f = Classify("show me the highest expenses", nil, classifyNow)
	assert.Equal(t, constants.IntentListTopK, intent)
	assert.Equal(t, 3, f.TopK)
}

func TestClassify_FindSpecific(t *testing.T) {
	intent, f := Classify("show me all duplicate receipts", nil, classifyNow)
	assert.Equal(t, constants.IntentFindSpecific, intent)
	assert.Equal(t, constants.FlagDuplicate, f.FlagKind)
}

func TestClassify_Freeform(t *testing.T) {
	intent, _ := Classify("what's the weather like?", nil, classifyNow)
	assert.Equal(t, constants.IntentFreeform, intent)
}

func TestClassify_FirstLexiconEntryWins(t *testing.T) {
	// "top" precedes the sum terms in the lexicon.
	intent, _ := Classify("top expenses total", nil, classifyNow)
	assert.Equal(t, constants.IntentListTopK, intent)
}

func TestExtractFilters_Amounts(t *testing.T) {
	_, f := Classify("show receipts over 100 euro", nil, classifyNow)
	require.NotNil(t, f.AmountMin)
	assert.Equal(t, "100", f.AmountMin.String())
	assert.Nil(t, f.AmountMax)

	_, f = Classify("zeige Quittungen unter 50,50", nil, classifyNow)
	require.NotNil(t, f.AmountMax)
	assert.Equal(t, "50.5", f.AmountMax.String())

	_, f = Classify("find receipts between 20 and 80", nil, classifyNow)
	require.NotNil(t, f.AmountMin)
	require.NotNil(t, f.AmountMax)
	assert.Equal(t, "20", f.AmountMin.String())
	assert.Equal(t, "80", f.AmountMax.String())
}
