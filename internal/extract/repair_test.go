package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModelJSON_Clean(t *testing.T) {
	m, err := parseModelJSON(`{"vendor_name": "REWE", "total": 45.67}`)
	require.NoError(t, err)
	assert.Equal(t, "REWE", m["vendor_name"])
}

func TestParseModelJSON_Fenced(t *testing.T) {
	raw := "```json\n{\"vendor_name\": \"REWE\", \"total\": 45.67}\n```"
	m, err := parseModelJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, "REWE", m["vendor_name"])
}

func TestParseModelJSON_LeadingProse(t *testing.T) {
	raw := "Here is the extracted receipt:\n{\"vendor_name\": \"REWE\", \"total\": 45.67}\nHope that helps!"
	m, err := parseModelJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, "REWE", m["vendor_name"])
}

func TestParseModelJSON_UnbalancedBraces(t *testing.T) {
	raw := `{"vendor_name": "REWE", "line_items": [{"description": "Brot"}`
	m, err := parseModelJSON(raw)
	require.NoError(t, err)
	items, ok := m["line_items"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 1)
}

func TestParseModelJSON_BraceInString(t *testing.T) {
	raw := `{"vendor_name": "Curly {Brace} Cafe", "total": 1.00`
	m, err := parseModelJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, "Curly {Brace} Cafe", m["vendor_name"])
}

func TestParseModelJSON_Hopeless(t *testing.T) {
	_, err := parseModelJSON("I could not read the receipt, sorry.")
	require.Error(t, err)
}

func TestSanitize(t *testing.T) {
	in := map[string]any{
		"vendor_name":    "REWE",
		"total":          45.67,
		"tax":            nil,
		"category":       "  ",
		"chain":          "REWE Group", // unknown key
		"payment_method": "null",
	}
	out, dropped := sanitize(in)
	assert.Equal(t, "REWE", out["vendor_name"])
	assert.Equal(t, 45.67, out["total"])
	assert.NotContains(t, out, "tax")
	assert.NotContains(t, out, "category")
	assert.NotContains(t, out, "chain")
	assert.NotContains(t, out, "payment_method")
	assert.Len(t, dropped, 4)
}
