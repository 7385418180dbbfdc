package extract

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVision struct {
	response string
	err      error
	prompt   string
}

func (s *stubVision) CompleteVision(_ context.Context, prompt, _ string) (string, error) {
	s.prompt = prompt
	return s.response, s.err
}

func nullLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExtract_OK(t *testing.T) {
	vision := &stubVision{response: `{
		"vendor_name": "REWE",
		"date": "2024-01-15",
		"total": 45.67,
		"tax": 7.32,
		"currency": "EUR",
		"category": "Groceries",
		"line_items": [
			{"description": "Brot", "quantity": 1, "total_price": 2.99},
			{"description": "Milch", "quantity": 1, "total_price": 1.29}
		]
	}`}
	e := New(vision, "EUR", nullLogger())

	res, err := e.Extract(context.Background(), []byte("imagebytes"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, ConfidenceOK, res.Confidence)
	assert.Equal(t, "REWE", res.Receipt.Vendor)
	assert.True(t, res.Receipt.Total.Equal(decimal.RequireFromString("45.67")))
	assert.Equal(t, "2024-01-15", res.Receipt.Date.Format("2006-01-02"))
	require.Len(t, res.Receipt.Items, 2)
	assert.True(t, res.Receipt.Items[0].UnitPrice.Equal(decimal.RequireFromString("2.99")))
	assert.NotEmpty(t, res.Checksum)
	// The prompt carries the schema verbatim and demands JSON only.
	assert.Contains(t, vision.prompt, `"vendor_name"`)
	assert.Contains(t, vision.prompt, "ONLY")
}

func TestExtract_CommaDecimalsAndGermanDate(t *testing.T) {
	vision := &stubVision{response: "```json\n" + `{
		"vendor_name": "Aral",
		"date": "01.02.2024",
		"total": "62,50",
		"tax": "9,98",
		"line_items": [{"description": "Diesel", "total_price": "62,50"}]
	}` + "\n```"}
	e := New(vision, "EUR", nullLogger())

	res, err := e.Extract(context.Background(), []byte("img"), "image/png")
	require.NoError(t, err)
	assert.True(t, res.Receipt.Total.Equal(decimal.RequireFromString("62.50")))
	assert.Equal(t, "2024-02-01", res.Receipt.Date.Format("2006-01-02"))
	assert.Equal(t, "EUR", res.Receipt.Currency)
}

func TestExtract_ThousandsSeparators(t *testing.T) {
	vision := &stubVision{response: `{
		"vendor_name": "MediaMarkt",
		"date": "2024-05-05",
		"total": "1.299,00"
	}`}
	e := New(vision, "EUR", nullLogger())

	res, err := e.Extract(context.Background(), []byte("img"), "image/png")
	require.NoError(t, err)
	assert.True(t, res.Receipt.Total.Equal(decimal.RequireFromString("1299.00")))
}

func TestExtract_PartialWhenDateMissing(t *testing.T) {
	vision := &stubVision{response: `{"vendor_name": "Kiosk", "total": 3.50}`}
	e := New(vision, "EUR", nullLogger())

	res, err := e.Extract(context.Background(), []byte("img"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, ConfidencePartial, res.Confidence)
	assert.Equal(t, "Kiosk", res.Receipt.Vendor)
}

func TestExtract_FailedOnGarbage(t *testing.T) {
	vision := &stubVision{response: "sorry, the image is unreadable"}
	e := New(vision, "EUR", nullLogger())

	res, err := e.Extract(context.Background(), []byte("corrupt"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, ConfidenceFailed, res.Confidence)
	assert.Equal(t, "sorry, the image is unreadable", res.Raw)
	assert.NotEmpty(t, res.Checksum)
}

func TestExtract_FailedWhenVendorMissing(t *testing.T) {
	vision := &stubVision{response: `{"total": 12.00, "date": "2024-01-01"}`}
	e := New(vision, "EUR", nullLogger())

	res, err := e.Extract(context.Background(), []byte("img"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, ConfidenceFailed, res.Confidence)
}

func TestExtract_RejectsNonImageMime(t *testing.T) {
	e := New(&stubVision{}, "EUR", nullLogger())
	_, err := e.Extract(context.Background(), []byte("x"), "application/pdf")
	require.Error(t, err)
}

func TestExtract_UpstreamErrorPropagates(t *testing.T) {
	e := New(&stubVision{err: assert.AnError}, "EUR", nullLogger())
	_, err := e.Extract(context.Background(), []byte("x"), "image/jpeg")
	require.Error(t, err)
}

func TestParseDate_Layouts(t *testing.T) {
	for in, want := range map[string]string{
		"2024-01-15":           "2024-01-15",
		"2024-01-15T10:30:00Z": "2024-01-15",
		"15.01.2024":           "2024-01-15",
	} {
		got, ok := parseDate(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got.Format("2006-01-02"))
	}
	_, ok := parseDate("Jan 15th 2024")
	assert.False(t, ok)
}
