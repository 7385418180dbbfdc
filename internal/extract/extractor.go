// Package extract converts a receipt image into a structured record via
// the vision completion service, with schema validation and bounded
// repair of the model's JSON.
package extract

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/shopspring/decimal"

	"github.com/ledgerlocal/ledgerd/constants"
	"github.com/ledgerlocal/ledgerd/internal/common"
	"github.com/ledgerlocal/ledgerd/internal/entity"
)

// Confidence classifies how much of the record could be recovered.
type Confidence string

const (
	ConfidenceOK      Confidence = "ok"
	ConfidencePartial Confidence = "partial"
	ConfidenceFailed  Confidence = "failed"
)

// Result is a candidate receipt plus extraction provenance. The extractor
// never writes to the store.
type Result struct {
	Receipt    entity.Receipt
	Confidence Confidence
	Raw        string // raw model output, kept for debugging
	Checksum   string // sha256 of the input bytes
}

// VisionCompleter is the single upstream operation the extractor needs.
type VisionCompleter interface {
	CompleteVision(ctx context.Context, prompt, imageB64 string) (string, error)
}

// receiptSchema is included verbatim in the prompt and used to validate
// the model's response.
const receiptSchema = `{
  "type": "object",
  "properties": {
    "vendor_name": {"type": "string", "minLength": 1},
    "date": {"type": "string"},
    "total": {"type": ["number", "string"]},
    "subtotal": {"type": ["number", "string", "null"]},
    "tax": {"type": ["number", "string", "null"]},
    "tax_rate": {"type": ["number", "string", "null"]},
    "currency": {"type": ["string", "null"]},
    "category": {"type": ["string", "null"]},
    "payment_method": {"type": ["string", "null"]},
    "receipt_number": {"type": ["string", "null"]},
    "line_items": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "description": {"type": "string"},
          "quantity": {"type": ["integer", "number", "null"]},
          "unit_price": {"type": ["number", "string", "null"]},
          "total_price": {"type": ["number", "string", "null"]},
          "vat_rate": {"type": ["number", "string", "null"]}
        },
        "required": ["description"]
      }
    }
  },
  "required": ["vendor_name", "total"]
}`

var compiledSchema = jsonschema.MustCompileString("receipt.schema.json", receiptSchema)

type Extractor struct {
	vision   VisionCompleter
	currency string
	logger   *slog.Logger
}

func New(vision VisionCompleter, defaultCurrency string, logger *slog.Logger) *Extractor {
	return &Extractor{vision: vision, currency: defaultCurrency, logger: logger}
}

func buildPrompt() string {
	return strings.Join([]string{
		"You are an expert at reading receipts and invoices.",
		"Analyze this receipt image carefully and extract ALL visible information.",
		"Respond ONLY with a single JSON object matching this JSON Schema exactly:",
		receiptSchema,
		"Rules:",
		"1. Numbers as plain decimals (12.50, not \"12,50\").",
		"2. Dates in ISO format YYYY-MM-DD.",
		"3. If a field is not readable, use null.",
		"4. The JSON must be valid, with no comments and no surrounding text.",
	}, "\n")
}

// Extract runs one vision completion and parses the response into a
// candidate receipt.
func (e *Extractor) Extract(ctx context.Context, image []byte, mimeType string) (*Result, error) {
	reqID := uuid.New().String()
	start := time.Now()
	sum := sha256.Sum256(image)
	checksum := hex.EncodeToString(sum[:])

	if len(image) == 0 {
		return nil, common.E(common.KindValidation, "empty image")
	}
	if mimeType != "" && !strings.HasPrefix(mimeType, "image/") {
		return nil, common.E(common.KindValidation, "unsupported mime type %q", mimeType)
	}

	e.logger.Info("extract.start", "req_id", reqID, "bytes", len(image), "mime", mimeType)

	raw, err := e.vision.CompleteVision(ctx, buildPrompt(), base64.StdEncoding.EncodeToString(image))
	if err != nil {
		return nil, err
	}

	doc, err := parseModelJSON(raw)
	if err != nil {
		e.logger.Warn("extract.parse_failed", "req_id", reqID, "error", err)
		return &Result{Confidence: ConfidenceFailed, Raw: raw, Checksum: checksum}, nil
	}

	sanitized, dropped := sanitize(doc)
	if len(dropped) > 0 {
		e.logger.Warn("extract.sanitized", "req_id", reqID, "dropped", dropped)
	}
	if err := compiledSchema.Validate(sanitized); err != nil {
		e.logger.Warn("extract.schema_invalid", "req_id", reqID, "error", err)
		return &Result{Confidence: ConfidenceFailed, Raw: raw, Checksum: checksum}, nil
	}

	rec, partial := e.coerce(sanitized)
	res := &Result{Receipt: rec, Raw: raw, Checksum: checksum}
	switch {
	case rec.Vendor == "" || rec.Total.IsZero() && !hasKey(sanitized, "total"):
		res.Confidence = ConfidenceFailed
	case partial || len(dropped) > 0:
		res.Confidence = ConfidencePartial
	default:
		res.Confidence = ConfidenceOK
	}

	e.logger.Info("extract.done",
		"req_id", reqID,
		"confidence", res.Confidence,
		"vendor", rec.Vendor,
		"total", rec.Total.StringFixed(2),
		"items", len(rec.Items),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

func hasKey(m map[string]any, k string) bool {
	_, ok := m[k]
	return ok
}

// coerce converts the validated document into a receipt record. The
// second return is true when optional fields were missing or unusable.
func (e *Extractor) coerce(m map[string]any) (entity.Receipt, bool) {
	partial := false

	rec := entity.Receipt{
		Vendor:   strings.TrimSpace(str(m["vendor_name"])),
		Currency: strings.ToUpper(strings.TrimSpace(str(m["currency"]))),
	}
	if rec.Currency == "" {
		rec.Currency = e.currency
	}

	if total, ok := parseDecimal(m["total"]); ok {
		rec.Total = total
	} else {
		partial = true
	}
	if tax, ok := parseDecimal(m["tax"]); ok {
		rec.Tax = tax
	}

	if date, ok := parseDate(str(m["date"])); ok {
		rec.Date = date
	} else {
		rec.Date = time.Now().UTC().Truncate(24 * time.Hour)
		partial = true
	}

	if cat := strings.TrimSpace(str(m["category"])); cat != "" {
		canon, _ := constants.Canonicalize(cat)
		rec.Category = string(canon)
	}
	rec.PaymentMethod = strings.TrimSpace(str(m["payment_method"]))
	rec.ReceiptNumber = strings.TrimSpace(str(m["receipt_number"]))

	items, ok := m["line_items"].([]any)
	if !ok {
		return rec, partial
	}
	for _, raw := range items {
		im, ok := raw.(map[string]any)
		if !ok {
			partial = true
			continue
		}
		it := entity.LineItem{
			Description: strings.TrimSpace(str(im["description"])),
			Quantity:    1,
		}
		if it.Description == "" {
			partial = true
			continue
		}
		if q, ok := parseDecimal(im["quantity"]); ok && q.IsPositive() {
			it.Quantity = int(q.IntPart())
			if it.Quantity < 1 {
				it.Quantity = 1
			}
		}
		unitOK, totalOK := false, false
		if up, ok := parseDecimal(im["unit_price"]); ok {
			it.UnitPrice = up
			unitOK = true
		}
		if tp, ok := parseDecimal(im["total_price"]); ok {
			it.Total = tp
			totalOK = true
		}
		// Derive whichever of the two prices the model omitted.
		qty := decimal.NewFromInt(int64(it.Quantity))
		switch {
		case totalOK && !unitOK:
			it.UnitPrice = it.Total.DivRound(qty, 2)
		case unitOK && !totalOK:
			it.Total = it.UnitPrice.Mul(qty).Round(2)
		case !unitOK && !totalOK:
			partial = true
		}
		if vr, ok := parseDecimal(im["vat_rate"]); ok {
			it.VATRate = &vr
		}
		rec.Items = append(rec.Items, it)
	}
	return rec, partial
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
