package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerlocal/ledgerd/internal/common"
	"github.com/ledgerlocal/ledgerd/internal/entity"
)

// receiptJSON is the response shape the dashboard consumes.
type receiptJSON struct {
	ID            int            `json:"id"`
	ReceiptNumber string         `json:"receiptNumber"`
	Vendor        string         `json:"vendor"`
	Date          string         `json:"date"`
	Total         float64        `json:"total"`
	Subtotal      float64        `json:"subtotal"`
	VAT           float64        `json:"vat"`
	Currency      string         `json:"currency"`
	Category      string         `json:"category"`
	PaymentMethod string         `json:"paymentMethod"`
	LineItems     []lineItemJSON `json:"lineItems"`
	ImageURL      string         `json:"imageUrl,omitempty"`
	Status        string         `json:"status"`
	CreatedAt     string         `json:"createdAt"`
	UpdatedAt     string         `json:"updatedAt"`
	AuditFlags    flagsJSON      `json:"auditFlags"`
}

type lineItemJSON struct {
	ID          int      `json:"id"`
	Description string   `json:"description"`
	Quantity    int      `json:"quantity"`
	UnitPrice   float64  `json:"unitPrice"`
	Total       float64  `json:"total"`
	VAT         *float64 `json:"vat,omitempty"`
}

type flagsJSON struct {
	IsDuplicate        bool `json:"isDuplicate"`
	SuspiciousCategory bool `json:"suspiciousCategory"`
	MissingVAT         bool `json:"missingVAT"`
	HasTotalMismatch   bool `json:"hasTotalMismatch"`
}

func toReceiptJSON(r *entity.Receipt) receiptJSON {
	out := receiptJSON{
		ID:            r.ID,
		ReceiptNumber: r.ReceiptNumber,
		Vendor:        r.Vendor,
		Date:          r.Date.UTC().Format(time.RFC3339),
		Total:         r.Total.InexactFloat64(),
		Subtotal:      r.Total.Sub(r.Tax).InexactFloat64(),
		VAT:           r.Tax.InexactFloat64(),
		Currency:      r.Currency,
		Category:      r.Category,
		PaymentMethod: r.PaymentMethod,
		ImageURL:      r.ImageRef,
		Status:        "verified",
		CreatedAt:     r.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     r.UpdatedAt.UTC().Format(time.RFC3339),
		AuditFlags: flagsJSON{
			IsDuplicate:        r.Flags.Duplicate,
			SuspiciousCategory: r.Flags.Suspicious,
			MissingVAT:         r.Flags.MissingVAT,
			HasTotalMismatch:   r.Flags.MathError,
		},
	}
	if out.ReceiptNumber == "" {
		out.ReceiptNumber = fmt.Sprintf("RCP-%06d", r.ID)
	}
	if r.Flags.Any() {
		out.Status = "flagged"
	}
	out.LineItems = make([]lineItemJSON, 0, len(r.Items))
	for _, it := range r.Items {
		li := lineItemJSON{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.InexactFloat64(),
			Total:       it.Total.InexactFloat64(),
		}
		if it.VATRate != nil {
			v := it.VATRate.InexactFloat64()
			li.VAT = &v
		}
		out.LineItems = append(out.LineItems, li)
	}
	return out
}

func toReceiptListJSON(recs []*entity.Receipt) []receiptJSON {
	out := make([]receiptJSON, len(recs))
	for i, r := range recs {
		out[i] = toReceiptJSON(r)
	}
	return out
}

// ingestRequest is the structured record the ingest endpoints accept. The
// field aliases tolerate the two client vocabularies in the wild.
type ingestRequest struct {
	Vendor        string          `json:"vendor"`
	Date          string          `json:"date"`
	Total         decimal.Decimal `json:"total"`
	Tax           decimal.Decimal `json:"tax"`
	Currency      string          `json:"currency"`
	Category      string          `json:"category"`
	PaymentMethod string          `json:"paymentMethod"`
	ReceiptNumber string          `json:"receiptNumber"`
	ImageRef      string          `json:"imageRef"`
	Items         []ingestItem    `json:"items"`
}

type ingestItem struct {
	Description string           `json:"description"`
	Desc        string           `json:"desc"`
	Quantity    int              `json:"quantity"`
	UnitPrice   decimal.Decimal  `json:"unitPrice"`
	Amount      decimal.Decimal  `json:"amount"`
	Total       decimal.Decimal  `json:"total"`
	VAT         *decimal.Decimal `json:"vat"`
}

var requestDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"02.01.2006",
}

func (req *ingestRequest) toEntity() (*entity.Receipt, error) {
	rec := &entity.Receipt{
		Vendor:        req.Vendor,
		Total:         req.Total,
		Tax:           req.Tax,
		Currency:      strings.ToUpper(strings.TrimSpace(req.Currency)),
		Category:      strings.TrimSpace(req.Category),
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		ReceiptNumber: strings.TrimSpace(req.ReceiptNumber),
		ImageRef:      strings.TrimSpace(req.ImageRef),
	}

	dateStr := strings.TrimSpace(req.Date)
	if dateStr == "" {
		return nil, common.E(common.KindValidation, "date is required")
	}
	parsed := false
	for _, layout := range requestDateLayouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			rec.Date = t.UTC()
			parsed = true
			break
		}
	}
	if !parsed {
		return nil, common.E(common.KindValidation, "unparseable date %q", dateStr)
	}

	for _, it := range req.Items {
		desc := it.Description
		if desc == "" {
			desc = it.Desc
		}
		total := it.Total
		if total.IsZero() {
			total = it.Amount
		}
		rec.Items = append(rec.Items, entity.LineItem{
			Description: desc,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       total,
			VATRate:     it.VAT,
		})
	}
	return rec, nil
}

func extractConfToJSON(rec *entity.Receipt, confidence string) map[string]any {
	return map[string]any{
		"confidence": confidence,
		"receipt":    extractedReceiptJSON(rec),
	}
}

// extractedReceiptJSON renders a candidate record that has no identifier
// yet.
func extractedReceiptJSON(r *entity.Receipt) map[string]any {
	items := make([]map[string]any, 0, len(r.Items))
	for _, it := range r.Items {
		item := map[string]any{
			"description": it.Description,
			"quantity":    it.Quantity,
			"unitPrice":   it.UnitPrice.InexactFloat64(),
			"total":       it.Total.InexactFloat64(),
		}
		if it.VATRate != nil {
			item["vat"] = it.VATRate.InexactFloat64()
		}
		items = append(items, item)
	}
	return map[string]any{
		"vendor":        r.Vendor,
		"date":          r.Date.UTC().Format("2006-01-02"),
		"total":         r.Total.InexactFloat64(),
		"tax":           r.Tax.InexactFloat64(),
		"currency":      r.Currency,
		"category":      r.Category,
		"paymentMethod": r.PaymentMethod,
		"items":         items,
	}
}
