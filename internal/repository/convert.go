package repository

import (
	"github.com/shopspring/decimal"

	"github.com/ledgerlocal/ledgerd/gen/ent"
	"github.com/ledgerlocal/ledgerd/internal/entity"
)

func toReceipt(rec *ent.Receipt) *entity.Receipt {
	out := &entity.Receipt{
		ID:            rec.ID,
		Vendor:        rec.VendorName,
		Date:          rec.TxDate,
		Total:         money(rec.TotalAmount),
		Tax:           money(rec.TaxAmount),
		Currency:      rec.CurrencyCode,
		Category:      rec.Category,
		PaymentMethod: rec.PaymentMethod,
		ReceiptNumber: rec.ReceiptNumber,
		ImageRef:      rec.ImageRef,
		Flags: entity.Flags{
			Duplicate:  rec.FlagDuplicate,
			Suspicious: rec.FlagSuspicious,
			MissingVAT: rec.FlagMissingVat,
			MathError:  rec.FlagMathError,
		},
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
	for _, it := range rec.Edges.Items {
		out.Items = append(out.Items, toLineItem(it))
	}
	return out
}

func toLineItem(it *ent.LineItem) entity.LineItem {
	li := entity.LineItem{
		ID:          it.ID,
		Description: it.Description,
		Quantity:    it.Quantity,
		UnitPrice:   money(it.UnitPrice),
		Total:       money(it.LineTotal),
	}
	if it.VatRate != nil {
		r := decimal.NewFromFloat(*it.VatRate)
		li.VATRate = &r
	}
	return li
}

// money converts a stored numeric(12,2) to a two-digit decimal.
func money(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}
