// Package audit derives the four receipt flags. The engine is a pure
// function over a receipt and a duplicate probe; it never mutates state.
package audit

import (
	"context"

	"github.com/ledgerlocal/ledgerd/constants"
	"github.com/ledgerlocal/ledgerd/internal/entity"
)

// Probe answers the one store question the engine needs: which other
// receipts share the receipt's normalized vendor, calendar day, and a
// total within one minor unit (self-matches excluded by identifier).
type Probe interface {
	Candidates(ctx context.Context, r *entity.Receipt) ([]int, error)
}

// Run computes all four flags for a receipt. The flags are independent;
// any subset may be true.
func Run(ctx context.Context, r *entity.Receipt, probe Probe) (entity.Flags, error) {
	flags := entity.Flags{
		MissingVAT: missingVAT(r),
		MathError:  mathError(r),
		Suspicious: suspicious(r),
	}

	if probe != nil {
		ids, err := probe.Candidates(ctx, r)
		if err != nil {
			return entity.Flags{}, err
		}
		flags.Duplicate = len(ids) > 0
	}
	return flags, nil
}

// missingVAT: tax is zero, or a non-empty item list carries only zero VAT
// rates.
func missingVAT(r *entity.Receipt) bool {
	if r.Tax.IsZero() {
		return true
	}
	if len(r.Items) == 0 {
		return false
	}
	for _, it := range r.Items {
		if it.VATRate == nil || !it.VATRate.IsZero() {
			return false
		}
	}
	return true
}

// mathError: with a non-empty item list, the line totals must sum to
// total − tax within one minor unit.
func mathError(r *entity.Receipt) bool {
	if len(r.Items) == 0 {
		return false
	}
	expected := r.Total.Sub(r.Tax)
	return !entity.SameAmount(r.ItemsSum(), expected)
}

func suspicious(r *entity.Receipt) bool {
	if constants.IsSuspiciousCategory(r.Category) {
		return true
	}
	for _, it := range r.Items {
		if constants.IsSuspiciousDescription(it.Description) {
			return true
		}
	}
	return false
}
