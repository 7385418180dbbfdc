// Package ingest is the single write path: validate, audit, write-through
// to the relational store and the vector index.
package ingest

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ledgerlocal/ledgerd/internal/audit"
	"github.com/ledgerlocal/ledgerd/internal/common"
	"github.com/ledgerlocal/ledgerd/internal/embedding"
	"github.com/ledgerlocal/ledgerd/internal/entity"
	"github.com/ledgerlocal/ledgerd/internal/repository"
	"github.com/ledgerlocal/ledgerd/internal/vector"
)

// probeAdapter exposes the repository duplicate probe to the audit engine.
type probeAdapter struct {
	repo      repository.ReceiptRepository
	excludeID int
}

func (p probeAdapter) Candidates(ctx context.Context, r *entity.Receipt) ([]int, error) {
	return p.repo.DuplicateCandidates(ctx, entity.NormalizeVendor(r.Vendor), r.Date.UTC(), r.Total, p.excludeID)
}

type Service struct {
	repo     repository.ReceiptRepository
	index    vector.Index
	embedder embedding.Embedder
	queue    *ReconcileQueue
	currency string
	logger   *slog.Logger
}

func NewService(repo repository.ReceiptRepository, index vector.Index, embedder embedding.Embedder, currency string, logger *slog.Logger) *Service {
	s := &Service{
		repo:     repo,
		index:    index,
		embedder: embedder,
		currency: currency,
		logger:   logger,
	}
	s.queue = NewReconcileQueue(s.upsertVector, logger)
	return s
}

// Queue returns the reconciliation queue for lifecycle control.
func (s *Service) Queue() *ReconcileQueue { return s.queue }

// Ingest validates a record, runs the audit engine, and writes through to
// both stores. The store write is never rolled back when the index upsert
// fails; the identifier goes on the reconciliation queue instead.
func (s *Service) Ingest(ctx context.Context, rec *entity.Receipt) (int, entity.Flags, error) {
	if err := s.validate(rec); err != nil {
		return 0, entity.Flags{}, err
	}

	flags, err := audit.Run(ctx, rec, probeAdapter{repo: s.repo})
	if err != nil {
		return 0, entity.Flags{}, err
	}
	rec.Flags = flags

	id, err := s.repo.Insert(ctx, rec)
	if err != nil {
		return 0, entity.Flags{}, err
	}
	rec.ID = id

	// Earlier receipts that this one duplicates now carry the flag too.
	if flags.Duplicate {
		s.reflagDuplicates(ctx, rec)
	}

	if err := s.upsertVector(ctx, id); err != nil {
		s.logger.Warn("ingest.index_deferred", "receipt_id", id, "error", err)
		s.queue.Defer(id)
	}
	return id, flags, nil
}

// Update replaces a stored receipt, re-runs audit, and re-embeds.
func (s *Service) Update(ctx context.Context, rec *entity.Receipt) (entity.Flags, error) {
	if err := s.validate(rec); err != nil {
		return entity.Flags{}, err
	}
	flags, err := audit.Run(ctx, rec, probeAdapter{repo: s.repo, excludeID: rec.ID})
	if err != nil {
		return entity.Flags{}, err
	}
	rec.Flags = flags

	if err := s.repo.Update(ctx, rec); err != nil {
		return entity.Flags{}, err
	}
	if err := s.upsertVector(ctx, rec.ID); err != nil {
		s.logger.Warn("ingest.index_deferred", "receipt_id", rec.ID, "error", err)
		s.queue.Defer(rec.ID)
	}
	return flags, nil
}

// Delete removes a receipt and evicts its vector.
func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.index.Remove(ctx, id); err != nil {
		s.logger.Warn("ingest.index_evict_failed", "receipt_id", id, "error", err)
	}
	return nil
}

// upsertVector re-reads the stored receipt (flags included) and writes its
// embedding and metadata to the index.
func (s *Service) upsertVector(ctx context.Context, id int) error {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	doc := vector.Document(rec)
	vec, err := s.embedder.Embed(ctx, doc)
	if err != nil {
		return err
	}
	return s.index.Add(ctx, vector.Entry{
		ID:        id,
		Document:  doc,
		Embedding: vec,
		Meta:      vector.Metadata(rec),
	})
}

// reflagDuplicates marks the earlier partners of a freshly detected
// duplicate. Best-effort: an error here never fails the ingest.
func (s *Service) reflagDuplicates(ctx context.Context, rec *entity.Receipt) {
	ids, err := s.repo.DuplicateCandidates(ctx, entity.NormalizeVendor(rec.Vendor), rec.Date.UTC(), rec.Total, rec.ID)
	if err != nil {
		s.logger.Warn("ingest.reflag_probe_failed", "receipt_id", rec.ID, "error", err)
		return
	}
	for _, partnerID := range ids {
		partner, err := s.repo.Get(ctx, partnerID)
		if err != nil || partner.Flags.Duplicate {
			continue
		}
		partner.Flags.Duplicate = true
		if err := s.repo.UpdateFlags(ctx, partnerID, partner.Flags); err != nil {
			s.logger.Warn("ingest.reflag_failed", "receipt_id", partnerID, "error", err)
			continue
		}
		if err := s.upsertVector(ctx, partnerID); err != nil {
			s.queue.Defer(partnerID)
		}
	}
}

// RecomputeAllFlags re-runs the audit engine over every stored receipt and
// rewrites flags that drifted. Returns the number of changed receipts.
func (s *Service) RecomputeAllFlags(ctx context.Context) (int, error) {
	ids, err := s.repo.AllIDs(ctx)
	if err != nil {
		return 0, err
	}
	changed := 0
	for _, id := range ids {
		rec, err := s.repo.Get(ctx, id)
		if err != nil {
			return changed, err
		}
		flags, err := audit.Run(ctx, rec, probeAdapter{repo: s.repo, excludeID: id})
		if err != nil {
			return changed, err
		}
		if flags == rec.Flags {
			continue
		}
		if err := s.repo.UpdateFlags(ctx, id, flags); err != nil {
			return changed, err
		}
		if err := s.upsertVector(ctx, id); err != nil {
			s.queue.Defer(id)
		}
		changed++
	}
	s.logger.Info("audit.recompute_done", "receipts", len(ids), "changed", changed)
	return changed, nil
}

// Reindex sweeps every stored receipt into the vector index. Used by the
// reindex command and on startup when the index is empty but the store is
// not.
func (s *Service) Reindex(ctx context.Context) (int, error) {
	ids, err := s.repo.AllIDs(ctx)
	if err != nil {
		return 0, err
	}
	for i, id := range ids {
		if err := s.upsertVector(ctx, id); err != nil {
			return i, err
		}
	}
	s.logger.Info("index.sweep_done", "receipts", len(ids))
	return len(ids), nil
}

func (s *Service) validate(rec *entity.Receipt) error {
	rec.Vendor = collapse(rec.Vendor)
	if rec.Vendor == "" {
		return common.E(common.KindValidation, "vendor is required")
	}
	if rec.Date.IsZero() {
		return common.E(common.KindValidation, "date is required")
	}
	if rec.Total.IsNegative() {
		return common.E(common.KindValidation, "total must be non-negative")
	}
	if rec.Tax.IsNegative() {
		return common.E(common.KindValidation, "tax must be non-negative")
	}
	if rec.Total.LessThan(rec.Tax) {
		return common.E(common.KindValidation, "total must be >= tax")
	}
	if rec.Currency == "" {
		rec.Currency = s.currency
	}
	if len(rec.Currency) != 3 {
		return common.E(common.KindValidation, "currency must be a 3-letter code")
	}
	rec.Total = rec.Total.Round(2)
	rec.Tax = rec.Tax.Round(2)

	for i := range rec.Items {
		it := &rec.Items[i]
		it.Description = collapse(it.Description)
		if it.Description == "" {
			return common.E(common.KindValidation, "item %d: description is required", i+1)
		}
		if it.Quantity <= 0 {
			it.Quantity = 1
		}
		if it.UnitPrice.IsNegative() || it.Total.IsNegative() {
			return common.E(common.KindValidation, "item %d: amounts must be non-negative", i+1)
		}
		qty := decimal.NewFromInt(int64(it.Quantity))
		if it.Total.IsZero() && !it.UnitPrice.IsZero() {
			it.Total = it.UnitPrice.Mul(qty).Round(2)
		}
		if it.UnitPrice.IsZero() && !it.Total.IsZero() {
			it.UnitPrice = it.Total.DivRound(qty, 2)
		}
		if !entity.SameAmount(it.UnitPrice.Mul(qty), it.Total) {
			return common.E(common.KindValidation,
				"item %d: quantity x unit price differs from line total by more than one minor unit", i+1)
		}
		if it.VATRate != nil {
			if it.VATRate.IsNegative() || it.VATRate.GreaterThan(decimal.NewFromInt(100)) {
				return common.E(common.KindValidation, "item %d: VAT percentage must be within 0-100", i+1)
			}
		}
		it.UnitPrice = it.UnitPrice.Round(2)
		it.Total = it.Total.Round(2)
	}
	return nil
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
