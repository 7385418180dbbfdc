package repository

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerlocal/ledgerd/gen/ent"
	"github.com/ledgerlocal/ledgerd/gen/ent/lineitem"
	"github.com/ledgerlocal/ledgerd/gen/ent/receipt"
	"github.com/ledgerlocal/ledgerd/internal/common"
	"github.com/ledgerlocal/ledgerd/internal/entity"

	entsql "entgo.io/ent/dialect/sql"
)

// ReceiptRepository is the typed surface of the relational store. All
// mutations are atomic at the receipt+line-items granularity.
type ReceiptRepository interface {
	Insert(ctx context.Context, r *entity.Receipt) (int, error)
	Update(ctx context.Context, r *entity.Receipt) error
	Delete(ctx context.Context, id int) error
	Get(ctx context.Context, id int) (*entity.Receipt, error)
	List(ctx context.Context, f entity.ListFilter) ([]*entity.Receipt, error)
	DistinctVendors(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
	AllIDs(ctx context.Context) ([]int, error)
	UpdateFlags(ctx context.Context, id int, flags entity.Flags) error
	DuplicateCandidates(ctx context.Context, vendorNorm string, day time.Time, total decimal.Decimal, excludeID int) ([]int, error)
	MonthlyTotals(ctx context.Context) ([]entity.BucketTotal, error)
	VendorTotals(ctx context.Context) ([]entity.BucketTotal, error)
	CategoryTotals(ctx context.Context) ([]entity.BucketTotal, error)
}

type receiptRepository struct {
	client *ent.Client
	logger *slog.Logger
}

func NewReceiptRepository(client *ent.Client, logger *slog.Logger) ReceiptRepository {
	return &receiptRepository{client: client, logger: logger}
}

func (r *receiptRepository) Insert(ctx context.Context, rec *entity.Receipt) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, StoreTimeout)
	defer cancel()

	tx, err := r.client.Tx(ctx)
	if err != nil {
		return 0, common.Wrap(common.KindStoreFailure, "begin insert", err)
	}
	created, err := r.createWithItems(ctx, tx, rec)
	if err != nil {
		_ = tx.Rollback()
		return 0, common.Wrap(common.KindStoreFailure, "insert receipt", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, common.Wrap(common.KindStoreFailure, "commit insert", err)
	}
	r.logger.Info("store.insert.ok", "receipt_id", created.ID, "vendor", rec.Vendor)
	return created.ID, nil
}

func (r *receiptRepository) createWithItems(ctx context.Context, tx *ent.Tx, rec *entity.Receipt) (*ent.Receipt, error) {
	builder := tx.Receipt.Create().
		SetVendorName(rec.Vendor).
		SetVendorNorm(entity.NormalizeVendor(rec.Vendor)).
		SetTxDate(rec.Date).
		SetTotalAmount(rec.Total.InexactFloat64()).
		SetTaxAmount(rec.Tax.InexactFloat64()).
		SetCurrencyCode(rec.Currency).
		SetFlagDuplicate(rec.Flags.Duplicate).
		SetFlagSuspicious(rec.Flags.Suspicious).
		SetFlagMissingVat(rec.Flags.MissingVAT).
		SetFlagMathError(rec.Flags.MathError)
	if rec.Category != "" {
		builder = builder.SetCategory(rec.Category)
	}
	if rec.PaymentMethod != "" {
		builder = builder.SetPaymentMethod(rec.PaymentMethod)
	}
	if rec.ReceiptNumber != "" {
		builder = builder.SetReceiptNumber(rec.ReceiptNumber)
	}
	if rec.ImageRef != "" {
		builder = builder.SetImageRef(rec.ImageRef)
	}
	created, err := builder.Save(ctx)
	if err != nil {
		return nil, err
	}
	for _, it := range rec.Items {
		ib := tx.LineItem.Create().
			SetReceiptID(created.ID).
			SetDescription(it.Description).
			SetQuantity(it.Quantity).
			SetUnitPrice(it.UnitPrice.InexactFloat64()).
			SetLineTotal(it.Total.InexactFloat64())
		if it.VATRate != nil {
			ib = ib.SetVatRate(it.VATRate.InexactFloat64())
		}
		if _, err := ib.Save(ctx); err != nil {
			return nil, err
		}
	}
	return created, nil
}

// Update replaces the stored receipt and all its line items.
func (r *receiptRepository) Update(ctx context.Context, rec *entity.Receipt) error {
	ctx, cancel := context.WithTimeout(ctx, StoreTimeout)
	defer cancel()

	tx, err := r.client.Tx(ctx)
	if err != nil {
		return common.Wrap(common.KindStoreFailure, "begin update", err)
	}
	err = func() error {
		upd := tx.Receipt.UpdateOneID(rec.ID).
			SetVendorName(rec.Vendor).
			SetVendorNorm(entity.NormalizeVendor(rec.Vendor)).
			SetTxDate(rec.Date).
			SetTotalAmount(rec.Total.InexactFloat64()).
			SetTaxAmount(rec.Tax.InexactFloat64()).
			SetCurrencyCode(rec.Currency).
			SetCategory(rec.Category).
			SetPaymentMethod(rec.PaymentMethod).
			SetReceiptNumber(rec.ReceiptNumber).
			SetImageRef(rec.ImageRef).
			SetFlagDuplicate(rec.Flags.Duplicate).
			SetFlagSuspicious(rec.Flags.Suspicious).
			SetFlagMissingVat(rec.Flags.MissingVAT).
			SetFlagMathError(rec.Flags.MathError)
		if _, err := upd.Save(ctx); err != nil {
			return err
		}
		if _, err := tx.LineItem.Delete().Where(lineitem.ReceiptIDEQ(rec.ID)).Exec(ctx); err != nil {
			return err
		}
		for _, it := range rec.Items {
			ib := tx.LineItem.Create().
				SetReceiptID(rec.ID).
				SetDescription(it.Description).
				SetQuantity(it.Quantity).
				SetUnitPrice(it.UnitPrice.InexactFloat64()).
				SetLineTotal(it.Total.InexactFloat64())
			if it.VATRate != nil {
				ib = ib.SetVatRate(it.VATRate.InexactFloat64())
			}
			if _, err := ib.Save(ctx); err != nil {
				return err
			}
		}
		return nil
	}()
	if err != nil {
		_ = tx.Rollback()
		if ent.IsNotFound(err) {
			return common.E(common.KindNotFound, "receipt %d not found", rec.ID)
		}
		return common.Wrap(common.KindStoreFailure, "update receipt", err)
	}
	if err := tx.Commit(); err != nil {
		return common.Wrap(common.KindStoreFailure, "commit update", err)
	}
	r.logger.Info("store.update.ok", "receipt_id", rec.ID)
	return nil
}

func (r *receiptRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, StoreTimeout)
	defer cancel()

	err := r.client.Receipt.DeleteOneID(id).Exec(ctx)
	if ent.IsNotFound(err) {
		return common.E(common.KindNotFound, "receipt %d not found", id)
	}
	if err != nil {
		return common.Wrap(common.KindStoreFailure, "delete receipt", err)
	}
	r.logger.Info("store.delete.ok", "receipt_id", id)
	return nil
}

func (r *receiptRepository) Get(ctx context.Context, id int) (*entity.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, StoreTimeout)
	defer cancel()

	rec, err := r.client.Receipt.Query().
		Where(receipt.IDEQ(id)).
		WithItems(func(q *ent.LineItemQuery) {
			q.Order(lineitem.ByID())
		}).
		Only(ctx)
	if ent.IsNotFound(err) {
		return nil, common.E(common.KindNotFound, "receipt %d not found", id)
	}
	if err != nil {
		return nil, common.Wrap(common.KindStoreFailure, "get receipt", err)
	}
	return toReceipt(rec), nil
}

func (r *receiptRepository) List(ctx context.Context, f entity.ListFilter) ([]*entity.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, StoreTimeout)
	defer cancel()

	q := r.client.Receipt.Query()
	if f.Vendor != "" {
		q = q.Where(receipt.VendorNormEQ(entity.NormalizeVendor(f.Vendor)))
	}
	if f.Category != "" {
		q = q.Where(receipt.CategoryEQ(f.Category))
	}
	if f.From != nil {
		q = q.Where(receipt.TxDateGTE(*f.From))
	}
	if f.To != nil {
		q = q.Where(receipt.TxDateLTE(*f.To))
	}
	if f.FlagKind != "" {
		switch f.FlagKind {
		case "duplicate":
			q = q.Where(receipt.FlagDuplicate(true))
		case "suspicious":
			q = q.Where(receipt.FlagSuspicious(true))
		case "missing_vat":
			q = q.Where(receipt.FlagMissingVat(true))
		case "math_error":
			q = q.Where(receipt.FlagMathError(true))
		}
	}
	if f.Flagged != nil {
		if *f.Flagged {
			q = q.Where(receipt.Or(
				receipt.FlagDuplicate(true),
				receipt.FlagSuspicious(true),
				receipt.FlagMissingVat(true),
				receipt.FlagMathError(true),
			))
		} else {
			q = q.Where(
				receipt.FlagDuplicate(false),
				receipt.FlagSuspicious(false),
				receipt.FlagMissingVat(false),
				receipt.FlagMathError(false),
			)
		}
	}

	recs, err := q.
		WithItems(func(iq *ent.LineItemQuery) {
			iq.Order(lineitem.ByID())
		}).
		Order(
			receipt.ByTxDate(entsql.OrderDesc()),
			receipt.ByID(entsql.OrderDesc()),
		).
		All(ctx)
	if err != nil {
		r.logger.Error("store.list.failed", "error", err)
		return nil, common.Wrap(common.KindStoreFailure, "list receipts", err)
	}

	out := make([]*entity.Receipt, len(recs))
	for i, rec := range recs {
		out[i] = toReceipt(rec)
	}
	return out, nil
}

func (r *receiptRepository) DistinctVendors(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, StoreTimeout)
	defer cancel()

	vendors, err := r.client.Receipt.Query().
		Unique(true).
		Select(receipt.FieldVendorName).
		Strings(ctx)
	if err != nil {
		return nil, common.Wrap(common.KindStoreFailure, "distinct vendors", err)
	}
	return vendors, nil
}

func (r *receiptRepository) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, StoreTimeout)
	defer cancel()

	n, err := r.client.Receipt.Query().Count(ctx)
	if err != nil {
		return 0, common.Wrap(common.KindStoreFailure, "count receipts", err)
	}
	return n, nil
}

func (r *receiptRepository) AllIDs(ctx context.Context) ([]int, error) {
	ctx, cancel := context.WithTimeout(ctx, StoreTimeout)
	defer cancel()

	ids, err := r.client.Receipt.Query().Order(receipt.ByID()).IDs(ctx)
	if err != nil {
		return nil, common.Wrap(common.KindStoreFailure, "list ids", err)
	}
	return ids, nil
}

// UpdateFlags rewrites only the derived flag cache; other fields and line
// items are left as stored. updated_at advances as on any update.
func (r *receiptRepository) UpdateFlags(ctx context.Context, id int, flags entity.Flags) error {
	ctx, cancel := context.WithTimeout(ctx, StoreTimeout)
	defer cancel()

	err := r.client.Receipt.UpdateOneID(id).
		SetFlagDuplicate(flags.Duplicate).
		SetFlagSuspicious(flags.Suspicious).
		SetFlagMissingVat(flags.MissingVAT).
		SetFlagMathError(flags.MathError).
		Exec(ctx)
	if ent.IsNotFound(err) {
		return common.E(common.KindNotFound, "receipt %d not found", id)
	}
	if err != nil {
		return common.Wrap(common.KindStoreFailure, "update flags", err)
	}
	return nil
}

// DuplicateCandidates returns ids of receipts sharing the normalized vendor
// and calendar day whose totals are within one minor unit. Self-matches are
// excluded by id.
func (r *receiptRepository) DuplicateCandidates(ctx context.Context, vendorNorm string, day time.Time, total decimal.Decimal, excludeID int) ([]int, error) {
	ctx, cancel := context.WithTimeout(ctx, StoreTimeout)
	defer cancel()

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	q := r.client.Receipt.Query().
		Where(
			receipt.VendorNormEQ(vendorNorm),
			receipt.TxDateGTE(dayStart),
			receipt.TxDateLT(dayEnd),
		)
	if excludeID != 0 {
		q = q.Where(receipt.IDNEQ(excludeID))
	}
	recs, err := q.All(ctx)
	if err != nil {
		return nil, common.Wrap(common.KindStoreFailure, "duplicate probe", err)
	}
	var ids []int
	for _, rec := range recs {
		if entity.SameAmount(money(rec.TotalAmount), total) {
			ids = append(ids, rec.ID)
		}
	}
	return ids, nil
}

// Aggregations fetch rows and sum with decimals in Go: the sums the user
// sees must be exact, and sqlite float aggregation is not.

func (r *receiptRepository) MonthlyTotals(ctx context.Context) ([]entity.BucketTotal, error) {
	return r.bucketed(ctx, func(rec *entity.Receipt) (string, bool) {
		return rec.Date.UTC().Format("2006-01"), true
	})
}

func (r *receiptRepository) VendorTotals(ctx context.Context) ([]entity.BucketTotal, error) {
	return r.bucketed(ctx, func(rec *entity.Receipt) (string, bool) {
		return rec.Vendor, true
	})
}

func (r *receiptRepository) CategoryTotals(ctx context.Context) ([]entity.BucketTotal, error) {
	return r.bucketed(ctx, func(rec *entity.Receipt) (string, bool) {
		return rec.Category, rec.Category != ""
	})
}

func (r *receiptRepository) bucketed(ctx context.Context, key func(*entity.Receipt) (string, bool)) ([]entity.BucketTotal, error) {
	recs, err := r.List(ctx, entity.ListFilter{})
	if err != nil {
		return nil, err
	}
	totals := map[string]decimal.Decimal{}
	counts := map[string]int{}
	for _, rec := range recs {
		k, ok := key(rec)
		if !ok {
			continue
		}
		totals[k] = totals[k].Add(rec.Total)
		counts[k]++
	}
	out := make([]entity.BucketTotal, 0, len(totals))
	for k, v := range totals {
		out = append(out, entity.BucketTotal{Key: k, Total: v, Count: counts[k]})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Key < out[j].Key
	})
	return out, nil
}
