// Package export produces XLSX workbooks of stored receipts.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ledgerlocal/ledgerd/internal/entity"
	"github.com/ledgerlocal/ledgerd/internal/repository"
)

// Service is a tiny façade over the receipt repository that produces XLSX
// bytes for exports.
type Service struct {
	repo   repository.ReceiptRepository
	logger *slog.Logger
}

func NewService(repo repository.ReceiptRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// ExportReceiptsXLSX returns an XLSX workbook (as bytes) for the given
// date window. A nil bound leaves that side open.
func (s *Service) ExportReceiptsXLSX(ctx context.Context, from, to *time.Time) ([]byte, error) {
	start := time.Now()

	recs, err := s.repo.List(ctx, entity.ListFilter{From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("query receipts: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Receipts"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"ID",
		"Vendor",
		"Date",
		"Category",
		"Total",
		"Tax",
		"Currency",
		"Payment Method",
		"Receipt Number",
		"Flags",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range recs {
		values := []any{
			r.ID,
			r.Vendor,
			r.Date.UTC().Format("2006-01-02"),
			r.Category,
			r.Total.InexactFloat64(),
			r.Tax.InexactFloat64(),
			r.Currency,
			r.PaymentMethod,
			r.ReceiptNumber,
			flagSummary(r.Flags),
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	// Remove the default sheet if it is not ours.
	if sheet != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("export.xlsx_done", "receipts", len(recs),
		"bytes", buf.Len(), "elapsed_ms", time.Since(start).Milliseconds())
	return buf.Bytes(), nil
}

func flagSummary(f entity.Flags) string {
	out := ""
	add := func(set bool, name string) {
		if !set {
			return
		}
		if out != "" {
			out += ","
		}
		out += name
	}
	add(f.Duplicate, "duplicate")
	add(f.Suspicious, "suspicious")
	add(f.MissingVAT, "missing_vat")
	add(f.MathError, "math_error")
	return out
}
