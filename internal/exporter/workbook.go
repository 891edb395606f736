package exporter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"salesreport/internal/errors"
	"salesreport/pkg/contracts/domain"
)

// Sheet names used in the combined workbook.
const (
	SheetSummary = "Summary"
	SheetCharts  = "Charts"
)

// Header labels for the Summary sheet and the grand-total row.
const (
	summaryTotalHeader = "Total de Vendas"
	grandTotalLabel    = "Total Geral"
)

// WorkbookExporter builds xlsx artifacts with excelize. One exporter
// instance is safe to reuse across runs; every call builds a fresh
// workbook, nothing is shared between artifacts.
type WorkbookExporter struct {
	logger *slog.Logger
}

// NewWorkbookExporter creates a new spreadsheet exporter.
func NewWorkbookExporter(logger *slog.Logger) *WorkbookExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookExporter{logger: logger.With(slog.String("component", "workbook_exporter"))}
}

// ExportPerSalesperson builds one workbook per salesperson group, each
// holding exactly that group's raw rows under the original header. File
// names derive deterministically from the salesperson name; two groups
// sanitizing to the same file name are an export error, never overwritten.
func (e *WorkbookExporter) ExportPerSalesperson(ctx context.Context, table *domain.SummaryTable) ([]domain.ReportArtifact, error) {
	artifacts := make([]domain.ReportArtifact, 0, table.GroupCount())
	seen := make(map[string]string, table.GroupCount())

	for _, group := range table.Groups {
		name := SanitizeFileName(group.Salesperson)
		if name == "" {
			return nil, errors.NewExportError(
				fmt.Sprintf("salesperson name %q sanitizes to an empty file name", group.Salesperson), nil)
		}
		fileName := name + ".xlsx"
		if other, ok := seen[fileName]; ok {
			return nil, errors.NewExportError(
				fmt.Sprintf("salespeople %q and %q map to the same workbook name %q", other, group.Salesperson, fileName), nil)
		}
		seen[fileName] = group.Salesperson

		data, err := e.buildGroupWorkbook(group)
		if err != nil {
			return nil, errors.NewExportError(
				fmt.Sprintf("failed to build workbook for %q", group.Salesperson), err)
		}

		artifacts = append(artifacts, domain.ReportArtifact{
			Name:     fileName,
			MimeType: domain.MimeXLSX,
			Data:     data,
		})
	}

	e.logger.InfoContext(ctx, "per-salesperson workbooks exported",
		slog.Int("workbook_count", len(artifacts)))

	return artifacts, nil
}

// buildGroupWorkbook writes one group's records into a single-sheet
// workbook. Amounts are written as numeric cells so spreadsheet tools can
// recompute them.
func (e *WorkbookExporter) buildGroupWorkbook(group domain.SalespersonGroup) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := writeRecordRows(f, sheet, group.Records); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportCombined builds the combined workbook: a Summary sheet with one
// row per salesperson plus the grand-total row, a Charts sheet embedding
// the two rendered images, and one raw-data sheet per salesperson.
func (e *WorkbookExporter) ExportCombined(ctx context.Context, table *domain.SummaryTable, images *domain.ChartImageSet) (domain.ReportArtifact, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		return domain.ReportArtifact{}, errors.NewExportError("failed to create Summary sheet", err)
	}

	if err := e.writeSummarySheet(f, table); err != nil {
		return domain.ReportArtifact{}, errors.NewExportError("failed to write Summary sheet", err)
	}

	if err := e.writeChartsSheet(f, images); err != nil {
		return domain.ReportArtifact{}, errors.NewExportError("failed to write Charts sheet", err)
	}

	if err := e.writeSalespersonSheets(f, table); err != nil {
		return domain.ReportArtifact{}, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return domain.ReportArtifact{}, errors.NewExportError("failed to serialize combined workbook", err)
	}

	e.logger.InfoContext(ctx, "combined workbook exported",
		slog.Int("sheet_count", 2+table.GroupCount()),
		slog.Int("size_bytes", buf.Len()))

	return domain.ReportArtifact{
		Name:     "summary.xlsx",
		MimeType: domain.MimeXLSX,
		Data:     buf.Bytes(),
	}, nil
}

// writeSummarySheet writes the per-salesperson subtotals and the
// grand-total row. The total row always equals SummaryTable.GrandTotal.
func (e *WorkbookExporter) writeSummarySheet(f *excelize.File, table *domain.SummaryTable) error {
	header := []interface{}{domain.ColumnSalesperson, summaryTotalHeader}
	if err := f.SetSheetRow(SheetSummary, "A1", &header); err != nil {
		return err
	}

	rowNum := 2
	for _, group := range table.Groups {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		row := []interface{}{group.Salesperson, group.Subtotal}
		if err := f.SetSheetRow(SheetSummary, cell, &row); err != nil {
			return err
		}
		rowNum++
	}

	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	totalRow := []interface{}{grandTotalLabel, table.GrandTotal}
	return f.SetSheetRow(SheetSummary, cell, &totalRow)
}

// writeChartsSheet embeds the bar and pie chart images.
func (e *WorkbookExporter) writeChartsSheet(f *excelize.File, images *domain.ChartImageSet) error {
	if _, err := f.NewSheet(SheetCharts); err != nil {
		return err
	}

	if err := f.AddPictureFromBytes(SheetCharts, "A1", &excelize.Picture{
		Extension: ".png",
		File:      images.BarChart,
	}); err != nil {
		return err
	}

	return f.AddPictureFromBytes(SheetCharts, "A25", &excelize.Picture{
		Extension: ".png",
		File:      images.PieChart,
	})
}

// writeSalespersonSheets adds one sheet per group with its raw rows.
// Sheet names go through the same deterministic sanitization as file
// names, plus the 31 character cap; collisions, including with the fixed
// Summary and Charts sheets, are an export error.
func (e *WorkbookExporter) writeSalespersonSheets(f *excelize.File, table *domain.SummaryTable) error {
	seen := map[string]string{
		SheetSummary: SheetSummary,
		SheetCharts:  SheetCharts,
	}

	for _, group := range table.Groups {
		sheet := SanitizeSheetName(group.Salesperson)
		if sheet == "" {
			return errors.NewExportError(
				fmt.Sprintf("salesperson name %q sanitizes to an empty sheet name", group.Salesperson), nil)
		}
		if other, ok := seen[sheet]; ok {
			return errors.NewExportError(
				fmt.Sprintf("salespeople %q and %q map to the same sheet name %q", other, group.Salesperson, sheet), nil)
		}
		seen[sheet] = group.Salesperson

		if _, err := f.NewSheet(sheet); err != nil {
			return errors.NewExportError(
				fmt.Sprintf("failed to create sheet for %q", group.Salesperson), err)
		}
		if err := writeRecordRows(f, sheet, group.Records); err != nil {
			return errors.NewExportError(
				fmt.Sprintf("failed to write rows for %q", group.Salesperson), err)
		}
	}
	return nil
}

// writeRecordRows writes the standard header plus one row per record.
func writeRecordRows(f *excelize.File, sheet string, records []domain.SalesRecord) error {
	header := []interface{}{domain.ColumnSalesperson, domain.ColumnProduct, domain.ColumnSales}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{rec.Salesperson, rec.Product, rec.Amount}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
