package exporter

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/go-pdf/fpdf"

	"salesreport/internal/errors"
	"salesreport/pkg/contracts/domain"
)

// PDF layout constants, in millimeters on an A4 page.
const (
	pdfMarginLeft = 15
	pdfImageWidth = 180
	pdfColWidth   = 90
	pdfRowHeight  = 7
)

// PDFExporter composes the single PDF report: title, generated-at stamp,
// summary table with grand-total row, bar chart, pie chart — always in
// that order.
type PDFExporter struct {
	logger         *slog.Logger
	currencySymbol string
}

// NewPDFExporter creates a new PDF exporter. The currency symbol may be
// empty for currency-agnostic amounts.
func NewPDFExporter(logger *slog.Logger, currencySymbol string) *PDFExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFExporter{
		logger:         logger.With(slog.String("component", "pdf_exporter")),
		currencySymbol: currencySymbol,
	}
}

// Export builds the PDF artifact from the summary table and the rendered
// chart images. Corrupt image bytes are an export error: they indicate a
// renderer defect, not a user-input problem.
func (e *PDFExporter) Export(ctx context.Context, table *domain.SummaryTable, images *domain.ChartImageSet) (domain.ReportArtifact, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Sales Report", true)
	pdf.AddPage()

	// Core PDF fonts are cp1252; translate UTF-8 names so accented
	// salesperson names render correctly.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	e.writeHeader(pdf, tr)
	e.writeSummaryTable(pdf, tr, table)

	if err := e.embedImage(pdf, "bar_chart", images.BarChart); err != nil {
		return domain.ReportArtifact{}, err
	}
	pdf.Ln(6)
	if err := e.embedImage(pdf, "pie_chart", images.PieChart); err != nil {
		return domain.ReportArtifact{}, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return domain.ReportArtifact{}, errors.NewExportError("failed to serialize PDF report", err)
	}

	e.logger.InfoContext(ctx, "PDF report exported",
		slog.Int("group_count", table.GroupCount()),
		slog.Int("size_bytes", buf.Len()))

	return domain.ReportArtifact{
		Name:     "sales_report.pdf",
		MimeType: domain.MimePDF,
		Data:     buf.Bytes(),
	}, nil
}

// writeHeader writes the report title and the generation timestamp.
func (e *PDFExporter) writeHeader(pdf *fpdf.Fpdf, tr func(string) string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Sales Report"), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	generatedAt := time.Now().Format("2006-01-02 15:04")
	pdf.CellFormat(0, 6, tr("Generated at "+generatedAt), "", 1, "C", false, 0, "")
	pdf.Ln(4)
}

// writeSummaryTable writes one row per salesperson group, in summary
// table order, followed by the grand-total row.
func (e *PDFExporter) writeSummaryTable(pdf *fpdf.Fpdf, tr func(string) string, table *domain.SummaryTable) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(220, 220, 220)
	pdf.SetX(pdfMarginLeft)
	pdf.CellFormat(pdfColWidth, pdfRowHeight, tr(domain.ColumnSalesperson), "1", 0, "L", true, 0, "")
	pdf.CellFormat(pdfColWidth, pdfRowHeight, tr(summaryTotalHeader), "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, group := range table.Groups {
		pdf.SetX(pdfMarginLeft)
		pdf.CellFormat(pdfColWidth, pdfRowHeight, tr(group.Salesperson), "1", 0, "L", false, 0, "")
		pdf.CellFormat(pdfColWidth, pdfRowHeight, tr(FormatAmountWithSymbol(group.Subtotal, e.currencySymbol)), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetX(pdfMarginLeft)
	pdf.CellFormat(pdfColWidth, pdfRowHeight, tr(grandTotalLabel), "1", 0, "L", true, 0, "")
	pdf.CellFormat(pdfColWidth, pdfRowHeight, tr(FormatAmountWithSymbol(table.GrandTotal, e.currencySymbol)), "1", 1, "R", true, 0, "")
	pdf.Ln(6)
}

// embedImage registers PNG bytes under the given name and places the
// image into the document flow.
func (e *PDFExporter) embedImage(pdf *fpdf.Fpdf, name string, data []byte) error {
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if pdf.Err() {
		return errors.NewExportError("failed to embed "+name+" image", pdf.Error())
	}
	pdf.ImageOptions(name, pdfMarginLeft, 0, pdfImageWidth, 0, true, opts, 0, "")
	if pdf.Err() {
		return errors.NewExportError("failed to place "+name+" image", pdf.Error())
	}
	return nil
}
