// Package exporter serializes the report pipeline's outputs.
//
// This package contains three main components:
//
// WorkbookExporter: builds the per-salesperson xlsx workbooks and the
// combined workbook (Summary sheet, Charts sheet with embedded images, one
// sheet per salesperson) using excelize.
//
// PDFExporter: composes the single-page-flow PDF report with the summary
// table and both chart images.
//
// Packager: bundles every produced artifact into one ZIP byte stream with
// unique entry names.
//
// Each exporter is an explicit builder over immutable inputs (SummaryTable,
// ChartImageSet) returning immutable artifact bytes; no workbook or drawing
// state is shared between exporters.
package exporter
