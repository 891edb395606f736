package services

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"salesreport/internal/chart"
	"salesreport/internal/config"
	"salesreport/internal/dataprocessing"
	"salesreport/internal/errors"
	"salesreport/internal/exporter"
	"salesreport/pkg/contracts/domain"
)

// ReportService orchestrates one pipeline run: parse, validate, aggregate,
// render charts, export spreadsheets and PDF, package the bundle. A run
// either returns a complete ArchiveBundle or fails at the first failing
// stage; there is no partial success.
type ReportService struct {
	cfg        config.ReportConfig
	logger     *slog.Logger
	validator  *dataprocessing.Validator
	aggregator *dataprocessing.Aggregator
	renderer   *chart.Renderer
	workbooks  *exporter.WorkbookExporter
	pdf        *exporter.PDFExporter
	packager   *exporter.Packager
	metrics    *Metrics
}

// PreviewResult carries the aggregation result and chart images for the
// on-screen preview surface; no artifacts are produced.
type PreviewResult struct {
	Summary *domain.SummaryTable  `json:"summary"`
	Images  *domain.ChartImageSet `json:"images"`
}

// NewReportService creates a report service with default collaborators.
func NewReportService(cfg config.ReportConfig, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		cfg:        cfg,
		logger:     logger.With(slog.String("component", "report_service")),
		validator:  dataprocessing.NewValidator(logger),
		aggregator: dataprocessing.NewAggregator(logger),
		renderer:   chart.NewRenderer(logger),
		workbooks:  exporter.NewWorkbookExporter(logger),
		pdf:        exporter.NewPDFExporter(logger, cfg.CurrencySymbol),
		packager:   exporter.NewPackager(logger),
		metrics:    sharedMetrics(),
	}
}

// Generate runs the full pipeline over an uploaded workbook and returns
// the ZIP bundle with N per-salesperson workbooks, the combined workbook
// and the PDF report.
func (s *ReportService) Generate(ctx context.Context, upload io.Reader) (*domain.ArchiveBundle, error) {
	runID := uuid.New().String()
	started := time.Now()
	logger := s.logger.With(slog.String("run_id", runID))

	logger.InfoContext(ctx, "report generation started")
	s.metrics.RunsStarted.Inc()

	table, images, err := s.prepare(ctx, upload)
	if err != nil {
		return nil, s.fail(ctx, logger, err)
	}

	// The two exporters consume only the summary table and the chart
	// images; neither depends on the other's output.
	perSalesperson, err := s.workbooks.ExportPerSalesperson(ctx, table)
	if err != nil {
		return nil, s.fail(ctx, logger, err)
	}

	combined, err := s.workbooks.ExportCombined(ctx, table, images)
	if err != nil {
		return nil, s.fail(ctx, logger, err)
	}

	pdfReport, err := s.pdf.Export(ctx, table, images)
	if err != nil {
		return nil, s.fail(ctx, logger, err)
	}

	artifacts := make([]domain.ReportArtifact, 0, len(perSalesperson)+2)
	artifacts = append(artifacts, perSalesperson...)
	artifacts = append(artifacts, combined, pdfReport)

	bundle, err := s.packager.Package(ctx, s.cfg.ArchiveName, artifacts)
	if err != nil {
		return nil, s.fail(ctx, logger, err)
	}

	elapsed := time.Since(started)
	s.metrics.RunsSucceeded.Inc()
	s.metrics.RunDuration.Observe(elapsed.Seconds())
	s.metrics.ArtifactsProduced.Add(float64(bundle.ArtifactCount()))

	logger.InfoContext(ctx, "report generation completed",
		slog.Int("artifact_count", bundle.ArtifactCount()),
		slog.Int("bundle_bytes", len(bundle.Data)),
		slog.Duration("elapsed", elapsed))

	return bundle, nil
}

// Preview runs the ingest and rendering stages only, for the display
// surface: summary table plus chart images, no artifacts.
func (s *ReportService) Preview(ctx context.Context, upload io.Reader) (*PreviewResult, error) {
	table, images, err := s.prepare(ctx, upload)
	if err != nil {
		return nil, s.fail(ctx, s.logger, err)
	}
	return &PreviewResult{Summary: table, Images: images}, nil
}

// prepare runs the shared front half of the pipeline: parse, validate,
// aggregate, render.
func (s *ReportService) prepare(ctx context.Context, upload io.Reader) (*domain.SummaryTable, *domain.ChartImageSet, error) {
	rows, err := dataprocessing.ParseWorkbook(upload)
	if err != nil {
		return nil, nil, err
	}

	dataset, err := s.validator.Validate(ctx, rows)
	if err != nil {
		return nil, nil, err
	}

	table, err := s.aggregator.Summarize(ctx, dataset)
	if err != nil {
		return nil, nil, err
	}

	images, err := s.renderer.Render(ctx, table)
	if err != nil {
		return nil, nil, err
	}

	return table, images, nil
}

// fail records the failure metrics and returns the error unchanged.
func (s *ReportService) fail(ctx context.Context, logger *slog.Logger, err error) error {
	stage := "internal"
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		stage = string(appErr.Type)
	}

	s.metrics.RunsFailed.WithLabelValues(stage).Inc()
	logger.ErrorContext(ctx, "report generation failed",
		slog.String("stage", stage),
		slog.String("error", err.Error()))
	return err
}

// TemplateWorkbook builds the downloadable sample workbook: the required
// header row plus two example rows, matching the upload contract.
func (s *ReportService) TemplateWorkbook(ctx context.Context) (domain.ReportArtifact, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{domain.ColumnSalesperson, domain.ColumnProduct, domain.ColumnSales},
		{"João", "Caneta", 150.50},
		{"Maria", "Caderno", 320.00},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return domain.ReportArtifact{}, errors.NewExportError("failed to build template workbook", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return domain.ReportArtifact{}, errors.NewExportError("failed to build template workbook", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return domain.ReportArtifact{}, errors.NewExportError("failed to serialize template workbook", err)
	}

	s.logger.InfoContext(ctx, "template workbook generated",
		slog.Int("size_bytes", buf.Len()))

	return domain.ReportArtifact{
		Name:     "sales_template.xlsx",
		MimeType: domain.MimeXLSX,
		Data:     buf.Bytes(),
	}, nil
}
