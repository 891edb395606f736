package http

import (
	"context"
	"io"

	"salesreport/internal/services"
	"salesreport/pkg/contracts/domain"
)

// ReportServiceInterface is the surface the report handler needs from
// the pipeline service. Kept narrow so tests can substitute a mock.
type ReportServiceInterface interface {
	Generate(ctx context.Context, upload io.Reader) (*domain.ArchiveBundle, error)
	Preview(ctx context.Context, upload io.Reader) (*services.PreviewResult, error)
	TemplateWorkbook(ctx context.Context) (domain.ReportArtifact, error)
}
