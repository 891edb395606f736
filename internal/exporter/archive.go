package exporter

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"salesreport/internal/errors"
	"salesreport/pkg/contracts/domain"
)

// Packager bundles report artifacts into a single ZIP byte stream, the
// terminal output of a pipeline run.
type Packager struct {
	logger *slog.Logger
}

// NewPackager creates a new archive packager.
func NewPackager(logger *slog.Logger) *Packager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Packager{logger: logger.With(slog.String("component", "packager"))}
}

// Package serializes the artifacts into one ZIP archive, preserving their
// order. Entry names must be unique: a post-sanitization collision is an
// export error, entries are never silently overwritten.
func (p *Packager) Package(ctx context.Context, name string, artifacts []domain.ReportArtifact) (*domain.ArchiveBundle, error) {
	if len(artifacts) == 0 {
		return nil, errors.NewExportError("no artifacts to package", nil)
	}

	seen := make(map[string]struct{}, len(artifacts))
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	for _, artifact := range artifacts {
		if artifact.Name == "" {
			return nil, errors.NewExportError("artifact has an empty name", nil)
		}
		if _, ok := seen[artifact.Name]; ok {
			return nil, errors.NewExportError(
				fmt.Sprintf("duplicate archive entry name %q", artifact.Name), nil)
		}
		seen[artifact.Name] = struct{}{}

		entry, err := w.Create(artifact.Name)
		if err != nil {
			return nil, errors.NewExportError(
				fmt.Sprintf("failed to create archive entry %q", artifact.Name), err)
		}
		if _, err := entry.Write(artifact.Data); err != nil {
			return nil, errors.NewExportError(
				fmt.Sprintf("failed to write archive entry %q", artifact.Name), err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, errors.NewExportError("failed to finalize archive", err)
	}

	p.logger.InfoContext(ctx, "archive bundle packaged",
		slog.String("archive_name", name),
		slog.Int("artifact_count", len(artifacts)),
		slog.Int("size_bytes", buf.Len()))

	return &domain.ArchiveBundle{
		Name:      name,
		Artifacts: artifacts,
		Data:      buf.Bytes(),
	}, nil
}
