package dataprocessing

import (
	"context"
	"log/slog"

	"salesreport/internal/errors"
	"salesreport/pkg/contracts/domain"
)

// Aggregator groups a validated dataset by salesperson and computes the
// summary table used by every exporter.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator creates a new aggregator.
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger.With(slog.String("component", "aggregator"))}
}

// Summarize performs a stable group-by on the salesperson key. Groups keep
// the first-appearance order of the source dataset and records keep their
// upload order inside each group, so two runs over the same dataset always
// produce identical tables.
func (a *Aggregator) Summarize(ctx context.Context, dataset *domain.SalesDataset) (*domain.SummaryTable, error) {
	if dataset == nil {
		return nil, errors.NewAggregationError("dataset is nil", nil)
	}

	groupIndex := make(map[string]int, len(dataset.Records))
	table := &domain.SummaryTable{
		Groups: make([]domain.SalespersonGroup, 0, len(dataset.Records)),
	}

	for _, rec := range dataset.Records {
		idx, ok := groupIndex[rec.Salesperson]
		if !ok {
			idx = len(table.Groups)
			groupIndex[rec.Salesperson] = idx
			table.Groups = append(table.Groups, domain.SalespersonGroup{
				Salesperson: rec.Salesperson,
			})
		}
		group := &table.Groups[idx]
		group.Records = append(group.Records, rec)
		group.Subtotal += rec.Amount
	}

	for _, group := range table.Groups {
		table.GrandTotal += group.Subtotal
	}

	a.logger.InfoContext(ctx, "summary table generated",
		slog.Int("group_count", len(table.Groups)),
		slog.Float64("grand_total", table.GrandTotal))

	return table, nil
}
