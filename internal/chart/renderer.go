package chart

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	gochart "github.com/wcharczuk/go-chart/v2"

	"salesreport/internal/errors"
	"salesreport/pkg/contracts/domain"
)

// Chart image dimensions in pixels. Sized so both charts fit side by side
// on an A4 PDF page and inside the combined workbook's Charts sheet.
const (
	barChartWidth  = 900
	barChartHeight = 450
	pieChartWidth  = 600
	pieChartHeight = 600
)

// Renderer produces the chart images for a summary table. Rendering is a
// pure transform: the same table always maps to the same bars, slices and
// labels, and no drawing state survives between calls.
type Renderer struct {
	logger *slog.Logger
}

// NewRenderer creates a new chart renderer.
func NewRenderer(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{logger: logger.With(slog.String("component", "chart_renderer"))}
}

// Render produces the bar and pie chart PNGs for the given summary table.
// A table with no groups or a zero grand total cannot be charted: the pie
// proportions would be undefined, so the whole render fails.
func (r *Renderer) Render(ctx context.Context, table *domain.SummaryTable) (*domain.ChartImageSet, error) {
	if table == nil || table.GroupCount() == 0 {
		return nil, errors.NewRenderError("summary table has no groups to chart", nil)
	}
	if table.GrandTotal <= 0 {
		return nil, errors.NewRenderError(
			fmt.Sprintf("grand total %.2f is not positive, pie proportions are undefined", table.GrandTotal), nil)
	}

	barChart, err := r.renderBarChart(table)
	if err != nil {
		return nil, errors.NewRenderError("failed to render bar chart", err)
	}

	pieChart, err := r.renderPieChart(table)
	if err != nil {
		return nil, errors.NewRenderError("failed to render pie chart", err)
	}

	r.logger.InfoContext(ctx, "charts rendered",
		slog.Int("group_count", table.GroupCount()),
		slog.Int("bar_chart_bytes", len(barChart)),
		slog.Int("pie_chart_bytes", len(pieChart)))

	return &domain.ChartImageSet{BarChart: barChart, PieChart: pieChart}, nil
}

// renderBarChart draws one bar per salesperson, in summary table order,
// labeled with the salesperson name and subtotal.
func (r *Renderer) renderBarChart(table *domain.SummaryTable) ([]byte, error) {
	bars := make([]gochart.Value, 0, table.GroupCount())
	for _, group := range table.Groups {
		bars = append(bars, gochart.Value{
			Value: group.Subtotal,
			Label: fmt.Sprintf("%s (%.2f)", group.Salesperson, group.Subtotal),
		})
	}

	barChart := gochart.BarChart{
		Title:    "Sales by Salesperson",
		Width:    barChartWidth,
		Height:   barChartHeight,
		BarWidth: 60,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := barChart.Render(gochart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderPieChart draws one slice per salesperson with its share of the
// grand total as a percentage label.
func (r *Renderer) renderPieChart(table *domain.SummaryTable) ([]byte, error) {
	values := make([]gochart.Value, 0, table.GroupCount())
	for _, group := range table.Groups {
		share := group.Subtotal / table.GrandTotal * 100
		values = append(values, gochart.Value{
			Value: group.Subtotal,
			Label: fmt.Sprintf("%s (%.1f%%)", group.Salesperson, share),
		})
	}

	pieChart := gochart.PieChart{
		Title:  "Share of Total Sales",
		Width:  pieChartWidth,
		Height: pieChartHeight,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pieChart.Render(gochart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
