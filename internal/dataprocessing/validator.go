package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"salesreport/internal/errors"
	"salesreport/pkg/contracts/domain"
)

// Validator checks raw workbook rows against the required sales schema and
// produces a SalesDataset. It is a pure transform: no side effects beyond
// logging.
type Validator struct {
	logger *slog.Logger
}

// NewValidator creates a new dataset validator.
func NewValidator(logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{logger: logger.With(slog.String("component", "validator"))}
}

// schema holds the resolved column positions for the three required
// columns. Resolved once from the header row, then rows are accessed by
// fixed index, never by name lookup.
type schema struct {
	salesperson int
	product     int
	amount      int
}

// Validate checks the header and every data row. It fails on the first
// malformed row; there is no partial success. Completely blank rows
// (a common trailing artifact of hand-edited workbooks) are ignored.
func (v *Validator) Validate(ctx context.Context, rows [][]string) (*domain.SalesDataset, error) {
	if len(rows) == 0 {
		return nil, errors.NewValidationError("workbook is empty", nil)
	}

	sc, err := resolveSchema(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]domain.SalesRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		// Sheet row number as the user sees it (1-based, after header).
		rowNum := i + 2

		if blankRow(row) {
			continue
		}

		rec, err := v.validateRow(sc, row, rowNum)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, errors.NewValidationError("workbook contains no data rows", nil)
	}

	v.logger.InfoContext(ctx, "dataset validated",
		slog.Int("record_count", len(records)))

	return &domain.SalesDataset{Records: records}, nil
}

// resolveSchema locates the three required columns in the header row.
// Matching is case-sensitive; extra columns are permitted and ignored.
func resolveSchema(header []string) (schema, error) {
	index := func(name string) int {
		for i, cell := range header {
			if cell == name {
				return i
			}
		}
		return -1
	}

	sc := schema{
		salesperson: index(domain.ColumnSalesperson),
		product:     index(domain.ColumnProduct),
		amount:      index(domain.ColumnSales),
	}

	var missing []string
	if sc.salesperson < 0 {
		missing = append(missing, domain.ColumnSalesperson)
	}
	if sc.product < 0 {
		missing = append(missing, domain.ColumnProduct)
	}
	if sc.amount < 0 {
		missing = append(missing, domain.ColumnSales)
	}

	if len(missing) > 0 {
		return schema{}, errors.NewValidationError(
			fmt.Sprintf("missing required column(s): %s", strings.Join(missing, ", ")), nil).
			WithContext("missing_columns", missing)
	}
	return sc, nil
}

// validateRow converts one raw row into a SalesRecord. Values are kept
// verbatim: salesperson and product names are not trimmed or case-folded.
func (v *Validator) validateRow(sc schema, row []string, rowNum int) (domain.SalesRecord, error) {
	salesperson := cellAt(row, sc.salesperson)
	product := cellAt(row, sc.product)
	rawAmount := cellAt(row, sc.amount)

	if salesperson == "" {
		return domain.SalesRecord{}, errors.NewValidationError(
			fmt.Sprintf("row %d: %s is empty", rowNum, domain.ColumnSalesperson), nil).
			WithContext("row", rowNum)
	}
	if product == "" {
		return domain.SalesRecord{}, errors.NewValidationError(
			fmt.Sprintf("row %d: %s is empty", rowNum, domain.ColumnProduct), nil).
			WithContext("row", rowNum)
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(rawAmount), 64)
	if err != nil {
		return domain.SalesRecord{}, errors.NewValidationError(
			fmt.Sprintf("row %d: %s value %q is not a number", rowNum, domain.ColumnSales, rawAmount), err).
			WithContext("row", rowNum)
	}
	if amount < 0 {
		return domain.SalesRecord{}, errors.NewValidationError(
			fmt.Sprintf("row %d: %s value %s is negative", rowNum, domain.ColumnSales, rawAmount), nil).
			WithContext("row", rowNum)
	}

	return domain.SalesRecord{
		Salesperson: salesperson,
		Product:     product,
		Amount:      amount,
	}, nil
}

// cellAt returns the cell at index i, tolerating short rows. excelize
// truncates trailing empty cells, so a short row is not an error by itself.
func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// blankRow reports whether every cell in the row is empty.
func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
