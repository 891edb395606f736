package dataprocessing

import (
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"salesreport/internal/errors"
)

// ParseWorkbook reads an uploaded xlsx workbook and returns the raw cell
// rows of its first sheet, header row included. Cell values come back as
// formatted strings; type checks happen during validation.
func ParseWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.NewParsingError("failed to open workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewParsingError("workbook contains no sheets", nil)
	}

	// The upload contract is a single-sheet workbook; data is always read
	// from the first sheet.
	sheetName := sheets[0]
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, errors.NewParsingError("failed to read sheet rows", err)
	}

	slog.Debug("parsed sales workbook",
		slog.String("sheet_name", sheetName),
		slog.Int("total_rows", len(rows)))

	return rows, nil
}
