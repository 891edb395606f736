package dataprocessing

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "salesreport/internal/errors"
)

// buildWorkbook writes the given rows into a single-sheet xlsx in memory.
func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseWorkbook(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Vendedor", "Produto", "Vendas"},
		{"João", "Caneta", 150.50},
		{"Maria", "Caderno", 320.00},
	})

	rows, err := ParseWorkbook(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Vendedor", "Produto", "Vendas"}, rows[0])
	assert.Equal(t, "João", rows[1][0])
	assert.Equal(t, "150.5", rows[1][2])
}

func TestParseWorkbook_InvalidBytes(t *testing.T) {
	_, err := ParseWorkbook(bytes.NewReader([]byte("not an xlsx file")))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}

func TestParseWorkbook_RoundTripThroughValidator(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Vendedor", "Produto", "Vendas"},
		{"João", "Caneta", 150.50},
		{"Maria", "Caderno", 320.00},
		{"João", "Lápis", 49.50},
	})

	rows, err := ParseWorkbook(bytes.NewReader(data))
	require.NoError(t, err)

	dataset, err := NewValidator(nil).Validate(context.Background(), rows)
	require.NoError(t, err)
	require.Equal(t, 3, dataset.Len())

	table, err := NewAggregator(nil).Summarize(context.Background(), dataset)
	require.NoError(t, err)
	assert.InDelta(t, 520.00, table.GrandTotal, 1e-9)
}
