package exporter

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "salesreport/internal/errors"
	"salesreport/pkg/contracts/domain"
)

// testPNG encodes a small solid PNG usable as a stand-in chart image.
func testPNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	img.Set(0, 0, color.Black)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testImages(t *testing.T) *domain.ChartImageSet {
	t.Helper()
	return &domain.ChartImageSet{BarChart: testPNG(t), PieChart: testPNG(t)}
}

func testTable() *domain.SummaryTable {
	return &domain.SummaryTable{
		Groups: []domain.SalespersonGroup{
			{
				Salesperson: "João",
				Records: []domain.SalesRecord{
					{Salesperson: "João", Product: "Caneta", Amount: 150.50},
					{Salesperson: "João", Product: "Lápis", Amount: 49.50},
				},
				Subtotal: 200.00,
			},
			{
				Salesperson: "Maria",
				Records: []domain.SalesRecord{
					{Salesperson: "Maria", Product: "Caderno", Amount: 320.00},
				},
				Subtotal: 320.00,
			},
		},
		GrandTotal: 520.00,
	}
}

func TestWorkbookExporter_ExportPerSalesperson(t *testing.T) {
	artifacts, err := NewWorkbookExporter(nil).ExportPerSalesperson(context.Background(), testTable())
	require.NoError(t, err)
	require.Len(t, artifacts, 2)

	assert.Equal(t, "João.xlsx", artifacts[0].Name)
	assert.Equal(t, "Maria.xlsx", artifacts[1].Name)
	assert.Equal(t, domain.MimeXLSX, artifacts[0].MimeType)
}

func TestWorkbookExporter_PerSalesperson_RoundTrip(t *testing.T) {
	artifacts, err := NewWorkbookExporter(nil).ExportPerSalesperson(context.Background(), testTable())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(artifacts[0].Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)

	// Header plus exactly João's two records, in upload order.
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Vendedor", "Produto", "Vendas"}, rows[0])
	assert.Equal(t, []string{"João", "Caneta", "150.5"}, rows[1])
	assert.Equal(t, []string{"João", "Lápis", "49.5"}, rows[2])
}

func TestWorkbookExporter_PerSalesperson_NumericCells(t *testing.T) {
	artifacts, err := NewWorkbookExporter(nil).ExportPerSalesperson(context.Background(), testTable())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(artifacts[0].Data))
	require.NoError(t, err)
	defer f.Close()

	// Amounts must be stored as numbers, not text.
	cellType, err := f.GetCellType(f.GetSheetName(0), "C2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, cellType)
	assert.NotEqual(t, excelize.CellTypeInlineString, cellType)
}

func TestWorkbookExporter_PerSalesperson_NameSanitization(t *testing.T) {
	table := &domain.SummaryTable{
		Groups: []domain.SalespersonGroup{
			{Salesperson: "A/B:C", Subtotal: 10, Records: []domain.SalesRecord{
				{Salesperson: "A/B:C", Product: "x", Amount: 10},
			}},
		},
		GrandTotal: 10,
	}

	artifacts, err := NewWorkbookExporter(nil).ExportPerSalesperson(context.Background(), table)
	require.NoError(t, err)
	assert.Equal(t, "A_B_C.xlsx", artifacts[0].Name)
}

func TestWorkbookExporter_PerSalesperson_NameCollision(t *testing.T) {
	// "João " and "João" are distinct groups but sanitize to the same
	// file name; the exporter must refuse rather than overwrite.
	table := &domain.SummaryTable{
		Groups: []domain.SalespersonGroup{
			{Salesperson: "João", Subtotal: 10},
			{Salesperson: "João ", Subtotal: 20},
		},
		GrandTotal: 30,
	}

	_, err := NewWorkbookExporter(nil).ExportPerSalesperson(context.Background(), table)
	require.Error(t, err)
	assert.True(t, apperrors.IsExportError(err))
}

func TestWorkbookExporter_ExportCombined(t *testing.T) {
	artifact, err := NewWorkbookExporter(nil).ExportCombined(context.Background(), testTable(), testImages(t))
	require.NoError(t, err)
	assert.Equal(t, "summary.xlsx", artifact.Name)

	f, err := excelize.OpenReader(bytes.NewReader(artifact.Data))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Equal(t, []string{"Summary", "Charts", "João", "Maria"}, sheets)
}

func TestWorkbookExporter_Combined_SummarySheet(t *testing.T) {
	artifact, err := NewWorkbookExporter(nil).ExportCombined(context.Background(), testTable(), testImages(t))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(artifact.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"Vendedor", "Total de Vendas"}, rows[0])
	assert.Equal(t, []string{"João", "200"}, rows[1])
	assert.Equal(t, []string{"Maria", "320"}, rows[2])
	assert.Equal(t, []string{"Total Geral", "520"}, rows[3])

	// The grand-total cell holds the exact numeric value.
	total, err := f.GetCellValue(SheetSummary, "B4")
	require.NoError(t, err)
	assert.Equal(t, "520", total)
}

func TestWorkbookExporter_Combined_ChartsSheetHasImages(t *testing.T) {
	artifact, err := NewWorkbookExporter(nil).ExportCombined(context.Background(), testTable(), testImages(t))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(artifact.Data))
	require.NoError(t, err)
	defer f.Close()

	pics, err := f.GetPictures(SheetCharts, "A1")
	require.NoError(t, err)
	assert.NotEmpty(t, pics)

	pics, err = f.GetPictures(SheetCharts, "A25")
	require.NoError(t, err)
	assert.NotEmpty(t, pics)
}

func TestWorkbookExporter_Combined_PerSalespersonSheets(t *testing.T) {
	artifact, err := NewWorkbookExporter(nil).ExportCombined(context.Background(), testTable(), testImages(t))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(artifact.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Maria")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Maria", "Caderno", "320"}, rows[1])
}

func TestWorkbookExporter_Combined_LongSheetNameTruncated(t *testing.T) {
	longName := strings.Repeat("a", 40)
	table := &domain.SummaryTable{
		Groups: []domain.SalespersonGroup{
			{Salesperson: longName, Subtotal: 10, Records: []domain.SalesRecord{
				{Salesperson: longName, Product: "x", Amount: 10},
			}},
		},
		GrandTotal: 10,
	}

	artifact, err := NewWorkbookExporter(nil).ExportCombined(context.Background(), table, testImages(t))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(artifact.Data))
	require.NoError(t, err)
	defer f.Close()

	assert.Contains(t, f.GetSheetList(), strings.Repeat("a", 31))
}

func TestWorkbookExporter_Combined_ReservedSheetNameCollision(t *testing.T) {
	table := &domain.SummaryTable{
		Groups: []domain.SalespersonGroup{
			{Salesperson: "Summary", Subtotal: 10},
		},
		GrandTotal: 10,
	}

	_, err := NewWorkbookExporter(nil).ExportCombined(context.Background(), table, testImages(t))
	require.Error(t, err)
	assert.True(t, apperrors.IsExportError(err))
}
