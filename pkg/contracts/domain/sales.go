package domain

// Required column headers for an uploaded sales workbook. Matching is
// case-sensitive and order-sensitive: the header row must be exactly
// Vendedor | Produto | Vendas.
const (
	ColumnSalesperson = "Vendedor"
	ColumnProduct     = "Produto"
	ColumnSales       = "Vendas"
)

// RequiredColumns returns the expected header row in order.
func RequiredColumns() []string {
	return []string{ColumnSalesperson, ColumnProduct, ColumnSales}
}

// SalesRecord is a single sale parsed from one input row.
type SalesRecord struct {
	Salesperson string  `json:"salesperson" validate:"required"`
	Product     string  `json:"product" validate:"required"`
	Amount      float64 `json:"amount" validate:"min=0"`
}

// SalesDataset is the full uploaded table for one pipeline run, in upload
// order. A dataset that passed validation is never empty.
type SalesDataset struct {
	Records []SalesRecord `json:"records"`
}

// Len returns the number of records in the dataset.
func (d *SalesDataset) Len() int {
	return len(d.Records)
}

// SalespersonGroup holds all records belonging to one salesperson, in
// upload order, together with the group subtotal.
type SalespersonGroup struct {
	Salesperson string        `json:"salesperson"`
	Records     []SalesRecord `json:"records"`
	Subtotal    float64       `json:"subtotal"`
}

// SummaryTable is the aggregation result: one group per distinct
// salesperson, ordered by first appearance in the source dataset.
// Invariant: GrandTotal equals the sum of all group subtotals.
type SummaryTable struct {
	Groups     []SalespersonGroup `json:"groups"`
	GrandTotal float64            `json:"grand_total"`
}

// GroupCount returns the number of distinct salespeople.
func (t *SummaryTable) GroupCount() int {
	return len(t.Groups)
}

// ChartImageSet holds the rendered chart images for one summary table.
// Both images are PNG encoded and immutable once rendered.
type ChartImageSet struct {
	BarChart []byte `json:"bar_chart"`
	PieChart []byte `json:"pie_chart"`
}

// Artifact MIME types used by the exporters.
const (
	MimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MimePDF  = "application/pdf"
	MimeZIP  = "application/zip"
)

// ReportArtifact is one exported output file, immutable once produced.
type ReportArtifact struct {
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
	Data     []byte `json:"-"`
}

// ArchiveBundle is the terminal output of a pipeline run: the ordered
// artifacts plus their ZIP serialization.
type ArchiveBundle struct {
	Name      string           `json:"name"`
	Artifacts []ReportArtifact `json:"artifacts"`
	Data      []byte           `json:"-"`
}

// ArtifactCount returns the number of files inside the bundle.
func (b *ArchiveBundle) ArtifactCount() int {
	return len(b.Artifacts)
}
