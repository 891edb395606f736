package dataprocessing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesreport/pkg/contracts/domain"
)

func record(salesperson, product string, amount float64) domain.SalesRecord {
	return domain.SalesRecord{Salesperson: salesperson, Product: product, Amount: amount}
}

func TestAggregator_Summarize(t *testing.T) {
	dataset := &domain.SalesDataset{Records: []domain.SalesRecord{
		record("João", "Caneta", 150.50),
		record("Maria", "Caderno", 320.00),
		record("João", "Lápis", 49.50),
	}}

	table, err := NewAggregator(nil).Summarize(context.Background(), dataset)
	require.NoError(t, err)

	require.Equal(t, 2, table.GroupCount())

	// Groups keep first-appearance order.
	assert.Equal(t, "João", table.Groups[0].Salesperson)
	assert.Equal(t, "Maria", table.Groups[1].Salesperson)

	assert.InDelta(t, 200.00, table.Groups[0].Subtotal, 1e-9)
	assert.InDelta(t, 320.00, table.Groups[1].Subtotal, 1e-9)
	assert.InDelta(t, 520.00, table.GrandTotal, 1e-9)

	// Records keep upload order inside each group.
	require.Len(t, table.Groups[0].Records, 2)
	assert.Equal(t, "Caneta", table.Groups[0].Records[0].Product)
	assert.Equal(t, "Lápis", table.Groups[0].Records[1].Product)
}

func TestAggregator_Summarize_SingleGroup(t *testing.T) {
	dataset := &domain.SalesDataset{Records: []domain.SalesRecord{
		record("Ana", "Caderno", 10),
		record("Ana", "Caneta", 15),
	}}

	table, err := NewAggregator(nil).Summarize(context.Background(), dataset)
	require.NoError(t, err)
	require.Equal(t, 1, table.GroupCount())
	assert.InDelta(t, 25, table.GrandTotal, 1e-9)
}

func TestAggregator_Summarize_GrandTotalEqualsRecordSum(t *testing.T) {
	dataset := &domain.SalesDataset{Records: []domain.SalesRecord{
		record("A", "x", 0.1),
		record("B", "y", 0.2),
		record("A", "z", 0.3),
		record("C", "w", 0.4),
	}}

	table, err := NewAggregator(nil).Summarize(context.Background(), dataset)
	require.NoError(t, err)

	var recordSum, subtotalSum float64
	for _, rec := range dataset.Records {
		recordSum += rec.Amount
	}
	for _, group := range table.Groups {
		subtotalSum += group.Subtotal
	}

	assert.InDelta(t, recordSum, table.GrandTotal, 1e-9)
	assert.InDelta(t, subtotalSum, table.GrandTotal, 1e-9)
}

func TestAggregator_Summarize_CaseAndWhitespaceDistinct(t *testing.T) {
	dataset := &domain.SalesDataset{Records: []domain.SalesRecord{
		record("João", "Caneta", 10),
		record("João ", "Caderno", 20),
		record("joão", "Lápis", 30),
	}}

	table, err := NewAggregator(nil).Summarize(context.Background(), dataset)
	require.NoError(t, err)
	assert.Equal(t, 3, table.GroupCount())
}

func TestAggregator_Summarize_EmptyDataset(t *testing.T) {
	// Validation rejects empty datasets; defensively the aggregator still
	// yields a zero-group table with grand total 0.
	table, err := NewAggregator(nil).Summarize(context.Background(), &domain.SalesDataset{})
	require.NoError(t, err)
	assert.Equal(t, 0, table.GroupCount())
	assert.Zero(t, table.GrandTotal)
}

func TestAggregator_Summarize_NilDataset(t *testing.T) {
	_, err := NewAggregator(nil).Summarize(context.Background(), nil)
	assert.Error(t, err)
}
