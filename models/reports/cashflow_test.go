package reports

import (
	"testing"

	"github.com/airfinance/finbi_backend/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCashFlowPredicted(t *testing.T) {
	totals := CashFlow(testPayables(), testReceivables(), ViewPredicted)

	assert.Equal(t, "1750", totals.Payable.String())
	assert.Equal(t, "1200", totals.Receivable.String())
	assert.Equal(t, "-550", totals.Balance.String())
}

func TestCashFlowRealized(t *testing.T) {
	totals := CashFlow(testPayables(), testReceivables(), ViewRealized)

	// Payables: sum of the settlement column.
	assert.Equal(t, "500", totals.Payable.String())
	// Receivables: only the fully settled entry counts; the open one is
	// excluded outright, partial payments and all.
	assert.Equal(t, "800", totals.Receivable.String())
	assert.Equal(t, "300", totals.Balance.String())
}

func TestCashFlowRealizedExcludesOpenReceivable(t *testing.T) {
	recs := []*models.ReceivableRecord{{
		Valor:            decimal.NewFromInt(1000),
		MovReSaldocpacre: decimal.NewFromInt(1), // one cent open
		DtBaixa:          "2024-04-01",
	}}
	totals := CashFlow(nil, recs, ViewRealized)
	assert.True(t, totals.Receivable.IsZero())
}

func TestMonthlyBucketsPredicted(t *testing.T) {
	buckets := MonthlyBuckets(testPayables(), testReceivables(), ViewPredicted)

	// Payable without a due date is skipped; months are sparse and sorted.
	require.Len(t, buckets, 3)
	assert.Equal(t, "2024-01", buckets[0].Month)
	assert.Equal(t, "1000", buckets[0].Payable.String())
	assert.Equal(t, "2024-02", buckets[1].Month)
	assert.Equal(t, "500", buckets[1].Payable.String())
	assert.Equal(t, "2024-03", buckets[2].Month)
	assert.Equal(t, "1200", buckets[2].Receivable.String())
	assert.True(t, buckets[2].Payable.IsZero())
}

func TestMonthlyBucketsRealized(t *testing.T) {
	buckets := MonthlyBuckets(testPayables(), testReceivables(), ViewRealized)

	require.Len(t, buckets, 2)
	assert.Equal(t, "2024-02", buckets[0].Month)
	assert.Equal(t, "500", buckets[0].Payable.String())
	assert.Equal(t, "2024-03", buckets[1].Month)
	assert.Equal(t, "800", buckets[1].Receivable.String())
}

func TestMonthlyPayableSummary(t *testing.T) {
	summary := MonthlyPayableSummary(testPayables())

	require.Len(t, summary, 2)
	assert.Equal(t, "2024-01", summary[0].Month)
	assert.Equal(t, "1000", summary[0].Total.String())
	assert.True(t, summary[0].Paid.IsZero())
	assert.Equal(t, "2024-02", summary[1].Month)
	assert.Equal(t, "500", summary[1].Paid.String())
}
