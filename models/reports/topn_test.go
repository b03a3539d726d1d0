package reports

import (
	"testing"

	"github.com/airfinance/finbi_backend/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopSuppliers(t *testing.T) {
	top := TopSuppliers(testPayables(), 5)

	require.Len(t, top, 2)
	assert.Equal(t, "ACME FERRAMENTAS", top[0].Name)
	assert.Equal(t, "1250", top[0].Total.String())
	assert.Equal(t, 2, top[0].Count)
	assert.Equal(t, "Beta Servicos", top[1].Name)
}

func TestTopSuppliersTruncatesToN(t *testing.T) {
	payables := []*models.PayableRecord{
		{FpaStFavorecido: "A", Valor: decimal.NewFromInt(3)},
		{FpaStFavorecido: "B", Valor: decimal.NewFromInt(2)},
		{FpaStFavorecido: "C", Valor: decimal.NewFromInt(1)},
	}
	top := TopSuppliers(payables, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "A", top[0].Name)
	assert.Equal(t, "B", top[1].Name)
}

func TestTopSettlementAccountsKeepsTenOfFifteen(t *testing.T) {
	payables := make([]*models.PayableRecord, 0, 15)
	for i := 1; i <= 15; i++ {
		payables = append(payables, &models.PayableRecord{
			ContaBaixa:      20000 + i,
			CheqbxReVrbaixa: decimal.NewFromInt(int64(i * 100)),
		})
	}
	top := TopSettlementAccounts(payables, 10)

	require.Len(t, top, 10)
	assert.Equal(t, "Account 20015", top[0].Name)
	assert.Equal(t, "1500", top[0].Total.String())
	assert.Equal(t, "Account 20006", top[9].Name)
	// Strictly descending.
	for i := 1; i < len(top); i++ {
		assert.True(t, top[i].Total.LessThan(top[i-1].Total))
	}
}

func TestTopSuppliersTieBreaksByFirstEncounter(t *testing.T) {
	payables := []*models.PayableRecord{
		{FpaStFavorecido: "LATER", Valor: decimal.NewFromInt(10)},
		{FpaStFavorecido: "EARLIER", Valor: decimal.NewFromInt(10)},
	}
	top := TopSuppliers(payables, 5)
	require.Len(t, top, 2)
	assert.Equal(t, "LATER", top[0].Name)
	assert.Equal(t, "EARLIER", top[1].Name)
}

func TestTopSuppliersUnknownCounterparty(t *testing.T) {
	top := TopSuppliers([]*models.PayableRecord{{Valor: decimal.NewFromInt(1)}}, 5)
	require.Len(t, top, 1)
	assert.Equal(t, "Unknown", top[0].Name)
}

func TestTopCustomers(t *testing.T) {
	top := TopCustomers(testReceivables(), 5)

	require.Len(t, top, 2)
	assert.Equal(t, "CLIENTE UM", top[0].Name)
	assert.Equal(t, "800", top[0].Total.String())
}

func TestTopSettlementAccounts(t *testing.T) {
	payables := []*models.PayableRecord{
		{ContaBaixa: 9255, CheqbxReVrbaixa: decimal.NewFromInt(100)},
		{ContaBaixa: 9255, CheqbxReVrbaixa: decimal.NewFromInt(50)},
		{ContaBaixa: 1234, CheqbxReVrbaixa: decimal.NewFromInt(500)},
		{ContaBaixa: 1001, CheqbxReVrbaixa: decimal.Zero}, // nothing settled
	}
	top := TopSettlementAccounts(payables, 10)

	require.Len(t, top, 2)
	// Unknown code still renders a usable label.
	assert.Equal(t, "Account 1234", top[0].Name)
	assert.Equal(t, "500", top[0].Total.String())
	assert.Equal(t, "SAFRA AIRSLAID", top[1].Name)
	assert.Equal(t, "150", top[1].Total.String())
	assert.Equal(t, 2, top[1].Count)
}

func TestOverdueSummary(t *testing.T) {
	rep := OverdueSummary(testPayables(), testReceivables(), "2024-03-05")

	// Payable 1 is open and past due; payable 3 has no date; payable 2 is paid.
	assert.Equal(t, 1, rep.Payable.Count)
	assert.Equal(t, "1000", rep.Payable.Total.String())
	// Receivable 2 is open but due 2024-03-10, not yet overdue.
	assert.Equal(t, 0, rep.Receivable.Count)

	rep = OverdueSummary(testPayables(), testReceivables(), "2024-03-11")
	assert.Equal(t, 1, rep.Receivable.Count)
	assert.Equal(t, "400", rep.Receivable.Total.String())
}
