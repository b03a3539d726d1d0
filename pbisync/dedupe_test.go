package pbisync

import (
	"testing"

	"github.com/airfinance/finbi_backend/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pay(fil, lancto int, valor float64) models.PayableRecord {
	return models.PayableRecord{
		FilInCodigo:    fil,
		MovInNumlancto: lancto,
		Valor:          decimal.NewFromFloat(valor),
	}
}

func TestDedupePayablesLastWriteWins(t *testing.T) {
	in := []models.PayableRecord{
		pay(10, 1, 100),
		pay(20, 1, 200), // different branch, same lancto: distinct identity
		pay(10, 1, 150), // duplicate of the first, later value wins
		pay(10, 2, 300),
	}
	out := DedupePayables(in)
	require.Len(t, out, 3)

	// First-encounter order is preserved, the payload is the last seen.
	assert.Equal(t, 10, out[0].FilInCodigo)
	assert.Equal(t, 1, out[0].MovInNumlancto)
	assert.True(t, decimal.NewFromInt(150).Equal(out[0].Valor))

	assert.Equal(t, 20, out[1].FilInCodigo)
	assert.True(t, decimal.NewFromInt(200).Equal(out[1].Valor))

	assert.Equal(t, 2, out[2].MovInNumlancto)
}

func TestDedupePayablesNoDuplicates(t *testing.T) {
	in := []models.PayableRecord{pay(1, 1, 1), pay(1, 2, 2)}
	assert.Equal(t, in, DedupePayables(in))
}

func TestDedupeReceivables(t *testing.T) {
	in := []models.ReceivableRecord{
		{MovInNumlancto: 5, Valor: decimal.NewFromInt(10)},
		{MovInNumlancto: 5, Valor: decimal.NewFromInt(20), OrgInCodigo: 300},
		{MovInNumlancto: 6, Valor: decimal.NewFromInt(30)},
	}
	out := DedupeReceivables(in)
	require.Len(t, out, 2)
	// Branch is not part of the receivable identity.
	assert.Equal(t, 300, out[0].OrgInCodigo)
	assert.True(t, decimal.NewFromInt(20).Equal(out[0].Valor))
	assert.Equal(t, 6, out[1].MovInNumlancto)
}
