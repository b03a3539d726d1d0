package reports

import (
	"testing"

	"github.com/airfinance/finbi_backend/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPayableKPIs(t *testing.T) {
	k := PayableKPIs(testPayables())

	assert.Equal(t, "1750", k.TotalOriginal.String())
	assert.Equal(t, "1250", k.TotalOpen.String())
	// Settled reads the authoritative settlement column.
	assert.Equal(t, "500", k.TotalSettled.String())
	assert.Equal(t, 2, k.CountOpen)
}

func TestReceivableKPIs(t *testing.T) {
	k := ReceivableKPIs(testReceivables())

	assert.Equal(t, "1200", k.TotalOriginal.String())
	assert.Equal(t, "400", k.TotalOpen.String())
	// Settled is derived: valor - saldo per record.
	assert.Equal(t, "800", k.TotalSettled.String())
	assert.Equal(t, 1, k.CountOpen)
}

func TestReceivableSettledNeverNegative(t *testing.T) {
	// Balance larger than valor (interest accrued upstream) must not
	// produce a negative settled amount.
	k := ReceivableKPIs([]*models.ReceivableRecord{{
		Valor:            decimal.NewFromInt(100),
		MovReSaldocpacre: decimal.NewFromInt(120),
	}})
	assert.True(t, k.TotalSettled.IsZero())
}

func TestKPIsEmptyInput(t *testing.T) {
	k := PayableKPIs(nil)
	assert.True(t, k.TotalOriginal.IsZero())
	assert.Equal(t, 0, k.CountOpen)
}
