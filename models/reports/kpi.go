package reports

import (
	"github.com/airfinance/finbi_backend/models"
	"github.com/shopspring/decimal"
)

// KPIData is the headline card set over one filtered record slice.
type KPIData struct {
	TotalOpen     decimal.Decimal `json:"total_open"`
	TotalSettled  decimal.Decimal `json:"total_settled"`
	TotalOriginal decimal.Decimal `json:"total_original"`
	CountOpen     int             `json:"count_open"`
}

// PayableKPIs sums the payable side. The settled total reads the upstream
// settlement column directly; it is authoritative there and can include
// interest, so valor minus saldo would undercount.
func PayableKPIs(records []*models.PayableRecord) KPIData {
	var k KPIData
	for _, p := range records {
		k.TotalOriginal = k.TotalOriginal.Add(p.Valor)
		k.TotalOpen = k.TotalOpen.Add(p.MovReSaldocpacre)
		k.TotalSettled = k.TotalSettled.Add(p.CheqbxReVrbaixa)
		if p.IsOpen() {
			k.CountOpen++
		}
	}
	return k
}

// ReceivableKPIs sums the receivable side; settled is derived because the
// upstream view has no received-amount column.
func ReceivableKPIs(records []*models.ReceivableRecord) KPIData {
	var k KPIData
	for _, r := range records {
		k.TotalOriginal = k.TotalOriginal.Add(r.Valor)
		k.TotalOpen = k.TotalOpen.Add(r.MovReSaldocpacre)
		k.TotalSettled = k.TotalSettled.Add(r.SettledAmount())
		if r.IsOpen() {
			k.CountOpen++
		}
	}
	return k
}
