package reports

import (
	"sort"

	"github.com/airfinance/finbi_backend/models"
	"github.com/shopspring/decimal"
)

// View modes for the cash-flow aggregations. Predicted reads due dates and
// original amounts; realized reads settlement dates and settled amounts.
const (
	ViewPredicted = "predicted"
	ViewRealized  = "realized"
)

type CashFlowTotals struct {
	Payable    decimal.Decimal `json:"payable"`
	Receivable decimal.Decimal `json:"receivable"`
	Balance    decimal.Decimal `json:"balance"`
}

// CashFlow sums both sides under one view mode. In the realized view an open
// receivable contributes nothing at all, not even a partial payment: its
// settlement date is suppressed, so there is no period to book it into.
func CashFlow(payables []*models.PayableRecord, receivables []*models.ReceivableRecord, view string) CashFlowTotals {
	var t CashFlowTotals
	for _, p := range payables {
		t.Payable = t.Payable.Add(payableFlowAmount(p, view))
	}
	for _, r := range receivables {
		t.Receivable = t.Receivable.Add(receivableFlowAmount(r, view))
	}
	t.Balance = t.Receivable.Sub(t.Payable)
	return t
}

func payableFlowAmount(p *models.PayableRecord, view string) decimal.Decimal {
	if view == ViewRealized {
		return p.CheqbxReVrbaixa
	}
	return p.Valor
}

func receivableFlowAmount(r *models.ReceivableRecord, view string) decimal.Decimal {
	if view == ViewRealized {
		if r.IsOpen() {
			return decimal.Zero
		}
		return r.SettledAmount()
	}
	return r.Valor
}

func payableFlowDate(p *models.PayableRecord, view string) string {
	if view == ViewRealized {
		return p.CheqDtData
	}
	return p.MovDtVencto
}

func receivableFlowDate(r *models.ReceivableRecord, view string) string {
	if view == ViewRealized {
		return r.EffectiveSettlementDate()
	}
	return r.DtVencto
}

type MonthBucket struct {
	Month      string          `json:"month"`
	Payable    decimal.Decimal `json:"payable"`
	Receivable decimal.Decimal `json:"receivable"`
}

// MonthlyBuckets groups both sides by calendar month under one view mode.
// Buckets are sparse (only months that occur) and chronological. Records
// without a usable date under the chosen view are skipped.
func MonthlyBuckets(payables []*models.PayableRecord, receivables []*models.ReceivableRecord, view string) []MonthBucket {
	byMonth := map[string]*MonthBucket{}

	bucket := func(month string) *MonthBucket {
		b, ok := byMonth[month]
		if !ok {
			b = &MonthBucket{Month: month}
			byMonth[month] = b
		}
		return b
	}

	for _, p := range payables {
		month, ok := monthOf(payableFlowDate(p, view))
		if !ok {
			continue
		}
		b := bucket(month)
		b.Payable = b.Payable.Add(payableFlowAmount(p, view))
	}
	for _, r := range receivables {
		month, ok := monthOf(receivableFlowDate(r, view))
		if !ok {
			continue
		}
		b := bucket(month)
		b.Receivable = b.Receivable.Add(receivableFlowAmount(r, view))
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	out := make([]MonthBucket, 0, len(months))
	for _, m := range months {
		out = append(out, *byMonth[m])
	}
	return out
}

func monthOf(date string) (string, bool) {
	if len(date) < 10 {
		return "", false
	}
	return date[:7], true
}

type MonthSummary struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
	Paid  decimal.Decimal `json:"paid"`
}

// MonthlyPayableSummary buckets payables by due month with the settled share
// alongside the total, for the obligations-vs-paid overview chart.
func MonthlyPayableSummary(payables []*models.PayableRecord) []MonthSummary {
	byMonth := map[string]*MonthSummary{}
	for _, p := range payables {
		month, ok := monthOf(p.MovDtVencto)
		if !ok {
			continue
		}
		s, found := byMonth[month]
		if !found {
			s = &MonthSummary{Month: month}
			byMonth[month] = s
		}
		s.Total = s.Total.Add(p.Valor)
		s.Paid = s.Paid.Add(p.CheqbxReVrbaixa)
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	out := make([]MonthSummary, 0, len(months))
	for _, m := range months {
		out = append(out, *byMonth[m])
	}
	return out
}
