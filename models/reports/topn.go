package reports

import (
	"sort"

	"github.com/airfinance/finbi_backend/models"
	"github.com/shopspring/decimal"
)

type GroupTotal struct {
	Name  string          `json:"name"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// topGroups ranks accumulated totals descending, ties broken by which group
// was seen first, and keeps the first n.
func topGroups(order []string, totals map[string]*GroupTotal, n int) []GroupTotal {
	firstSeen := make(map[string]int, len(order))
	for i, name := range order {
		firstSeen[name] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := totals[order[i]], totals[order[j]]
		if !a.Total.Equal(b.Total) {
			return a.Total.GreaterThan(b.Total)
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})
	if n > 0 && len(order) > n {
		order = order[:n]
	}
	out := make([]GroupTotal, 0, len(order))
	for _, name := range order {
		out = append(out, *totals[name])
	}
	return out
}

// TopSuppliers ranks payable counterparties by original amount.
func TopSuppliers(payables []*models.PayableRecord, n int) []GroupTotal {
	totals := map[string]*GroupTotal{}
	var order []string
	for _, p := range payables {
		name := models.CounterpartyName(p.FpaStFavorecido)
		g, ok := totals[name]
		if !ok {
			g = &GroupTotal{Name: name}
			totals[name] = g
			order = append(order, name)
		}
		g.Total = g.Total.Add(p.Valor)
		g.Count++
	}
	return topGroups(order, totals, n)
}

// TopCustomers ranks receivable counterparties by original amount.
func TopCustomers(receivables []*models.ReceivableRecord, n int) []GroupTotal {
	totals := map[string]*GroupTotal{}
	var order []string
	for _, r := range receivables {
		name := models.CounterpartyName(r.FpaStFavorecido)
		g, ok := totals[name]
		if !ok {
			g = &GroupTotal{Name: name}
			totals[name] = g
			order = append(order, name)
		}
		g.Total = g.Total.Add(r.Valor)
		g.Count++
	}
	return topGroups(order, totals, n)
}

// TopSettlementAccounts ranks the accounts payables were settled from, by
// settled amount. Entries with nothing settled contribute nothing.
func TopSettlementAccounts(payables []*models.PayableRecord, n int) []GroupTotal {
	totals := map[string]*GroupTotal{}
	var order []string
	for _, p := range payables {
		if !p.CheqbxReVrbaixa.IsPositive() {
			continue
		}
		name := models.AccountName(p.ContaBaixa)
		g, ok := totals[name]
		if !ok {
			g = &GroupTotal{Name: name}
			totals[name] = g
			order = append(order, name)
		}
		g.Total = g.Total.Add(p.CheqbxReVrbaixa)
		g.Count++
	}
	return topGroups(order, totals, n)
}

type OverdueSide struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

type OverdueReport struct {
	Payable    OverdueSide `json:"payable"`
	Receivable OverdueSide `json:"receivable"`
}

// OverdueSummary counts open entries whose due date is strictly before
// today (ISO YYYY-MM-DD), with the outstanding totals per side.
func OverdueSummary(payables []*models.PayableRecord, receivables []*models.ReceivableRecord, today string) OverdueReport {
	var rep OverdueReport
	for _, p := range payables {
		if p.IsOpen() && len(p.MovDtVencto) >= 10 && p.MovDtVencto[:10] < today {
			rep.Payable.Count++
			rep.Payable.Total = rep.Payable.Total.Add(p.MovReSaldocpacre)
		}
	}
	for _, r := range receivables {
		if r.IsOpen() && len(r.DtVencto) >= 10 && r.DtVencto[:10] < today {
			rep.Receivable.Count++
			rep.Receivable.Total = rep.Receivable.Total.Add(r.MovReSaldocpacre)
		}
	}
	return rep
}
