package reports

import (
	"sort"
	"strconv"
	"strings"

	"github.com/airfinance/finbi_backend/models"
)

// Date basis selects which date column a range filter reads.
const (
	DateBasisDue        = "due"
	DateBasisIssue      = "issue"
	DateBasisSettlement = "settlement"
)

const (
	StatusAll  = "all"
	StatusOpen = "open"
	StatusPaid = "paid"
)

// Filter is the full query surface of the in-memory engine. Every field is
// optional; zero values mean "no constraint". Predicates are conjunctive.
type Filter struct {
	StartDate       string   `form:"start" validate:"omitempty,len=10"`
	EndDate         string   `form:"end" validate:"omitempty,len=10"`
	DateBasis       string   `form:"basis" validate:"omitempty,oneof=due issue settlement"`
	Branch          string   `form:"branch"`
	Status          string   `form:"status" validate:"omitempty,oneof=all open paid"`
	Search          string   `form:"search"`
	ExcludeDocTypes []string `form:"exclude_doc_types"`
}

func (f Filter) basis() string {
	if f.DateBasis == "" {
		return DateBasisDue
	}
	return f.DateBasis
}

func (f Filter) status() string {
	if f.Status == "" {
		return StatusAll
	}
	return f.Status
}

// Upstream dates are ISO YYYY-MM-DD strings so range checks are plain
// lexicographic compares on the 10-char prefix. Anything shorter is not a
// date at all and fails every active range.
func dateInRange(value, start, end string) bool {
	if start == "" && end == "" {
		return true
	}
	if len(value) < 10 {
		return false
	}
	value = value[:10]
	if start != "" && value < start {
		return false
	}
	if end != "" && value > end {
		return false
	}
	return true
}

func matchesBranch(code int, wanted string) bool {
	if wanted == "" {
		return true
	}
	if strconv.Itoa(code) == wanted {
		return true
	}
	return strings.EqualFold(models.BranchName(code), wanted)
}

func matchesSearch(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func (f Filter) payableDate(p *models.PayableRecord) string {
	switch f.basis() {
	case DateBasisIssue:
		return p.FpaDtEmissao
	case DateBasisSettlement:
		return p.CheqDtData
	default:
		return p.MovDtVencto
	}
}

func (f Filter) receivableDate(r *models.ReceivableRecord) string {
	switch f.basis() {
	case DateBasisIssue:
		return r.FpaDtEmissao
	case DateBasisSettlement:
		return r.EffectiveSettlementDate()
	default:
		return r.DtVencto
	}
}

// FilterPayables applies every active predicate, preserving input order.
func FilterPayables(records []*models.PayableRecord, f Filter) []*models.PayableRecord {
	out := make([]*models.PayableRecord, 0, len(records))
	for _, p := range records {
		if !dateInRange(f.payableDate(p), f.StartDate, f.EndDate) {
			continue
		}
		if !matchesBranch(p.FilInCodigo, f.Branch) {
			continue
		}
		switch f.status() {
		case StatusOpen:
			if !p.IsOpen() {
				continue
			}
		case StatusPaid:
			if p.IsOpen() {
				continue
			}
		}
		if !matchesSearch(f.Search, p.FpaStFavorecido, p.CpaStDocumento, p.Valor.String()) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FilterReceivables mirrors FilterPayables for the receivable shape. Document
// type exclusion only exists on this side; the upstream receivable view mixes
// point-of-sale noise into the ledger.
func FilterReceivables(records []*models.ReceivableRecord, f Filter) []*models.ReceivableRecord {
	out := make([]*models.ReceivableRecord, 0, len(records))
	for _, r := range records {
		if !dateInRange(f.receivableDate(r), f.StartDate, f.EndDate) {
			continue
		}
		if !matchesBranch(r.OrgInCodigo, f.Branch) {
			continue
		}
		switch f.status() {
		case StatusOpen:
			if !r.IsOpen() {
				continue
			}
		case StatusPaid:
			if r.IsOpen() {
				continue
			}
		}
		if excludedDocType(r.FreTpdStCodigo, f.ExcludeDocTypes) {
			continue
		}
		if !matchesSearch(f.Search, r.FpaStFavorecido, r.CreStDocumento, r.Valor.String()) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func excludedDocType(docType string, excluded []string) bool {
	for _, e := range excluded {
		if strings.EqualFold(docType, e) {
			return true
		}
	}
	return false
}

// SortPayables orders in place by a named column. Unknown columns leave the
// input untouched. Absent dates compare greater than any real date.
func SortPayables(records []*models.PayableRecord, column string, descending bool) {
	less := payableLess(column)
	if less == nil {
		return
	}
	sort.SliceStable(records, func(i, j int) bool {
		if descending {
			i, j = j, i
		}
		return less(records[i], records[j])
	})
}

func payableLess(column string) func(a, b *models.PayableRecord) bool {
	switch column {
	case "valor":
		return func(a, b *models.PayableRecord) bool { return a.Valor.LessThan(b.Valor) }
	case "saldo":
		return func(a, b *models.PayableRecord) bool {
			return a.MovReSaldocpacre.LessThan(b.MovReSaldocpacre)
		}
	case "favorecido":
		return func(a, b *models.PayableRecord) bool {
			return strings.ToLower(a.FpaStFavorecido) < strings.ToLower(b.FpaStFavorecido)
		}
	case "vencto":
		return func(a, b *models.PayableRecord) bool { return dateLess(a.MovDtVencto, b.MovDtVencto) }
	case "emissao":
		return func(a, b *models.PayableRecord) bool { return dateLess(a.FpaDtEmissao, b.FpaDtEmissao) }
	case "baixa":
		return func(a, b *models.PayableRecord) bool { return dateLess(a.CheqDtData, b.CheqDtData) }
	default:
		return nil
	}
}

// SortReceivables is the receivable counterpart of SortPayables.
func SortReceivables(records []*models.ReceivableRecord, column string, descending bool) {
	less := receivableLess(column)
	if less == nil {
		return
	}
	sort.SliceStable(records, func(i, j int) bool {
		if descending {
			i, j = j, i
		}
		return less(records[i], records[j])
	})
}

func receivableLess(column string) func(a, b *models.ReceivableRecord) bool {
	switch column {
	case "valor":
		return func(a, b *models.ReceivableRecord) bool { return a.Valor.LessThan(b.Valor) }
	case "saldo":
		return func(a, b *models.ReceivableRecord) bool {
			return a.MovReSaldocpacre.LessThan(b.MovReSaldocpacre)
		}
	case "favorecido":
		return func(a, b *models.ReceivableRecord) bool {
			return strings.ToLower(a.FpaStFavorecido) < strings.ToLower(b.FpaStFavorecido)
		}
	case "vencto":
		return func(a, b *models.ReceivableRecord) bool { return dateLess(a.DtVencto, b.DtVencto) }
	case "emissao":
		return func(a, b *models.ReceivableRecord) bool { return dateLess(a.FpaDtEmissao, b.FpaDtEmissao) }
	case "baixa":
		return func(a, b *models.ReceivableRecord) bool {
			return dateLess(a.EffectiveSettlementDate(), b.EffectiveSettlementDate())
		}
	default:
		return nil
	}
}

// dateLess treats empty/short strings as greater than any date so they
// appear at the end when ascending.
func dateLess(a, b string) bool {
	aAbsent := len(a) < 10
	bAbsent := len(b) < 10
	if aAbsent || bAbsent {
		return !aAbsent && bAbsent
	}
	return a[:10] < b[:10]
}
