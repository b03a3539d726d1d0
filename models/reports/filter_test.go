package reports

import (
	"testing"

	"github.com/airfinance/finbi_backend/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPayables() []*models.PayableRecord {
	return []*models.PayableRecord{
		{
			FilInCodigo:      10,
			MovInNumlancto:   1,
			FpaStFavorecido:  "ACME FERRAMENTAS",
			CpaStDocumento:   "NF-1001",
			Valor:            decimal.NewFromInt(1000),
			MovReSaldocpacre: decimal.NewFromInt(1000),
			MovDtVencto:      "2024-01-15",
			FpaDtEmissao:     "2024-01-01",
		},
		{
			FilInCodigo:      30,
			MovInNumlancto:   2,
			FpaStFavorecido:  "Beta Servicos",
			CpaStDocumento:   "NF-2002",
			Valor:            decimal.NewFromInt(500),
			MovReSaldocpacre: decimal.Zero,
			CheqbxReVrbaixa:  decimal.NewFromInt(500),
			MovDtVencto:      "2024-02-10",
			FpaDtEmissao:     "2024-01-20",
			CheqDtData:       "2024-02-08",
		},
		{
			FilInCodigo:      10,
			MovInNumlancto:   3,
			FpaStFavorecido:  "ACME FERRAMENTAS",
			Valor:            decimal.NewFromInt(250),
			MovReSaldocpacre: decimal.NewFromInt(250),
			// No due date at all.
		},
	}
}

func testReceivables() []*models.ReceivableRecord {
	return []*models.ReceivableRecord{
		{
			MovInNumlancto:   1,
			OrgInCodigo:      300,
			FpaStFavorecido:  "CLIENTE UM",
			Valor:            decimal.NewFromInt(800),
			MovReSaldocpacre: decimal.Zero,
			DtVencto:         "2024-03-01",
			DtBaixa:          "2024-03-05",
		},
		{
			MovInNumlancto:   2,
			OrgInCodigo:      100,
			FpaStFavorecido:  "CLIENTE DOIS",
			Valor:            decimal.NewFromInt(400),
			MovReSaldocpacre: decimal.NewFromInt(400),
			DtVencto:         "2024-03-10",
			DtBaixa:          "2024-03-12", // stale, entry is still open
			FreTpdStCodigo:   "PDV",
		},
	}
}

func TestFilterPayablesDateRange(t *testing.T) {
	recs := testPayables()

	out := FilterPayables(recs, Filter{StartDate: "2024-01-01", EndDate: "2024-01-31"})
	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].MovInNumlancto)

	// Absent dates fail any active range.
	out = FilterPayables(recs, Filter{StartDate: "2000-01-01", EndDate: "2099-12-31"})
	assert.Len(t, out, 2)

	// No range at all keeps everything, dated or not.
	out = FilterPayables(recs, Filter{})
	assert.Len(t, out, 3)
}

func TestFilterPayablesDateBasis(t *testing.T) {
	recs := testPayables()

	out := FilterPayables(recs, Filter{DateBasis: DateBasisIssue, StartDate: "2024-01-15", EndDate: "2024-01-31"})
	require.Len(t, out, 1)
	assert.Equal(t, 2, out[0].MovInNumlancto)

	// Only the settled entry has a settlement date.
	out = FilterPayables(recs, Filter{DateBasis: DateBasisSettlement, StartDate: "2024-01-01", EndDate: "2024-12-31"})
	require.Len(t, out, 1)
	assert.Equal(t, 2, out[0].MovInNumlancto)
}

func TestFilterPayablesStatus(t *testing.T) {
	recs := testPayables()

	open := FilterPayables(recs, Filter{Status: StatusOpen})
	assert.Len(t, open, 2)

	paid := FilterPayables(recs, Filter{Status: StatusPaid})
	require.Len(t, paid, 1)
	assert.Equal(t, 2, paid[0].MovInNumlancto)
}

func TestFilterPayablesBranch(t *testing.T) {
	recs := testPayables()

	// By numeric code.
	assert.Len(t, FilterPayables(recs, Filter{Branch: "10"}), 2)
	// By display name, case-insensitive.
	assert.Len(t, FilterPayables(recs, Filter{Branch: "itelfa"}), 1)
	// Unknown branch matches nothing.
	assert.Empty(t, FilterPayables(recs, Filter{Branch: "99"}))
}

func TestFilterPayablesSearch(t *testing.T) {
	recs := testPayables()

	assert.Len(t, FilterPayables(recs, Filter{Search: "acme"}), 2)
	assert.Len(t, FilterPayables(recs, Filter{Search: "NF-2002"}), 1)
	// Stringified amount is searchable.
	assert.Len(t, FilterPayables(recs, Filter{Search: "250"}), 1)
	assert.Empty(t, FilterPayables(recs, Filter{Search: "nothing"}))
}

func TestFilterReceivablesSettlementSuppression(t *testing.T) {
	recs := testReceivables()

	// Entry 2 has a DtBaixa on record, but it is open, so under the
	// settlement basis it has no date and falls out of any range.
	out := FilterReceivables(recs, Filter{DateBasis: DateBasisSettlement, StartDate: "2024-01-01", EndDate: "2024-12-31"})
	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].MovInNumlancto)
}

func TestFilterReceivablesExcludeDocTypes(t *testing.T) {
	recs := testReceivables()

	out := FilterReceivables(recs, Filter{ExcludeDocTypes: []string{"PDV"}})
	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].MovInNumlancto)

	// Case-insensitive.
	out = FilterReceivables(recs, Filter{ExcludeDocTypes: []string{"pdv"}})
	assert.Len(t, out, 1)
}

func TestFilterConjunction(t *testing.T) {
	recs := testPayables()

	out := FilterPayables(recs, Filter{
		StartDate: "2024-01-01",
		EndDate:   "2024-12-31",
		Branch:    "10",
		Status:    StatusOpen,
		Search:    "acme",
	})
	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].MovInNumlancto)
}

func TestSortPayables(t *testing.T) {
	recs := testPayables()

	SortPayables(recs, "valor", false)
	assert.Equal(t, 3, recs[0].MovInNumlancto)
	assert.Equal(t, 1, recs[2].MovInNumlancto)

	SortPayables(recs, "valor", true)
	assert.Equal(t, 1, recs[0].MovInNumlancto)

	// Absent due date sorts after real dates ascending.
	SortPayables(recs, "vencto", false)
	assert.Equal(t, 3, recs[2].MovInNumlancto)

	// Unknown column leaves order alone.
	before := []*models.PayableRecord{recs[0], recs[1], recs[2]}
	SortPayables(recs, "bogus", false)
	assert.Equal(t, before, recs)
}
