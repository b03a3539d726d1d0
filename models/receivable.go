package models

import (
	"context"
	"time"

	"github.com/airfinance/finbi_backend/config"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm/clause"
)

// ReceivableRecord mirrors one row of the upstream REL_RECEBER dataset.
// Unlike payables, the ledger entry number alone is the identity: the
// upstream model hands out globally unique numbers on this side.
type ReceivableRecord struct {
	ID               int             `gorm:"primary_key" json:"id"`
	MovInNumlancto   int             `gorm:"uniqueIndex:uq_receber_lancto;not null" json:"mov_in_numlancto"`
	OrgInCodigo      int             `json:"org_in_codigo"`
	AgnInCodigo      int             `json:"agn_in_codigo"`
	FpaStFavorecido  string          `gorm:"size:200;index" json:"fpa_st_favorecido"`
	Valor            decimal.Decimal `gorm:"type:decimal(18,2)" json:"valor"`
	MovReSaldocpacre decimal.Decimal `gorm:"type:decimal(18,2)" json:"mov_re_saldocpacre"`
	DtVencto         string          `gorm:"size:10;index" json:"dt_vencto"`
	DtLancamento     string          `gorm:"size:10" json:"dt_lancamento"`
	DtBaixa          string          `gorm:"size:10" json:"dt_baixa,omitempty"`
	FpaDtEmissao     string          `gorm:"size:10" json:"fpa_dt_emissao"`
	FreTpdStCodigo   string          `gorm:"size:20" json:"fre_tpd_st_codigo"`
	FreInNumero      int             `json:"fre_in_numero"`
	CreStDocumento   string          `gorm:"size:100" json:"cre_st_documento"`
	CreStParcela     string          `gorm:"size:20" json:"cre_st_parcela"`
	MovChConciliado  string          `gorm:"size:1" json:"mov_ch_conciliado"`
	MovChNatureza    string          `gorm:"size:1" json:"mov_ch_natureza"`
	RcbStNota        string          `gorm:"size:20" json:"rcb_st_nota"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ReceivableRecord) TableName() string {
	return "rel_receber"
}

func (r *ReceivableRecord) IsOpen() bool {
	return r.MovReSaldocpacre.IsPositive()
}

// EffectiveSettlementDate returns DtBaixa, unless the entry still has an
// outstanding balance. The upstream view carries stale settlement dates on
// reopened entries, so an open entry is treated as never settled.
func (r *ReceivableRecord) EffectiveSettlementDate() string {
	if r.IsOpen() {
		return ""
	}
	return r.DtBaixa
}

// SettledAmount derives the amount received so far. The upstream receivable
// view has no authoritative settled column, so it is valor minus the
// outstanding balance, floored at zero.
func (r *ReceivableRecord) SettledAmount() decimal.Decimal {
	settled := r.Valor.Sub(r.MovReSaldocpacre)
	if settled.IsNegative() {
		return decimal.Zero
	}
	return settled
}

// UpsertReceivablesBatch writes one batch keyed on the ledger entry number.
func UpsertReceivablesBatch(ctx context.Context, records []ReceivableRecord) error {
	if len(records) == 0 {
		return nil
	}
	db := config.GetDB()
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "mov_in_numlancto"}},
		UpdateAll: true,
	}).Create(&records).Error
}

func CountReceivables(ctx context.Context) (int64, error) {
	var count int64
	db := config.GetDB()
	if err := db.WithContext(ctx).Model(&ReceivableRecord{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListReceivables loads the whole table with the same paged fan-out as
// ListPayables.
func ListReceivables(ctx context.Context) ([]*ReceivableRecord, error) {
	total, err := CountReceivables(ctx)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return []*ReceivableRecord{}, nil
	}

	pageCount := int((total + hydrationPageSize - 1) / hydrationPageSize)
	pages := make([][]*ReceivableRecord, pageCount)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < pageCount; i++ {
		i := i
		g.Go(func() error {
			var page []*ReceivableRecord
			db := config.GetDB()
			err := db.WithContext(gctx).
				Order("dt_vencto DESC, id DESC").
				Limit(hydrationPageSize).
				Offset(i * hydrationPageSize).
				Find(&page).Error
			if err != nil {
				return err
			}
			pages[i] = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]*ReceivableRecord, 0, total)
	for _, page := range pages {
		records = append(records, page...)
	}
	return records, nil
}
