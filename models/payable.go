package models

import (
	"context"
	"time"

	"github.com/airfinance/finbi_backend/config"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm/clause"
)

// PayableRecord mirrors one row of the upstream REL_FINANCEIRO dataset.
// Column names keep the ERP's own codes so the table stays recognisable
// next to the BI model it is synced from. Dates are stored as ISO
// YYYY-MM-DD strings; an empty string means the source had no date.
type PayableRecord struct {
	ID                int             `gorm:"primary_key" json:"id"`
	FilInCodigo       int             `gorm:"uniqueIndex:uq_financeiro_fil_lancto;not null" json:"fil_in_codigo"`
	MovInNumlancto    int             `gorm:"uniqueIndex:uq_financeiro_fil_lancto;not null" json:"mov_in_numlancto"`
	AgnInCodigo       int             `json:"agn_in_codigo"`
	FpaStFavorecido   string          `gorm:"size:200;index" json:"fpa_st_favorecido"`
	Valor             decimal.Decimal `gorm:"type:decimal(18,2)" json:"valor"`
	MovDtVencto       string          `gorm:"size:10;index" json:"mov_dt_vencto"`
	MovDtDatadocto    string          `gorm:"size:10" json:"mov_dt_datadocto"`
	FpaDtEmissao      string          `gorm:"size:10" json:"fpa_dt_emissao"`
	FpaStDoctointerno string          `gorm:"size:100" json:"fpa_st_doctointerno"`
	CpaStParcela      string          `gorm:"size:20" json:"cpa_st_parcela"`
	CheqDtData        string          `gorm:"size:10" json:"cheq_dt_data"`
	CheqbxReVrbaixa   decimal.Decimal `gorm:"type:decimal(18,2)" json:"cheqbx_re_vrbaixa"`
	CheqbxReVrjuros   decimal.Decimal `gorm:"type:decimal(18,2)" json:"cheqbx_re_vrjuros"`
	ContaBaixa        int             `json:"conta_baixa"`
	MovReSaldocpacre  decimal.Decimal `gorm:"type:decimal(18,2)" json:"mov_re_saldocpacre"`
	MovChConciliado   string          `gorm:"size:1" json:"mov_ch_conciliado"`
	MovChNatureza     string          `gorm:"size:1" json:"mov_ch_natureza"`
	CpaInAp           int             `json:"cpa_in_ap"`
	CpaStDocumento    string          `gorm:"size:100" json:"cpa_st_documento"`
	FpaTpdStCodigo    string          `gorm:"size:20" json:"fpa_tpd_st_codigo"`
	FpaInContador     int             `json:"fpa_in_contador"`
	FpaInNumero       int             `json:"fpa_in_numero"`
	OrgInCodigo       int             `json:"org_in_codigo"`
	RcbStNota         string          `gorm:"size:20" json:"rcb_st_nota"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PayableRecord) TableName() string {
	return "rel_financeiro"
}

// IsOpen reports whether the entry still carries an outstanding balance.
func (p *PayableRecord) IsOpen() bool {
	return p.MovReSaldocpacre.IsPositive()
}

// UpsertPayablesBatch writes one batch keyed on the (branch, ledger entry)
// composite. Conflicting rows are fully overwritten so a re-sync converges
// on the upstream state.
func UpsertPayablesBatch(ctx context.Context, records []PayableRecord) error {
	if len(records) == 0 {
		return nil
	}
	db := config.GetDB()
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "fil_in_codigo"}, {Name: "mov_in_numlancto"}},
		UpdateAll: true,
	}).Create(&records).Error
}

func CountPayables(ctx context.Context) (int64, error) {
	var count int64
	db := config.GetDB()
	if err := db.WithContext(ctx).Model(&PayableRecord{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

const hydrationPageSize = 1000

// ListPayables loads the whole table, one page request per 1000 rows fanned
// out concurrently. Pages are ordered by due date so re-reads are stable,
// and reassembled in page order.
func ListPayables(ctx context.Context) ([]*PayableRecord, error) {
	total, err := CountPayables(ctx)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return []*PayableRecord{}, nil
	}

	pageCount := int((total + hydrationPageSize - 1) / hydrationPageSize)
	pages := make([][]*PayableRecord, pageCount)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < pageCount; i++ {
		i := i
		g.Go(func() error {
			var page []*PayableRecord
			db := config.GetDB()
			err := db.WithContext(gctx).
				Order("mov_dt_vencto DESC, id DESC").
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

	records := make([]*PayableRecord, 0, total)
	for _, page := range pages {
		records = append(records, page...)
	}
	return records, nil
}
