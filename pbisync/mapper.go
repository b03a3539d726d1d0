package pbisync

import (
	"sort"
	"strings"

	"github.com/airfinance/finbi_backend/models"
)

// lookupValue reads an exact clean key first and falls back to the first
// (alphabetically smallest) key containing every fragment of any fragment
// set. The upstream model has renamed its settlement-date column more than
// once; the fuzzy fallback keeps old dataset versions syncing.
func lookupValue(row RawRow, exact string, fragmentSets ...[]string) any {
	if v, ok := row[exact]; ok && v != nil {
		return v
	}
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, frags := range fragmentSets {
			if containsAll(k, frags) {
				return row[k]
			}
		}
	}
	return nil
}

func containsAll(key string, fragments []string) bool {
	for _, f := range fragments {
		if !strings.Contains(key, f) {
			return false
		}
	}
	return true
}

func stringOrDefault(v any, def string) string {
	if s := safeString(v); s != "" {
		return s
	}
	return def
}

// MapPayable copies the payable allow-list out of a normalized row. Columns
// outside the list are dropped; missing columns become typed defaults.
func MapPayable(row RawRow) models.PayableRecord {
	return models.PayableRecord{
		FilInCodigo:       SafeInt(row["fil_in_codigo"]),
		MovInNumlancto:    SafeInt(row["mov_in_numlancto"]),
		AgnInCodigo:       SafeInt(row["agn_in_codigo"]),
		FpaStFavorecido:   safeString(row["fpa_st_favorecido"]),
		Valor:             SafeDecimal(row["valor"]),
		MovDtVencto:       SafeDate(row["mov_dt_vencto"]),
		MovDtDatadocto:    SafeDate(row["mov_dt_datadocto"]),
		FpaDtEmissao:      SafeDate(row["fpa_dt_emissao"]),
		FpaStDoctointerno: safeString(row["fpa_st_doctointerno"]),
		CpaStParcela:      safeString(row["cpa_st_parcela"]),
		CheqDtData:        SafeDate(lookupValue(row, "cheq_dt_data", []string{"cheq", "dt"}, []string{"cheq", "data"})),
		CheqbxReVrbaixa:   SafeDecimal(row["cheqbx_re_vrbaixa"]),
		CheqbxReVrjuros:   SafeDecimal(row["cheqbx_re_vrjuros"]),
		ContaBaixa:        SafeInt(row["conta_baixa"]),
		MovReSaldocpacre:  SafeDecimal(row["mov_re_saldocpacre"]),
		MovChConciliado:   stringOrDefault(row["mov_ch_conciliado"], "N"),
		MovChNatureza:     stringOrDefault(row["mov_ch_natureza"], "C"),
		CpaInAp:           SafeInt(row["cpa_in_ap"]),
		CpaStDocumento:    safeString(row["cpa_st_documento"]),
		FpaTpdStCodigo:    safeString(row["fpa_tpd_st_codigo"]),
		FpaInContador:     SafeInt(row["fpa_in_contador"]),
		FpaInNumero:       SafeInt(row["fpa_in_numero"]),
		OrgInCodigo:       SafeInt(row["org_in_codigo"]),
		RcbStNota:         safeString(row["rcb_st_nota"]),
	}
}

// MapReceivable copies the receivable allow-list out of a normalized row.
func MapReceivable(row RawRow) models.ReceivableRecord {
	return models.ReceivableRecord{
		MovInNumlancto:   SafeInt(row["mov_in_numlancto"]),
		OrgInCodigo:      SafeInt(row["org_in_codigo"]),
		AgnInCodigo:      SafeInt(row["agn_in_codigo"]),
		FpaStFavorecido:  safeString(row["fpa_st_favorecido"]),
		Valor:            SafeDecimal(row["valor"]),
		MovReSaldocpacre: SafeDecimal(row["mov_re_saldocpacre"]),
		DtVencto:         SafeDate(row["dt_vencto"]),
		DtLancamento:     SafeDate(row["dt_lancamento"]),
		DtBaixa:          SafeDate(row["dt_baixa"]),
		FpaDtEmissao:     SafeDate(row["fpa_dt_emissao"]),
		FreTpdStCodigo:   safeString(row["fre_tpd_st_codigo"]),
		FreInNumero:      SafeInt(row["fre_in_numero"]),
		CreStDocumento:   safeString(row["cre_st_documento"]),
		CreStParcela:     safeString(row["cre_st_parcela"]),
		MovChConciliado:  safeString(row["mov_ch_conciliado"]),
		MovChNatureza:    safeString(row["mov_ch_natureza"]),
		RcbStNota:        safeString(row["rcb_st_nota"]),
	}
}
