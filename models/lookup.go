package models

import "fmt"

// Static code lookups for the ERP's branch and settlement-account codes.
// The upstream dataset only carries numeric codes; display names live here
// because the BI model exposes no dimension table for them.

var branchNames = map[int]string{
	10:  "AIRSLAID",
	100: "AIRSLAID",
	20:  "BIG TELAS",
	200: "BIG TELAS",
	30:  "ITELFA",
	300: "ITELFA",
	40:  "GRASSI HOLDING",
	400: "GRASSI HOLDING",
	500: "FAZENDA BOM SOSSEGO",
}

var accountNames = map[int]string{
	10359: "SANTANDER AGRO",
	10268: "BANCO DO BRASIL AGRO 2",
	1099:  "ADIANTAMENTOS A FORNECEDORES",
	1001:  "CAIXA GERAL",
	1098:  "BANCO VIRTUAL",
	1097:  "CHEQUES RECEBIDOS EM CARTEIRA",
	9255:  "SAFRA AIRSLAID",
	9256:  "SANTANDER AIRSLAID",
	9261:  "SANTANDER ITELFA",
	9253:  "BANCO DO BRASIL ITELFA",
	9265:  "SICRED ITELFA",
	9257:  "SANTANDER BIG TELAS",
	9262:  "SANTANDER GRASSI HOLDING",
	9251:  "BANCO DO BRASIL AIRSLAID",
	9254:  "BANCO DO BRASIL AGRO",
	9266:  "SICREDI GRASSI",
	9264:  "SICRED BIG TELAS",
	9252:  "BANCO DO BRASIL BIG TELAS",
	9263:  "SICRED AIRSLAID",
	9267:  "CAIXA INTERNO",
}

// BranchName maps a branch code to its display name, empty when unknown.
func BranchName(code int) string {
	return branchNames[code]
}

// AccountName maps a settlement account code to its display name. Unknown
// codes still render something usable.
func AccountName(code int) string {
	if name, ok := accountNames[code]; ok {
		return name
	}
	return fmt.Sprintf("Account %d", code)
}

// CounterpartyName normalises an empty counterparty to a visible placeholder.
func CounterpartyName(name string) string {
	if name == "" {
		return "Unknown"
	}
	return name
}
