package pbisync

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCleanKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"REL_FINANCEIRO[FIL_IN_CODIGO]", "fil_in_codigo"},
		{"'Tabela Longa'[MOV_IN_NUMLANCTO]", "mov_in_numlancto"},
		{"  Valor  ", "valor"},
		{"Conta Baixa", "conta_baixa"},
		{"REL[ Cheq Dt Data ]", "cheq_dt_data"},
		{"already_clean", "already_clean"},
		{"[]", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CleanKey(c.in), "input %q", c.in)
	}
}

func TestNormalizeRow(t *testing.T) {
	row := NormalizeRow(RawRow{
		"REL_FINANCEIRO[VALOR]":       150.5,
		"REL_FINANCEIRO[FIL_IN_CODIGO]": 10.0,
	})
	assert.Equal(t, 150.5, row["valor"])
	assert.Equal(t, 10.0, row["fil_in_codigo"])
}

func TestSafeInt(t *testing.T) {
	assert.Equal(t, 0, SafeInt(nil))
	assert.Equal(t, 7, SafeInt(7))
	assert.Equal(t, 7, SafeInt(7.9))
	assert.Equal(t, -7, SafeInt(-7.9))
	assert.Equal(t, 42, SafeInt("42"))
	assert.Equal(t, 42, SafeInt("42.7"))
	assert.Equal(t, 0, SafeInt("not a number"))
	assert.Equal(t, 1, SafeInt(true))
}

func TestSafeDecimal(t *testing.T) {
	assert.True(t, SafeDecimal(nil).IsZero())
	assert.True(t, SafeDecimal("garbage").IsZero())
	assert.True(t, decimal.NewFromFloat(12.34).Equal(SafeDecimal(12.34)))
	assert.True(t, decimal.NewFromInt(5).Equal(SafeDecimal("5")))
}

func TestSafeDate(t *testing.T) {
	assert.Equal(t, "2024-03-15", SafeDate("2024-03-15"))
	assert.Equal(t, "2024-03-15", SafeDate("2024-03-15T10:30:00"))
	assert.Equal(t, "2024-03-15", SafeDate("2024-03-15T10:30:00Z"))
	assert.Equal(t, "2024-03-15", SafeDate("15/03/2024"))
	assert.Equal(t, "", SafeDate(nil))
	assert.Equal(t, "", SafeDate(""))
	assert.Equal(t, "", SafeDate("not a date"))
	assert.Equal(t, "", SafeDate(20240315))
}
