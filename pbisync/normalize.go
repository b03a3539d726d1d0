package pbisync

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	bracketRe    = regexp.MustCompile(`\[(.*?)\]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// CleanKey turns a DAX column name like "REL_FINANCEIRO[FIL_IN_CODIGO]" into
// "fil_in_codigo": the bracketed identifier wins over the table qualifier,
// then trim, lower-case, and collapse whitespace runs to underscores.
func CleanKey(key string) string {
	if m := bracketRe.FindStringSubmatch(key); m != nil {
		key = m[1]
	}
	key = strings.ToLower(strings.TrimSpace(key))
	return whitespaceRe.ReplaceAllString(key, "_")
}

// NormalizeRow re-keys a raw row with CleanKey. When two raw keys collapse
// to the same clean key the later map entry wins arbitrarily; upstream
// column sets never collide in practice.
func NormalizeRow(raw RawRow) RawRow {
	out := make(RawRow, len(raw))
	for k, v := range raw {
		out[CleanKey(k)] = v
	}
	return out
}

// SafeInt coerces any JSON scalar to an int, truncating toward zero.
// Anything unusable is 0; coercion never fails.
func SafeInt(v any) int {
	switch t := v.(type) {
	case nil:
		return 0
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(math.Trunc(t))
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return int(math.Trunc(f))
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return int(math.Trunc(f))
		}
	case bool:
		if t {
			return 1
		}
	}
	return 0
}

// SafeDecimal coerces any JSON scalar to a decimal, defaulting to zero.
func SafeDecimal(v any) decimal.Decimal {
	switch t := v.(type) {
	case nil:
		return decimal.Zero
	case float64:
		return decimal.NewFromFloat(t)
	case int:
		return decimal.NewFromInt(int64(t))
	case int64:
		return decimal.NewFromInt(t)
	case json.Number:
		if d, err := decimal.NewFromString(t.String()); err == nil {
			return d
		}
	case string:
		if d, err := decimal.NewFromString(strings.TrimSpace(t)); err == nil {
			return d
		}
	}
	return decimal.Zero
}

var dateLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// SafeDate coerces a value to an ISO YYYY-MM-DD string, or "" when the
// value is absent or not a recognisable date.
func SafeDate(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

func safeString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
