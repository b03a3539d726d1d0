package pbisync

import (
	"fmt"

	"github.com/airfinance/finbi_backend/models"
)

// Identity keys mirror the destination tables' unique constraints. A batch
// upsert with two rows for the same key would make the write order inside
// the batch undefined, so duplicates are resolved here first: the last
// occurrence wins, output keeps first-encounter order.

func payableKey(p models.PayableRecord) string {
	return fmt.Sprintf("%d|%d", p.FilInCodigo, p.MovInNumlancto)
}

func receivableKey(r models.ReceivableRecord) string {
	return fmt.Sprintf("%d", r.MovInNumlancto)
}

func DedupePayables(records []models.PayableRecord) []models.PayableRecord {
	index := make(map[string]int, len(records))
	out := make([]models.PayableRecord, 0, len(records))
	for _, rec := range records {
		key := payableKey(rec)
		if i, seen := index[key]; seen {
			out[i] = rec
			continue
		}
		index[key] = len(out)
		out = append(out, rec)
	}
	return out
}

func DedupeReceivables(records []models.ReceivableRecord) []models.ReceivableRecord {
	index := make(map[string]int, len(records))
	out := make([]models.ReceivableRecord, 0, len(records))
	for _, rec := range records {
		key := receivableKey(rec)
		if i, seen := index[key]; seen {
			out[i] = rec
			continue
		}
		index[key] = len(out)
		out = append(out, rec)
	}
	return out
}
