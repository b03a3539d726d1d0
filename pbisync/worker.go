package pbisync

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/airfinance/finbi_backend/config"
	"github.com/airfinance/finbi_backend/models"
	"github.com/bsm/redislock"
	"github.com/sirupsen/logrus"
)

// SyncOutcome is the per-invocation contract: callers always get an outcome
// object, never a transport error. Failures are reported inside it.
type SyncOutcome struct {
	Success bool   `json:"success"`
	Count   int    `json:"count"`
	Message string `json:"message"`
}

// RecordStore abstracts the destination writes and run bookkeeping so the
// worker is testable without a database.
type RecordStore interface {
	UpsertPayables(ctx context.Context, batch []models.PayableRecord) error
	UpsertReceivables(ctx context.Context, batch []models.ReceivableRecord) error
	BeginRun(ctx context.Context, target string) (*models.SyncRun, error)
	FinishRun(ctx context.Context, run *models.SyncRun, status string, count int, message string) error
}

// Syncer pulls one dataset table from Power BI and upserts it into the
// matching destination table.
type Syncer struct {
	Cfg    config.PowerBIConfig
	HTTP   *http.Client
	Store  RecordStore
	Locker *redislock.Client

	// BatchSize is how many rows go into one upsert statement.
	BatchSize int

	logger *logrus.Logger
}

const defaultBatchSize = 1000

func NewSyncer(store RecordStore) *Syncer {
	return &Syncer{
		Cfg:       config.LoadPowerBIConfig(),
		HTTP:      &http.Client{Timeout: 60 * time.Second},
		Store:     store,
		Locker:    config.GetRedisLock(),
		BatchSize: defaultBatchSize,
		logger:    config.GetLogger(),
	}
}

const lockTTL = 5 * time.Minute

// Sync runs the full pipeline for one target: token, query, normalize, map,
// dedupe, batched upsert. A held lock for the same target short-circuits
// immediately. The first failed batch aborts; earlier batches stay written
// and the next run converges them.
func (s *Syncer) Sync(ctx context.Context, target string) SyncOutcome {
	if target != models.SyncTargetPayables && target != models.SyncTargetReceivables {
		return failure(fmt.Sprintf("unknown sync target %q", target))
	}
	if !s.Cfg.Configured() {
		return failure("Power BI credentials are not configured. Set PBI_TENANT_ID, PBI_CLIENT_ID, PBI_CLIENT_SECRET, PBI_WORKSPACE_ID and PBI_DATASET_ID.")
	}

	if s.Locker != nil {
		lock, err := s.Locker.Obtain(ctx, "finbi:sync:"+target, lockTTL, nil)
		if errors.Is(err, redislock.ErrNotObtained) {
			return failure("sync already in progress for " + target)
		}
		if err != nil {
			// Redis trouble never blocks a sync, the guard is best-effort.
			s.logf("Sync", "lock acquisition failed", err)
		} else {
			defer lock.Release(context.WithoutCancel(ctx))
		}
	}

	run := s.beginRun(ctx, target)

	client := newPowerBIClient(s.Cfg, s.HTTP)
	table := s.Cfg.PayablesTable
	if target == models.SyncTargetReceivables {
		table = s.Cfg.ReceivablesTable
	}

	rows, err := client.queryTable(ctx, table)
	if err != nil {
		return s.fail(ctx, run, friendlyHint(err))
	}

	var count int
	switch target {
	case models.SyncTargetPayables:
		count, err = s.syncPayables(ctx, rows)
	case models.SyncTargetReceivables:
		count, err = s.syncReceivables(ctx, rows)
	}
	if err != nil {
		return s.fail(ctx, run, friendlyHint(err))
	}

	message := fmt.Sprintf("Synced %d %s records", count, target)
	s.finishRun(ctx, run, models.SyncRunStatusSuccess, count, message)
	return SyncOutcome{Success: true, Count: count, Message: message}
}

func (s *Syncer) syncPayables(ctx context.Context, rows []RawRow) (int, error) {
	records := make([]models.PayableRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, MapPayable(NormalizeRow(row)))
	}
	records = DedupePayables(records)

	for start := 0; start < len(records); start += s.batchSize() {
		end := min(start+s.batchSize(), len(records))
		if err := s.Store.UpsertPayables(ctx, records[start:end]); err != nil {
			return 0, fmt.Errorf("upsert batch starting at %d failed: %w", start, err)
		}
	}
	return len(records), nil
}

func (s *Syncer) syncReceivables(ctx context.Context, rows []RawRow) (int, error) {
	records := make([]models.ReceivableRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, MapReceivable(NormalizeRow(row)))
	}
	records = DedupeReceivables(records)

	for start := 0; start < len(records); start += s.batchSize() {
		end := min(start+s.batchSize(), len(records))
		if err := s.Store.UpsertReceivables(ctx, records[start:end]); err != nil {
			return 0, fmt.Errorf("upsert batch starting at %d failed: %w", start, err)
		}
	}
	return len(records), nil
}

func (s *Syncer) batchSize() int {
	if s.BatchSize <= 0 {
		return defaultBatchSize
	}
	return s.BatchSize
}

// Run bookkeeping is best-effort: a broken run table must not stop a sync.

func (s *Syncer) beginRun(ctx context.Context, target string) *models.SyncRun {
	run, err := s.Store.BeginRun(ctx, target)
	if err != nil {
		s.logf("beginRun", "could not record sync run", err)
		return nil
	}
	return run
}

func (s *Syncer) finishRun(ctx context.Context, run *models.SyncRun, status string, count int, message string) {
	if run == nil {
		return
	}
	if err := s.Store.FinishRun(ctx, run, status, count, message); err != nil {
		s.logf("finishRun", "could not finalise sync run", err)
	}
}

func (s *Syncer) fail(ctx context.Context, run *models.SyncRun, message string) SyncOutcome {
	s.finishRun(ctx, run, models.SyncRunStatusFailed, 0, message)
	return failure(message)
}

func (s *Syncer) logf(funcName, context string, err error) {
	if s.logger == nil {
		return
	}
	config.LogError(s.logger, "pbisync", funcName, context, nil, err)
}

func failure(message string) SyncOutcome {
	return SyncOutcome{Success: false, Count: 0, Message: message}
}

// friendlyHint appends a configuration pointer to the error classes that
// operators hit most.
func friendlyHint(err error) string {
	msg := err.Error()
	if strings.Contains(msg, "connection refused") || strings.Contains(msg, "no such host") {
		return msg + " (check PBI_TOKEN_URL / PBI_API_BASE_URL and network access)"
	}
	return msg
}
