package pbisync

import (
	"context"

	"github.com/airfinance/finbi_backend/models"
)

// gormStore is the production RecordStore, delegating to the models layer.
type gormStore struct{}

func NewGormStore() RecordStore {
	return gormStore{}
}

func (gormStore) UpsertPayables(ctx context.Context, batch []models.PayableRecord) error {
	return models.UpsertPayablesBatch(ctx, batch)
}

func (gormStore) UpsertReceivables(ctx context.Context, batch []models.ReceivableRecord) error {
	return models.UpsertReceivablesBatch(ctx, batch)
}

func (gormStore) BeginRun(ctx context.Context, target string) (*models.SyncRun, error) {
	return models.CreateSyncRun(ctx, target)
}

func (gormStore) FinishRun(ctx context.Context, run *models.SyncRun, status string, count int, message string) error {
	return models.FinishSyncRun(ctx, run, status, count, message)
}
