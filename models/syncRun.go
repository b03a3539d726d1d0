package models

import (
	"context"
	"time"

	"github.com/airfinance/finbi_backend/config"
)

const (
	SyncTargetPayables    = "payables"
	SyncTargetReceivables = "receivables"
)

const (
	SyncRunStatusRunning = "running"
	SyncRunStatusSuccess = "success"
	SyncRunStatusFailed  = "failed"
)

// SyncRun is one execution of the Power BI pull for a single target table.
type SyncRun struct {
	ID            uint       `gorm:"primary_key" json:"id"`
	Target        string     `gorm:"index;size:20;not null" json:"target"`
	Status        string     `gorm:"size:20;not null" json:"status"`
	RecordsSynced int        `json:"records_synced"`
	Message       string     `gorm:"type:text" json:"message"`
	StartedAt     *time.Time `json:"started_at"`
	FinishedAt    *time.Time `json:"finished_at"`
	DurationMs    int64      `json:"duration_ms"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func CreateSyncRun(ctx context.Context, target string) (*SyncRun, error) {
	now := time.Now()
	run := &SyncRun{
		Target:    target,
		Status:    SyncRunStatusRunning,
		StartedAt: &now,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(run).Error; err != nil {
		return nil, err
	}
	return run, nil
}

func FinishSyncRun(ctx context.Context, run *SyncRun, status string, recordsSynced int, message string) error {
	now := time.Now()
	run.Status = status
	run.RecordsSynced = recordsSynced
	run.Message = message
	run.FinishedAt = &now
	if run.StartedAt != nil {
		run.DurationMs = now.Sub(*run.StartedAt).Milliseconds()
	}
	db := config.GetDB()
	return db.WithContext(ctx).Save(run).Error
}

func ListSyncRuns(ctx context.Context, limit int) ([]*SyncRun, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var runs []*SyncRun
	db := config.GetDB()
	err := db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, err
	}
	return runs, nil
}
