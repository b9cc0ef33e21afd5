package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Publish outcomes recorded per pipeline run.
const (
	OutcomePublished  = "published"
	OutcomeSuppressed = "suppressed"
	OutcomeUnchanged  = "unchanged"
	OutcomeFailed     = "failed"
)

// Record is one journal entry for a single package in a single run.
type Record struct {
	ID        uint   `gorm:"primaryKey"`
	RunID     string `gorm:"size:36;index"`
	Package   string `gorm:"size:191;index"`
	Version   string `gorm:"size:191"`
	Release   string `gorm:"size:64"`
	Outcome   string `gorm:"size:16"`
	Error     string `gorm:"type:text"`
	CreatedAt time.Time
}

// TableName overrides the GORM default pluralization.
func (Record) TableName() string {
	return "publish_records"
}

// Journal persists publish outcomes so runs can be audited after the fact.
type Journal struct {
	db *gorm.DB
}

// NewJournal migrates the records table and returns a ready journal.
func NewJournal(db *gorm.DB) (*Journal, error) {
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("failed to migrate journal schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Log appends a record to the journal.
func (j *Journal) Log(ctx context.Context, rec *Record) error {
	if err := j.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to write journal record: %w", err)
	}
	return nil
}

// LastPublished returns the most recent published record for a package,
// or nil when the package has never been published.
func (j *Journal) LastPublished(ctx context.Context, pkg string) (*Record, error) {
	var rec Record
	err := j.db.WithContext(ctx).
		Where("package = ? AND outcome = ?", pkg, OutcomePublished).
		Order("created_at DESC").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	return &rec, nil
}

// History returns the newest records for a package, most recent first.
func (j *Journal) History(ctx context.Context, pkg string, limit int) ([]Record, error) {
	var recs []Record
	err := j.db.WithContext(ctx).
		Where("package = ?", pkg).
		Order("created_at DESC").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	return recs, nil
}
