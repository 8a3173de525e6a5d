package history

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("run not found")

// ListOptions narrows List.
type ListOptions struct {
	Operation string
	Limit     int
	Offset    int
}

const defaultListLimit = 50

// Store persists runs.
type Store struct {
	db *gorm.DB
}

// NewStore wraps db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the connection for schema checks.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Migrate creates or updates the history tables.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&Run{}, &MatchRow{}); err != nil {
		return fmt.Errorf("migrating history tables: %w", err)
	}
	return nil
}

// Save inserts a run together with its matches.
func (s *Store) Save(ctx context.Context, run *Run) error {
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("saving run %s: %w", run.RunID, err)
	}
	return nil
}

// Get loads one run with its matches.
func (s *Store) Get(ctx context.Context, runID string) (*Run, error) {
	var run Run
	err := s.db.WithContext(ctx).Preload("Matches", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	}).Where("run_id = ?", runID).First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading run %s: %w", runID, err)
	}
	return &run, nil
}

// List returns runs newest first, without their matches.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]Run, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	q := s.db.WithContext(ctx).Model(&Run{}).Order("started_at DESC").Order("id DESC").Limit(limit).Offset(opts.Offset)
	if opts.Operation != "" {
		q = q.Where("operation = ?", opts.Operation)
	}

	runs := []Run{}
	if err := q.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}
