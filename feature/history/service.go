package history

import (
	"context"

	hist "mailrecon/core/history"

	"go.uber.org/zap"
)

// Service reads recorded runs.
type Service struct {
	store  *hist.Store
	logger *zap.Logger
}

// NewService creates a new history service.
func NewService(store *hist.Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// List returns recorded runs, newest first.
func (s *Service) List(ctx context.Context, opts hist.ListOptions) ([]hist.Run, error) {
	return s.store.List(ctx, opts)
}

// Get returns one run with its matches.
func (s *Service) Get(ctx context.Context, runID string) (*hist.Run, error) {
	return s.store.Get(ctx, runID)
}

// Schema checks the history tables against the models.
func (s *Service) Schema() (*hist.SchemaReport, error) {
	return hist.CheckSchema(s.store.DB())
}
