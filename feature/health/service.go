package health

import (
	"context"
	"fmt"

	"mailrecon/core/history"
	"mailrecon/core/storage"

	"go.uber.org/zap"
)

// Check statuses.
const (
	StatusOK       = "ok"
	StatusMissing  = "missing"
	StatusError    = "error"
	StatusDisabled = "disabled"
)

// StorageReport describes the report bucket.
type StorageReport struct {
	Bucket string `json:"bucket"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// DatabaseReport describes the history tables.
type DatabaseReport struct {
	Status string                `json:"status"`
	Schema *history.SchemaReport `json:"schema,omitempty"`
	Error  string                `json:"error,omitempty"`
}

// Report combines every check.
type Report struct {
	Healthy  bool           `json:"healthy"`
	Storage  StorageReport  `json:"storage"`
	Database DatabaseReport `json:"database"`
}

// Service runs health checks.
type Service struct {
	client storage.Client
	bucket string
	region string
	store  *history.Store
	logger *zap.Logger
}

// NewService creates a new health service. store may be nil.
func NewService(client storage.Client, bucket, region string, store *history.Store, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		region: region,
		store:  store,
		logger: logger,
	}
}

// CheckStorage verifies that the configured bucket exists.
func (s *Service) CheckStorage(ctx context.Context) StorageReport {
	rep := StorageReport{Bucket: s.bucket, Status: StatusOK}
	exists, err := s.client.BucketExists(ctx, s.bucket)
	switch {
	case err != nil:
		rep.Status = StatusError
		rep.Error = fmt.Sprintf("failed to check bucket existence: %v", err)
	case !exists:
		rep.Status = StatusMissing
	}
	return rep
}

// FixStorage creates the bucket when it is missing.
func (s *Service) FixStorage(ctx context.Context) error {
	if err := storage.EnsureBucket(ctx, s.client, s.bucket, s.region); err != nil {
		s.logger.Error("Failed to create bucket", zap.String("bucket", s.bucket), zap.Error(err))
		return err
	}
	s.logger.Info("Bucket ready", zap.String("bucket", s.bucket))
	return nil
}

// CheckDatabase compares the history tables with the models. Without a
// store the check is reported as disabled.
func (s *Service) CheckDatabase() DatabaseReport {
	if s.store == nil {
		return DatabaseReport{Status: StatusDisabled}
	}
	schema, err := history.CheckSchema(s.store.DB())
	if err != nil {
		return DatabaseReport{Status: StatusError, Error: err.Error()}
	}
	rep := DatabaseReport{Status: StatusOK, Schema: schema}
	if !schema.Matched {
		rep.Status = StatusError
	}
	return rep
}

// Check runs every check.
func (s *Service) Check(ctx context.Context) Report {
	rep := Report{
		Storage:  s.CheckStorage(ctx),
		Database: s.CheckDatabase(),
	}
	rep.Healthy = rep.Storage.Status == StatusOK && rep.Database.Status != StatusError
	return rep
}
