package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mailrecon/core/history"
	"mailrecon/core/mailbox"
	engine "mailrecon/core/reconcile"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ErrBadRequest marks errors caused by the request itself.
var ErrBadRequest = errors.New("bad request")

// Service runs reconcile operations for the HTTP API.
type Service struct {
	settings engine.Settings
	deps     mailbox.Deps
	files    bool
	store    *history.Store
	logger   *zap.Logger
	cache    *sourceCache
}

// Options configure a Service.
type Options struct {
	// Settings are the configured match defaults.
	Settings engine.Settings
	// Deps are handed to mailbox.Open. Deps.Fs defaults to the OS filesystem.
	Deps mailbox.Deps
	// DataDir roots filesystem sources. Empty disables them.
	DataDir string
	// CacheTTL keeps loaded sources; zero only shares concurrent loads.
	CacheTTL time.Duration
	// Store records runs when set.
	Store *history.Store
}

// NewService creates a new reconcile service.
func NewService(opts Options, logger *zap.Logger) *Service {
	s := &Service{
		settings: opts.Settings,
		deps:     opts.Deps,
		store:    opts.Store,
		logger:   logger,
	}
	if opts.DataDir != "" {
		base := opts.Deps.Fs
		if base == nil {
			base = afero.NewOsFs()
		}
		s.deps.Fs = afero.NewReadOnlyFs(afero.NewBasePathFs(base, opts.DataDir))
		s.files = true
	}
	s.cache = newSourceCache(opts.CacheTTL, s.loadLocation)
	return s
}

func (s *Service) loadLocation(ctx context.Context, location string) ([]engine.Item, error) {
	if !strings.Contains(location, "://") && !s.files {
		return nil, fmt.Errorf("%w: filesystem sources are disabled", ErrBadRequest)
	}
	src, err := mailbox.Open(location, s.deps)
	if err != nil {
		if errors.Is(err, mailbox.ErrUnsupportedSource) {
			return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
		}
		return nil, err
	}

	started := time.Now()
	items, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", src.Name(), err)
	}
	s.logger.Info("Source loaded",
		zap.String("source", src.Name()),
		zap.Int("items", len(items)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return items, nil
}

func (s *Service) items(ctx context.Context, in Input) ([]engine.Item, error) {
	if in.Source != "" {
		if len(in.Records) > 0 {
			return nil, fmt.Errorf("%w: source and records are mutually exclusive", ErrBadRequest)
		}
		return s.cache.Get(ctx, in.Source)
	}

	items := make([]engine.Item, len(in.Records))
	for i, r := range in.Records {
		if r.ID == "" {
			return nil, fmt.Errorf("%w: record %d has no id", ErrBadRequest, i)
		}
		rec := r.Record
		items[i] = engine.Item{ID: r.ID, Record: &rec, SourceFile: r.SourceFile, FolderPath: r.FolderPath}
	}
	return items, nil
}

func sourceName(in Input) string {
	if in.Source != "" {
		return in.Source
	}
	return fmt.Sprintf("inline (%d records)", len(in.Records))
}

// record stores the run and returns its id, or "" without a store.
func (s *Service) record(ctx context.Context, source string, result any, started time.Time) string {
	if s.store == nil {
		return ""
	}
	run, err := history.NewRun(source, result, started, time.Since(started))
	if err == nil {
		err = s.store.Save(ctx, run)
	}
	if err != nil {
		s.logger.Warn("Failed to record run", zap.Error(err))
		return ""
	}
	return run.RunID
}

func negative(name string, v int) error {
	if v < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrBadRequest, name)
	}
	return nil
}

// Dedupe removes duplicates inside one mailbox.
func (s *Service) Dedupe(ctx context.Context, req DedupeRequest, progress engine.ProgressFunc) (*engine.DedupeResult, string, error) {
	settings := req.MatchOptions.apply(s.settings, dedupeTolerance)
	cfg, err := settings.Dedupe()
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	items, err := s.items(ctx, req.Input)
	if err != nil {
		return nil, "", err
	}

	started := time.Now()
	d := &engine.Deduplicator{Config: cfg, Options: settings.Options(progress)}
	res, err := d.Process(ctx, items)
	if err != nil {
		return res, "", err
	}
	return res, s.record(ctx, sourceName(req.Input), res, started), nil
}

// Compare classifies mailbox A against mailbox B.
func (s *Service) Compare(ctx context.Context, req CompareRequest, progress engine.ProgressFunc) (*engine.CompareResult, string, error) {
	settings := req.MatchOptions.apply(s.settings, compareTolerance)
	if err := negative("tolerance_seconds", settings.CompareToleranceSeconds); err != nil {
		return nil, "", err
	}
	a, err := s.items(ctx, req.A)
	if err != nil {
		return nil, "", fmt.Errorf("mailbox a: %w", err)
	}
	b, err := s.items(ctx, req.B)
	if err != nil {
		return nil, "", fmt.Errorf("mailbox b: %w", err)
	}

	started := time.Now()
	c := &engine.Comparator{Config: settings.Compare(), Options: settings.Options(progress)}
	res, err := c.Compare(ctx, a, b)
	if err != nil {
		return res, "", err
	}
	source := sourceName(req.A) + " vs " + sourceName(req.B)
	return res, s.record(ctx, source, res, started), nil
}

// Merge unions several mailboxes.
func (s *Service) Merge(ctx context.Context, req MergeRequest, progress engine.ProgressFunc) (*engine.MergeResult, string, error) {
	settings := req.MatchOptions.apply(s.settings, mergeTolerance)
	if err := negative("tolerance_seconds", settings.MergeToleranceSeconds); err != nil {
		return nil, "", err
	}

	collections := make([]engine.Collection, len(req.Collections))
	names := make([]string, len(req.Collections))
	for i, in := range req.Collections {
		items, err := s.items(ctx, in.Input)
		if err != nil {
			return nil, "", fmt.Errorf("collection %d: %w", i+1, err)
		}
		collections[i] = engine.Collection{Name: in.Name, Items: items}
		names[i] = sourceName(in.Input)
	}

	started := time.Now()
	m := &engine.Merger{Config: settings.Merge(), Options: settings.Options(progress)}
	res, err := m.Merge(ctx, collections, req.Deduplicate)
	if err != nil {
		return res, "", err
	}
	return res, s.record(ctx, strings.Join(names, " + "), res, started), nil
}

// Filter selects records by sender and recipient.
func (s *Service) Filter(ctx context.Context, req FilterRequest, progress engine.ProgressFunc) (*engine.FilterResult, string, error) {
	items, err := s.items(ctx, req.Input)
	if err != nil {
		return nil, "", err
	}

	started := time.Now()
	f := &engine.Filter{Options: s.settings.Options(progress)}
	res, err := f.Apply(ctx, items, req.FilterConfig)
	if err != nil {
		return res, "", err
	}
	return res, s.record(ctx, sourceName(req.Input), res, started), nil
}
