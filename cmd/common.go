package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"mailrecon/core/config"
	"mailrecon/core/credential"
	"mailrecon/core/database"
	"mailrecon/core/history"
	"mailrecon/core/logger"
	"mailrecon/core/mailbox"
	"mailrecon/core/reconcile"
	"mailrecon/core/report"
	"mailrecon/core/storage"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// session bundles what every mailbox command needs.
type session struct {
	cfg   *config.Config
	log   *zap.Logger
	deps  mailbox.Deps
	store *history.Store
	fs    afero.Fs
}

func newSession(record bool) (*session, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	s := &session{
		cfg: cfg,
		log: l,
		deps: mailbox.Deps{
			Storage: client,
			Bucket:  cfg.Storage.Bucket,
			IMAP:    cfg.IMAP,
			Secrets: credential.Lazy(cfg.Credential),
		},
		fs: afero.NewOsFs(),
	}
	if record {
		s.store = openHistory(cfg.Database, l)
	}
	return s, nil
}

// openHistory connects the run history database. Failures are logged and
// leave history disabled.
func openHistory(cfg database.Config, l *zap.Logger) *history.Store {
	db, err := database.Connect(cfg)
	if err != nil {
		l.Warn("History database unavailable", zap.Error(err))
		return nil
	}
	store := history.NewStore(db)
	if err := store.Migrate(); err != nil {
		l.Warn("History migration failed", zap.Error(err))
		return nil
	}
	return store
}

// signalContext is cancelled on SIGINT or SIGTERM so a long run stops between records.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func (s *session) progress() reconcile.ProgressFunc {
	return logger.Progress(s.log)
}

func (s *session) load(ctx context.Context, location string) ([]reconcile.Item, error) {
	src, err := mailbox.Open(location, s.deps)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	s.log.Info("Loading mailbox", zap.String("source", src.Name()))
	items, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", src.Name(), err)
	}
	s.log.Info("Mailbox loaded",
		zap.String("source", src.Name()),
		zap.Int("items", len(items)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return items, nil
}

// matchFlags override the "match" settings for one run.
type matchFlags struct {
	minCertainty string
	tolerance    int
	mediumWindow int
	noMessageID  bool
	noContent    bool
	workers      int
}

func (f *matchFlags) register(cmd *cobra.Command, withLevels bool) {
	flags := cmd.Flags()
	if withLevels {
		flags.StringVar(&f.minCertainty, "min-certainty", "high", "Lowest certainty reported as a duplicate (low, medium, high, exact)")
		flags.IntVar(&f.mediumWindow, "medium-window", 5, "MEDIUM tier window in minutes")
	}
	flags.IntVar(&f.tolerance, "tolerance", 0, "HIGH tier timestamp tolerance in seconds")
	flags.BoolVar(&f.noMessageID, "no-message-id", false, "Disable Message-ID matching")
	flags.BoolVar(&f.noContent, "no-content", false, "Disable content hash matching")
	flags.IntVar(&f.workers, "workers", 0, "Fingerprint workers (0 uses all CPUs)")
}

// apply copies explicitly set flags over settings. tolerance selects the
// operation's tolerance field.
func (f *matchFlags) apply(cmd *cobra.Command, settings *reconcile.Settings, tolerance *int) error {
	flags := cmd.Flags()
	if flags.Changed("min-certainty") {
		settings.MinCertainty = f.minCertainty
	}
	if flags.Changed("medium-window") {
		settings.MediumWindowMinutes = f.mediumWindow
	}
	if flags.Changed("tolerance") {
		if f.tolerance < 0 {
			return fmt.Errorf("--tolerance must not be negative")
		}
		*tolerance = f.tolerance
	}
	if f.noMessageID {
		settings.UseMessageID = false
	}
	if f.noContent {
		settings.UseContent = false
	}
	if flags.Changed("workers") {
		settings.Workers = f.workers
	}
	return nil
}

// outputFlags control where results go.
type outputFlags struct {
	out    string
	asJSON bool
	record bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.out, "output", "o", "", "Write the JSON report to a directory, a .json file or s3://bucket/prefix")
	flags.BoolVar(&f.asJSON, "json", false, "Print the JSON report instead of the summary")
	flags.BoolVar(&f.record, "record", false, "Record the run in the history database")
}

// reportName is the file name used when the output is a directory or prefix.
func reportName(op string, started time.Time) string {
	return fmt.Sprintf("%s-%s.json", op, started.UTC().Format("20060102-150405"))
}

// writeDocument stores doc at out and returns the resulting location.
func (s *session) writeDocument(ctx context.Context, out, op string, started time.Time, doc *report.Document) (string, error) {
	if rest, ok := strings.CutPrefix(out, "s3://"); ok {
		bucket, key, _ := strings.Cut(rest, "/")
		if bucket == "" {
			bucket = s.cfg.Storage.Bucket
		}
		if key == "" {
			key = s.cfg.Storage.ReportPrefix
		}
		if key == "" || strings.HasSuffix(key, "/") {
			key += reportName(op, started)
		}
		return report.NewPublisher(s.deps.Storage, bucket, s.cfg.Storage.Region).Publish(ctx, key, doc)
	}

	path := out
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		path = filepath.Join(out, reportName(op, started))
	}
	if err := report.WriteFile(s.fs, path, doc); err != nil {
		return "", err
	}
	return path, nil
}

// finish records, writes and prints a result. A failed outcome is returned
// as an error once the summary has been printed.
func (s *session) finish(ctx context.Context, cmd *cobra.Command, flags outputFlags, op, source string, result any, outcome reconcile.Outcome, sel report.Selection, started time.Time) error {
	elapsed := time.Since(started)
	s.log.Info("Run finished",
		zap.String("operation", op),
		zap.Bool("success", outcome.Success),
		zap.Int("total", outcome.Total),
		zap.Int("warnings", len(outcome.Warnings)),
		zap.Duration("elapsed", elapsed),
	)

	var runID string
	if s.store != nil {
		run, err := history.NewRun(source, result, started, elapsed)
		if err == nil {
			err = s.store.Save(ctx, run)
		}
		if err != nil {
			s.log.Warn("Failed to record run", zap.Error(err))
		} else {
			runID = run.RunID
		}
	}

	doc, err := report.NewDocument(source, result, sel)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	var location string
	if flags.out != "" {
		location, err = s.writeDocument(ctx, flags.out, op, started, doc)
		if err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		s.log.Info("Report written", zap.String("location", location))
	}

	stdout := cmd.OutOrStdout()
	if flags.asJSON {
		if err := doc.Encode(stdout); err != nil {
			return fmt.Errorf("failed to print report: %w", err)
		}
	} else {
		summary, err := report.Summarize(source, result)
		if err != nil {
			return fmt.Errorf("failed to summarize: %w", err)
		}
		if location != "" {
			summary.AddOutput("Report", location)
		}
		if runID != "" {
			summary.Rows = append(summary.Rows, report.Row{Label: "Run ID", Value: runID})
		}
		fmt.Fprintln(stdout, summary.Render())
	}

	if !outcome.Success {
		return fmt.Errorf("%s failed: %s", op, strings.Join(outcome.Errors, "; "))
	}
	return nil
}
