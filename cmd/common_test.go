package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"mailrecon/core/config"
	"mailrecon/core/database"
	"mailrecon/core/history"
	"mailrecon/core/mailbox"
	"mailrecon/core/reconcile"
	"mailrecon/core/report"
	"mailrecon/core/storage"
	"mailrecon/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var started = time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

func testSession(client storage.Client) *session {
	return &session{
		cfg:  &config.Config{Storage: storage.Config{Bucket: "reports"}},
		log:  zap.NewNop(),
		deps: mailbox.Deps{Storage: client},
		fs:   afero.NewMemMapFs(),
	}
}

func dedupeResult(success bool) *reconcile.DedupeResult {
	res := &reconcile.DedupeResult{
		Outcome:    reconcile.Outcome{Success: success, Total: 2, Errors: []string{}, Warnings: []string{}},
		Unique:     []string{"a.eml"},
		Duplicates: []string{"b.eml"},
		Matches: []reconcile.Match{{
			Left:      reconcile.MatchRef{ID: "b.eml"},
			Right:     reconcile.MatchRef{ID: "a.eml"},
			Certainty: reconcile.Exact,
			Reason:    "identical Message-ID",
		}},
	}
	if !success {
		res.Errors = []string{"duplicate item id: a.eml"}
	}
	return res
}

func TestMatchFlags_Apply(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, s reconcile.Settings)
	}{
		{
			name: "No flags keep config",
			args: nil,
			check: func(t *testing.T, s reconcile.Settings) {
				assert.Equal(t, reconcile.DefaultSettings(), s)
			},
		},
		{
			name: "Overrides",
			args: []string{"--min-certainty", "medium", "--tolerance", "30", "--medium-window", "10", "--no-content", "--workers", "2"},
			check: func(t *testing.T, s reconcile.Settings) {
				assert.Equal(t, "medium", s.MinCertainty)
				assert.Equal(t, 30, s.DedupeToleranceSeconds)
				assert.Equal(t, 15, s.CompareToleranceSeconds)
				assert.Equal(t, 10, s.MediumWindowMinutes)
				assert.False(t, s.UseContent)
				assert.True(t, s.UseMessageID)
				assert.Equal(t, 2, s.Workers)
			},
		},
		{
			name: "Zero tolerance is an override",
			args: []string{"--tolerance", "0", "--no-message-id"},
			check: func(t *testing.T, s reconcile.Settings) {
				assert.Equal(t, 0, s.DedupeToleranceSeconds)
				assert.False(t, s.UseMessageID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var flags matchFlags
			cmd := &cobra.Command{Use: "test"}
			flags.register(cmd, true)
			require.NoError(t, cmd.ParseFlags(tt.args))

			settings := reconcile.DefaultSettings()
			require.NoError(t, flags.apply(cmd, &settings, &settings.DedupeToleranceSeconds))
			tt.check(t, settings)
		})
	}
}

func TestMatchFlags_NegativeTolerance(t *testing.T) {
	var flags matchFlags
	cmd := &cobra.Command{Use: "test"}
	flags.register(cmd, false)
	require.NoError(t, cmd.ParseFlags([]string{"--tolerance=-5"}))

	settings := reconcile.DefaultSettings()
	assert.Error(t, flags.apply(cmd, &settings, &settings.CompareToleranceSeconds))
	assert.Nil(t, cmd.Flags().Lookup("min-certainty"))
}

func TestCollectionNames(t *testing.T) {
	got := collectionNames([]string{"./mail/work/", "s3://archive/old", "/tmp/home.mbox"}, []string{"", "legacy"})
	assert.Equal(t, []string{"work", "legacy", "home.mbox"}, got)
}

func TestWriteDocument(t *testing.T) {
	doc, err := report.NewDocument("inbox", dedupeResult(true), report.Selection{})
	require.NoError(t, err)

	t.Run("Directory", func(t *testing.T) {
		s := testSession(nil)
		loc, err := s.writeDocument(context.Background(), "/reports", "dedupe", started, doc)
		require.NoError(t, err)
		assert.Equal(t, "/reports/dedupe-20240301-103000.json", loc)

		exists, err := afero.Exists(s.fs, loc)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("File", func(t *testing.T) {
		s := testSession(nil)
		loc, err := s.writeDocument(context.Background(), "/out/result.JSON", "dedupe", started, doc)
		require.NoError(t, err)
		assert.Equal(t, "/out/result.JSON", loc)
	})

	t.Run("Bucket prefix", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "archive").Return(true, nil)
		client.On("PutObject", mock.Anything, "archive", "runs/dedupe-20240301-103000.json", mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, nil)

		s := testSession(client)
		loc, err := s.writeDocument(context.Background(), "s3://archive/runs/", "dedupe", started, doc)
		require.NoError(t, err)
		assert.Equal(t, "s3://archive/runs/dedupe-20240301-103000.json", loc)
		client.AssertExpectations(t)
	})

	t.Run("Default bucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "reports").Return(true, nil)
		client.On("PutObject", mock.Anything, "reports", "runs/dedupe-20240301-103000.json", mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, nil)

		s := testSession(client)
		s.cfg.Storage.ReportPrefix = "runs/"
		loc, err := s.writeDocument(context.Background(), "s3://", "dedupe", started, doc)
		require.NoError(t, err)
		assert.Equal(t, "s3://reports/runs/dedupe-20240301-103000.json", loc)
	})
}

func TestFinish(t *testing.T) {
	t.Run("Summary with report and history", func(t *testing.T) {
		db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
		require.NoError(t, err)
		store := history.NewStore(db)
		require.NoError(t, store.Migrate())

		s := testSession(nil)
		s.store = store
		var out bytes.Buffer
		cmd := &cobra.Command{}
		cmd.SetOut(&out)

		res := dedupeResult(true)
		err = s.finish(context.Background(), cmd, outputFlags{out: "/reports"}, "dedupe", "inbox", res, res.Outcome, report.Selection{Duplicates: true}, started)
		require.NoError(t, err)

		text := out.String()
		assert.Contains(t, text, "MAILBOX DEDUPLICATION")
		assert.Contains(t, text, "/reports/dedupe-20240301-103000.json")
		assert.Contains(t, text, "Run ID")

		runs, err := store.List(context.Background(), history.ListOptions{})
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, "dedupe", runs[0].Operation)

		raw, err := afero.ReadFile(s.fs, "/reports/dedupe-20240301-103000.json")
		require.NoError(t, err)
		var doc report.Document
		require.NoError(t, json.Unmarshal(raw, &doc))
		assert.Equal(t, []any{"b.eml"}, doc.Partitions[report.PartDuplicates])
	})

	t.Run("JSON", func(t *testing.T) {
		s := testSession(nil)
		var out bytes.Buffer
		cmd := &cobra.Command{}
		cmd.SetOut(&out)

		res := dedupeResult(true)
		require.NoError(t, s.finish(context.Background(), cmd, outputFlags{asJSON: true}, "dedupe", "inbox", res, res.Outcome, report.Selection{}, started))

		var doc report.Document
		require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
		assert.Equal(t, "dedupe", doc.Operation)
		assert.NotContains(t, doc.Partitions, report.PartDuplicates)
	})

	t.Run("Failed outcome", func(t *testing.T) {
		s := testSession(nil)
		var out bytes.Buffer
		cmd := &cobra.Command{}
		cmd.SetOut(&out)

		res := dedupeResult(false)
		err := s.finish(context.Background(), cmd, outputFlags{}, "dedupe", "inbox", res, res.Outcome, report.Selection{}, started)
		assert.EqualError(t, err, "dedupe failed: duplicate item id: a.eml")
		assert.Contains(t, out.String(), "FAILED")
	})
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range RootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"dedupe", "compare", "merge", "filter", "history", "credential", "start"} {
		assert.True(t, names[want], want)
	}
}
