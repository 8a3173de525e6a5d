package cmd

import (
	"encoding/json"
	"fmt"

	"mailrecon/core/config"
	"mailrecon/core/database"
	"mailrecon/core/history"
	"mailrecon/core/logger"
	"mailrecon/core/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	historyOperation string
	historyLimit     int
	historyOffset    int
)

// historyCmd is the parent command for recorded runs.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded runs",
	Long:  `List and show runs recorded with --record or by the HTTP server.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openHistoryStore()
		if err != nil {
			return err
		}
		runs, err := store.List(cmd.Context(), history.ListOptions{
			Operation: historyOperation,
			Limit:     historyLimit,
			Offset:    historyOffset,
		})
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), report.RunTable(runs))
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print one run with its matches as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openHistoryStore()
		if err != nil {
			return err
		}
		run, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			*history.Run
			Result json.RawMessage `json:"result,omitempty"`
		}{run, run.Result()})
	},
}

var historySchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the history tables against the expected columns",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, l, err := openHistoryStore()
		if err != nil {
			return err
		}
		rep, err := history.CheckSchema(store.DB())
		if err != nil {
			return fmt.Errorf("failed to check schema: %w", err)
		}
		for name, table := range rep.Tables {
			l.Info("Table checked",
				zap.String("table", name),
				zap.String("status", table.Status),
				zap.Strings("missing_columns", table.MissingColumns),
				zap.Strings("type_mismatches", table.TypeMismatches),
			)
		}
		if !rep.Matched {
			return fmt.Errorf("schema mismatch in %d table(s)", countMismatched(rep))
		}
		l.Info("Schema matches")
		return nil
	},
}

func countMismatched(rep *history.SchemaReport) int {
	n := 0
	for _, t := range rep.Tables {
		if t.Status != "ok" {
			n++
		}
	}
	return n
}

// openHistoryStore connects the database for history commands. Unlike the
// operation commands, a missing database is an error here.
func openHistoryStore() (*history.Store, *zap.Logger, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	store := history.NewStore(db)
	if err := store.Migrate(); err != nil {
		return nil, nil, err
	}
	return store, l, nil
}

func init() {
	historyListCmd.Flags().StringVar(&historyOperation, "operation", "", "Only list runs of this operation (dedupe, compare, merge, filter)")
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 50, "Maximum number of runs")
	historyListCmd.Flags().IntVar(&historyOffset, "offset", 0, "Number of runs to skip")

	historyCmd.AddCommand(historyListCmd, historyShowCmd, historySchemaCmd)
	RootCmd.AddCommand(historyCmd)
}
