package cmd

import (
	"fmt"
	"time"

	"mailrecon/core/reconcile"
	"mailrecon/core/report"

	"github.com/spf13/cobra"
)

var (
	dedupeMatch          matchFlags
	dedupeOutput         outputFlags
	dedupeListDuplicates bool
)

// dedupeCmd finds duplicate emails inside one mailbox.
var dedupeCmd = &cobra.Command{
	Use:   "dedupe <source>",
	Short: "Find duplicate emails inside one mailbox",
	Long: `Fingerprint every message of a mailbox and report the duplicates.

The first message of each duplicate group is kept. Matches are graded
exact (Message-ID or content), high (sender, subject and timestamp),
medium (sender and subject within a window) and low (subject only).

Examples:
  # Strict deduplication of a maildir export
  mailrecon dedupe ./export

  # Include medium matches and write the report next to the export
  mailrecon dedupe ./export --min-certainty medium -o ./reports

  # Deduplicate an archived bucket prefix, listing the dropped messages
  mailrecon dedupe s3://archive/2024/ --list-duplicates --json`,
	Args: cobra.ExactArgs(1),
	RunE: runDedupe,
}

func init() {
	dedupeMatch.register(dedupeCmd, true)
	dedupeOutput.register(dedupeCmd)
	dedupeCmd.Flags().BoolVar(&dedupeListDuplicates, "list-duplicates", false, "Include the dropped message IDs in the report")

	RootCmd.AddCommand(dedupeCmd)
}

func runDedupe(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	s, err := newSession(dedupeOutput.record)
	if err != nil {
		return err
	}
	defer s.log.Sync()

	settings := s.cfg.Match
	if err := dedupeMatch.apply(cmd, &settings, &settings.DedupeToleranceSeconds); err != nil {
		return err
	}
	cfg, err := settings.Dedupe()
	if err != nil {
		return fmt.Errorf("invalid match settings: %w", err)
	}

	items, err := s.load(ctx, args[0])
	if err != nil {
		return err
	}

	started := time.Now()
	d := &reconcile.Deduplicator{Config: cfg, Options: settings.Options(s.progress())}
	res, err := d.Process(ctx, items)
	if err != nil {
		return fmt.Errorf("deduplication interrupted: %w", err)
	}

	sel := report.Selection{Duplicates: dedupeListDuplicates}
	return s.finish(ctx, cmd, dedupeOutput, "dedupe", args[0], res, res.Outcome, sel, started)
}
