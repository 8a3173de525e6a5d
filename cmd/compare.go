package cmd

import (
	"fmt"
	"time"

	"mailrecon/core/reconcile"
	"mailrecon/core/report"

	"github.com/spf13/cobra"
)

var (
	compareMatch    matchFlags
	compareOutput   outputFlags
	compareNoCommon bool
	compareNoOnlyA  bool
	compareNoOnlyB  bool
)

// compareCmd classifies two mailboxes against each other.
var compareCmd = &cobra.Command{
	Use:   "compare <mailbox-a> <mailbox-b>",
	Short: "Compare two mailboxes",
	Long: `Index mailbox B and classify every message of mailbox A as common or
unique to A. Messages of B that no A message matched are unique to B.

Examples:
  # What is missing from the server copy?
  mailrecon compare ./backup imap://me@mail.example.com/INBOX

  # Only write the messages unique to A
  mailrecon compare ./a ./b --no-common --no-unique-b -o report.json`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	compareMatch.register(compareCmd, false)
	compareOutput.register(compareCmd)
	compareCmd.Flags().BoolVar(&compareNoCommon, "no-common", false, "Leave common messages out of the report")
	compareCmd.Flags().BoolVar(&compareNoOnlyA, "no-unique-a", false, "Leave messages unique to A out of the report")
	compareCmd.Flags().BoolVar(&compareNoOnlyB, "no-unique-b", false, "Leave messages unique to B out of the report")

	RootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	s, err := newSession(compareOutput.record)
	if err != nil {
		return err
	}
	defer s.log.Sync()

	settings := s.cfg.Match
	if err := compareMatch.apply(cmd, &settings, &settings.CompareToleranceSeconds); err != nil {
		return err
	}

	a, err := s.load(ctx, args[0])
	if err != nil {
		return err
	}
	b, err := s.load(ctx, args[1])
	if err != nil {
		return err
	}

	started := time.Now()
	c := &reconcile.Comparator{Config: settings.Compare(), Options: settings.Options(s.progress())}
	res, err := c.Compare(ctx, a, b)
	if err != nil {
		return fmt.Errorf("comparison interrupted: %w", err)
	}

	sel := report.Selection{Common: !compareNoCommon, UniqueToA: !compareNoOnlyA, UniqueToB: !compareNoOnlyB}
	source := args[0] + " vs " + args[1]
	return s.finish(ctx, cmd, compareOutput, "compare", source, res, res.Outcome, sel, started)
}
