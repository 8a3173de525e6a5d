package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"mailrecon/core/reconcile"
	"mailrecon/core/report"

	"github.com/spf13/cobra"
)

var (
	mergeMatch    matchFlags
	mergeOutput   outputFlags
	mergeNoDedupe bool
	mergeNames    []string
)

// mergeCmd unions several mailboxes.
var mergeCmd = &cobra.Command{
	Use:   "merge <source>...",
	Short: "Merge mailboxes into one deduplicated union",
	Long: `Concatenate mailboxes in argument order and drop messages already seen
in an earlier position. With --no-dedupe the plain union is reported.

Examples:
  mailrecon merge ./laptop ./desktop s3://archive/old/ -o s3://reports/
  mailrecon merge ./a ./b --name work --name personal`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMerge,
}

func init() {
	mergeMatch.register(mergeCmd, false)
	mergeOutput.register(mergeCmd)
	mergeCmd.Flags().BoolVar(&mergeNoDedupe, "no-dedupe", false, "Keep every message of every mailbox")
	mergeCmd.Flags().StringArrayVar(&mergeNames, "name", nil, "Collection name, once per source in order (defaults to the source base name)")

	RootCmd.AddCommand(mergeCmd)
}

// collectionNames pairs sources with explicit names, falling back to the
// last path element of the source.
func collectionNames(sources, names []string) []string {
	out := make([]string, len(sources))
	for i, src := range sources {
		if i < len(names) && names[i] != "" {
			out[i] = names[i]
			continue
		}
		out[i] = filepath.Base(strings.TrimRight(src, "/"))
	}
	return out
}

func runMerge(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	if len(mergeNames) > len(args) {
		return fmt.Errorf("%d names given for %d sources", len(mergeNames), len(args))
	}

	s, err := newSession(mergeOutput.record)
	if err != nil {
		return err
	}
	defer s.log.Sync()

	settings := s.cfg.Match
	if err := mergeMatch.apply(cmd, &settings, &settings.MergeToleranceSeconds); err != nil {
		return err
	}

	names := collectionNames(args, mergeNames)
	collections := make([]reconcile.Collection, len(args))
	for i, location := range args {
		items, err := s.load(ctx, location)
		if err != nil {
			return err
		}
		collections[i] = reconcile.Collection{Name: names[i], Items: items}
	}

	started := time.Now()
	m := &reconcile.Merger{Config: settings.Merge(), Options: settings.Options(s.progress())}
	res, err := m.Merge(ctx, collections, !mergeNoDedupe)
	if err != nil {
		return fmt.Errorf("merge interrupted: %w", err)
	}

	return s.finish(ctx, cmd, mergeOutput, "merge", strings.Join(args, " + "), res, res.Outcome, report.Selection{}, started)
}
