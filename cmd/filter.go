package cmd

import (
	"fmt"
	"time"

	"mailrecon/core/reconcile"
	"mailrecon/core/report"

	"github.com/spf13/cobra"
)

var (
	filterOutput      outputFlags
	filterCriteria    reconcile.FilterConfig
	filterMode        string
	filterNonMatching bool
)

// filterCmd selects messages by sender and recipient.
var filterCmd = &cobra.Command{
	Use:   "filter <source>",
	Short: "Select emails by sender or recipient",
	Long: `Partition a mailbox into messages that match the address criteria and
messages that do not. Each repeated flag adds a value to its criterion group;
--mode all requires every configured group to match.

Examples:
  mailrecon filter ./export --sender-domain example.com
  mailrecon filter ./export --recipient-email boss@example.com --include-cc --mode all --sender-domain example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runFilter,
}

func init() {
	flags := filterCmd.Flags()
	flags.StringArrayVar(&filterCriteria.SenderEmails, "sender-email", nil, "Sender address to match (repeatable)")
	flags.StringArrayVar(&filterCriteria.SenderDomains, "sender-domain", nil, "Sender domain to match (repeatable)")
	flags.StringArrayVar(&filterCriteria.RecipientEmails, "recipient-email", nil, "Recipient address to match (repeatable)")
	flags.StringArrayVar(&filterCriteria.RecipientDomains, "recipient-domain", nil, "Recipient domain to match (repeatable)")
	flags.StringVar(&filterMode, "mode", string(reconcile.MatchAny), "How criterion groups combine (any, all)")
	flags.BoolVar(&filterCriteria.IncludeCc, "include-cc", false, "Match recipients in Cc")
	flags.BoolVar(&filterCriteria.IncludeBcc, "include-bcc", false, "Match recipients in Bcc")
	flags.BoolVar(&filterNonMatching, "output-non-matching", false, "Include non-matching message IDs in the report")
	filterOutput.register(filterCmd)

	RootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	criteria := filterCriteria
	criteria.Mode = reconcile.MatchMode(filterMode)
	if criteria.Empty() {
		return reconcile.ErrNoCriteria
	}

	s, err := newSession(filterOutput.record)
	if err != nil {
		return err
	}
	defer s.log.Sync()

	items, err := s.load(ctx, args[0])
	if err != nil {
		return err
	}

	started := time.Now()
	f := &reconcile.Filter{Options: s.cfg.Match.Options(s.progress())}
	res, err := f.Apply(ctx, items, criteria)
	if err != nil {
		return fmt.Errorf("filter interrupted: %w", err)
	}

	sel := report.Selection{NonMatched: filterNonMatching}
	return s.finish(ctx, cmd, filterOutput, "filter", args[0], res, res.Outcome, sel, started)
}
