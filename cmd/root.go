package cmd

import (
	"fmt"
	"os"

	"mailrecon/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// configDir is where config.yaml and .env are looked up.
var configDir string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "mailrecon",
	Short: "Mailbox reconciliation engine",
	Long: `mailrecon finds duplicate emails inside a mailbox, compares and merges
mailboxes, and filters them by sender or recipient.

Mailboxes are read from local .eml/.mbox trees, S3 buckets (s3://bucket/prefix)
or IMAP folders (imap://user@host/Folder).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with debug level gives ISO8601 timestamps on stderr.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory holding config.yaml and .env")
}
