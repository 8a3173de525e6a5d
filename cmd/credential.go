package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"mailrecon/core/config"
	"mailrecon/core/credential"

	"github.com/spf13/cobra"
)

var credentialPasswordStdin bool

// credentialCmd manages IMAP passwords in the system keyring.
var credentialCmd = &cobra.Command{
	Use:   "credential",
	Short: "Manage IMAP passwords in the system keyring",
	Long: `Store IMAP passwords in the platform keyring so that imap:// sources
and the imap config section do not need a plaintext password.`,
}

var credentialSetCmd = &cobra.Command{
	Use:   "set <username> <host>",
	Short: "Store the password of an IMAP account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCredentials()
		if err != nil {
			return err
		}
		if !credentialPasswordStdin {
			fmt.Fprint(cmd.OutOrStdout(), "Password: ")
		}
		password, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && password == "" {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(password, "\r\n")
		if password == "" {
			return fmt.Errorf("empty password")
		}
		key := credential.IMAPKey(args[0], args[1])
		if err := store.Set(key, password); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stored %s\n", key)
		return nil
	},
}

var credentialDeleteCmd = &cobra.Command{
	Use:   "delete <username> <host>",
	Short: "Remove the password of an IMAP account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCredentials()
		if err != nil {
			return err
		}
		key := credential.IMAPKey(args[0], args[1])
		if err := store.Delete(key); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", key)
		return nil
	},
}

func openCredentials() (*credential.Store, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return credential.Open(cfg.Credential)
}

func init() {
	credentialSetCmd.Flags().BoolVar(&credentialPasswordStdin, "password-stdin", false, "Read the password from stdin without prompting")
	credentialCmd.AddCommand(credentialSetCmd, credentialDeleteCmd)
	RootCmd.AddCommand(credentialCmd)
}
