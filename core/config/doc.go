// Package config provides configuration management for mailrecon.
//
// It utilizes Viper for loading configuration from an optional config.yaml,
// a .env file and environment variables.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, body limit)
//   - Storage: S3/MinIO credentials and the default mailbox bucket
//   - Log: Logging level and format
//   - Database: run history connection (mysql, postgres, sqlite)
//   - Match: default certainty, tiers, tolerances and worker count
//   - IMAP: default IMAP account for imap:// sources
//   - Credential: keyring service used for IMAP passwords
//
// Defaults come from the `default` struct tags. Environment variables use the
// upper-cased key path, e.g. MATCH_MIN_CERTAINTY or SERVER_API_KEY.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Match.MinCertainty)
package config
