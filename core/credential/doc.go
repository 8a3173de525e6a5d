// Package credential stores mailbox passwords in the operating system
// keyring, so they never have to live in configuration files.
package credential
