package credential

import (
	"fmt"
	"sync"

	"github.com/99designs/keyring"
)

// Config holds the "credential" configuration section.
type Config struct {
	// Service is the keyring service name.
	Service string `mapstructure:"service" default:"mailrecon"`
	// FileDir is used by the encrypted file backend.
	FileDir string `mapstructure:"file_dir" default:"~/.config/mailrecon/credentials"`
	// FilePassword unlocks the file backend.
	FilePassword string `mapstructure:"file_password" default:"mailrecon-file-key"`
}

// Getter reads a secret by key.
type Getter interface {
	Get(key string) (string, error)
}

// Store wraps a keyring.
type Store struct {
	ring keyring.Keyring
}

// Open opens the platform keyring described by cfg.
func Open(cfg Config) (*Store, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: cfg.Service,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  cfg.FileDir,
		FilePasswordFunc:         keyring.FixedStringPrompt(cfg.FilePassword),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return &Store{ring: ring}, nil
}

// New wraps an existing keyring.
func New(ring keyring.Keyring) *Store {
	return &Store{ring: ring}
}

// IMAPKey is the keyring key for an IMAP account password.
func IMAPKey(username, host string) string {
	return "imap:" + username + "@" + host
}

// Get retrieves a secret.
func (s *Store) Get(key string) (string, error) {
	item, err := s.ring.Get(key)
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", key, err)
	}
	return string(item.Data), nil
}

// Set stores a secret.
func (s *Store) Set(key, value string) error {
	if err := s.ring.Set(keyring.Item{Key: key, Data: []byte(value), Label: key}); err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}
	return nil
}

// Delete removes a secret.
func (s *Store) Delete(key string) error {
	if err := s.ring.Remove(key); err != nil {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}
	return nil
}

// Lazy returns a Getter that opens the keyring on first use.
func Lazy(cfg Config) Getter {
	return &lazyStore{open: func() (*Store, error) { return Open(cfg) }}
}

type lazyStore struct {
	once  sync.Once
	open  func() (*Store, error)
	store *Store
	err   error
}

func (l *lazyStore) Get(key string) (string, error) {
	l.once.Do(func() { l.store, l.err = l.open() })
	if l.err != nil {
		return "", l.err
	}
	return l.store.Get(key)
}
