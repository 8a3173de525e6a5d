package mailbox

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"mailrecon/core/credential"
	"mailrecon/core/reconcile"
	"mailrecon/core/storage"

	"github.com/spf13/afero"
)

// ErrUnsupportedSource is returned when a location cannot be served.
var ErrUnsupportedSource = errors.New("unsupported source")

// Source delivers the items of one mailbox.
type Source interface {
	// Name identifies the source in logs and reports.
	Name() string
	// Load reads every message. Per-message failures are carried on the
	// items; the error is reserved for failures of the source itself.
	Load(ctx context.Context) ([]reconcile.Item, error)
}

// Deps carries the collaborators Open may wire into a source.
type Deps struct {
	Fs      afero.Fs
	Storage storage.Client
	Bucket  string
	IMAP    IMAPConfig
	Secrets credential.Getter
}

// Open resolves a location to a Source:
//
//	s3://bucket/prefix       objects under a bucket prefix (empty bucket uses Deps.Bucket)
//	imap://user@host:port/F  folder F of an IMAP account (missing parts come from Deps.IMAP)
//	anything else            a filesystem path
func Open(location string, deps Deps) (Source, error) {
	switch {
	case strings.HasPrefix(location, "s3://"):
		if deps.Storage == nil {
			return nil, fmt.Errorf("%w: %s: storage is not configured", ErrUnsupportedSource, location)
		}
		rest := strings.TrimPrefix(location, "s3://")
		bucket, prefix, _ := strings.Cut(rest, "/")
		if bucket == "" {
			bucket = deps.Bucket
		}
		return NewBucketSource(deps.Storage, bucket, prefix), nil

	case strings.HasPrefix(location, "imap://"):
		cfg, err := imapConfigFromURL(location, deps.IMAP)
		if err != nil {
			return nil, err
		}
		return NewIMAPSource(cfg, deps.Secrets), nil

	case strings.Contains(location, "://"):
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, location)
	}

	fs := deps.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return NewFileSource(fs, location), nil
}

func imapConfigFromURL(location string, base IMAPConfig) (IMAPConfig, error) {
	u, err := url.Parse(location)
	if err != nil {
		return base, fmt.Errorf("parsing %s: %w", location, err)
	}
	cfg := base
	if host := u.Hostname(); host != "" {
		cfg.Host = host
	}
	if port := u.Port(); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return base, fmt.Errorf("invalid port in %s: %w", location, err)
		}
		cfg.Port = p
	}
	if u.User != nil {
		cfg.Username = u.User.Username()
		if pw, ok := u.User.Password(); ok {
			cfg.Password = pw
		}
	}
	if folder := strings.Trim(u.Path, "/"); folder != "" {
		cfg.Folder = folder
	}
	if cfg.Host == "" {
		return base, fmt.Errorf("%w: %s: missing IMAP host", ErrUnsupportedSource, location)
	}
	return cfg, nil
}
