package mailbox

import (
	"context"
	"fmt"
	"strconv"

	"mailrecon/core/credential"
	"mailrecon/core/reconcile"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
)

// IMAPConfig holds the "imap" configuration section.
type IMAPConfig struct {
	// Host is the IMAP server host name.
	Host string `mapstructure:"host" default:""`
	// Port is the IMAP server port.
	Port int `mapstructure:"port" default:"993"`
	// Username is the login name.
	Username string `mapstructure:"username" default:""`
	// Password is the login password. When empty it is read from the keyring.
	Password string `mapstructure:"password" default:""`
	// TLS selects implicit TLS; otherwise STARTTLS is used.
	TLS bool `mapstructure:"tls" default:"true"`
	// Folder is the mailbox to read.
	Folder string `mapstructure:"folder" default:"INBOX"`
	// BatchSize is the number of messages fetched per round trip.
	BatchSize int `mapstructure:"batch_size" default:"200"`
}

// Addr returns host:port.
func (c IMAPConfig) Addr() string {
	port := c.Port
	if port == 0 {
		port = 993
	}
	return c.Host + ":" + strconv.Itoa(port)
}

// IMAPSource reads one folder of an IMAP account without altering flags.
type IMAPSource struct {
	cfg     IMAPConfig
	secrets credential.Getter
}

// NewIMAPSource returns an IMAP source. secrets may be nil when the
// configuration carries the password.
func NewIMAPSource(cfg IMAPConfig, secrets credential.Getter) *IMAPSource {
	if cfg.Folder == "" {
		cfg.Folder = "INBOX"
	}
	return &IMAPSource{cfg: cfg, secrets: secrets}
}

// Name returns the imap:// location.
func (s *IMAPSource) Name() string {
	return "imap://" + s.cfg.Username + "@" + s.cfg.Addr() + "/" + s.cfg.Folder
}

func (s *IMAPSource) password() (string, error) {
	if s.cfg.Password != "" {
		return s.cfg.Password, nil
	}
	if s.secrets == nil {
		return "", fmt.Errorf("no password configured for %s", s.cfg.Username)
	}
	return s.secrets.Get(credential.IMAPKey(s.cfg.Username, s.cfg.Host))
}

func (s *IMAPSource) connect() (*imapclient.Client, error) {
	password, err := s.password()
	if err != nil {
		return nil, err
	}

	addr := s.cfg.Addr()
	var client *imapclient.Client
	if s.cfg.TLS {
		client, err = imapclient.DialTLS(addr, nil)
	} else {
		client, err = imapclient.DialStartTLS(addr, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("connecting to IMAP %s: %w", addr, err)
	}

	if err := client.Login(s.cfg.Username, password).Wait(); err != nil {
		_ = client.Logout().Wait()
		return nil, fmt.Errorf("authentication failed for %s: %w", s.cfg.Username, err)
	}
	return client, nil
}

// Load fetches every message of the folder, oldest UID first. IDs are
// "<folder>/<uid>".
func (s *IMAPSource) Load(ctx context.Context) ([]reconcile.Item, error) {
	client, err := s.connect()
	if err != nil {
		return nil, err
	}
	defer func() { _ = client.Logout().Wait() }()

	if _, err := client.Select(s.cfg.Folder, &imap.SelectOptions{ReadOnly: true}).Wait(); err != nil {
		return nil, fmt.Errorf("selecting %s: %w", s.cfg.Folder, err)
	}

	searchData, err := client.UIDSearch(&imap.SearchCriteria{}, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", s.cfg.Folder, err)
	}
	uids := searchData.AllUIDs()

	batch := s.cfg.BatchSize
	if batch <= 0 {
		batch = 200
	}

	items := make([]reconcile.Item, 0, len(uids))
	for start := 0; start < len(uids); start += batch {
		if err := ctx.Err(); err != nil {
			return items, err
		}
		end := min(start+batch, len(uids))
		fetched, err := s.fetch(client, uids[start:end])
		items = append(items, fetched...)
		if err != nil {
			return items, err
		}
	}
	return items, nil
}

func (s *IMAPSource) fetch(client *imapclient.Client, uids []imap.UID) ([]reconcile.Item, error) {
	section := &imap.FetchItemBodySection{Peek: true}
	fetchCmd := client.Fetch(imap.UIDSetNum(uids...), &imap.FetchOptions{
		UID:         true,
		BodySection: []*imap.FetchItemBodySection{section},
	})
	defer fetchCmd.Close()

	var items []reconcile.Item
	for {
		msg := fetchCmd.Next()
		if msg == nil {
			break
		}
		buf, err := msg.Collect()
		if err != nil {
			items = append(items, reconcile.Item{
				ID:         fmt.Sprintf("%s/seq-%d", s.cfg.Folder, msg.SeqNum),
				FolderPath: s.cfg.Folder,
				Err:        fmt.Errorf("collecting message: %w", err),
			})
			continue
		}
		id := fmt.Sprintf("%s/%d", s.cfg.Folder, buf.UID)
		rec, perr := ParseBytes(buf.FindBodySection(section))
		items = append(items, reconcile.Item{ID: id, Record: rec, SourceFile: id, FolderPath: s.cfg.Folder, Err: perr})
	}

	if err := fetchCmd.Close(); err != nil {
		return items, fmt.Errorf("fetching from %s: %w", s.cfg.Folder, err)
	}
	return items, nil
}
