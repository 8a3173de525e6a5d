package reconcile

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/emersion/go-message/mail"
)

var angleAddr = regexp.MustCompile(`<([^>]+)>`)

// ExtractAddress returns the lower-cased bare address of s, which may be a
// bare address or a "Name <addr>" form. Empty input yields "" and no error.
func ExtractAddress(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if addr, err := mail.ParseAddress(s); err == nil {
		return strings.ToLower(addr.Address), nil
	}

	bare := s
	if m := angleAddr.FindStringSubmatch(s); m != nil {
		bare = m[1]
	}
	bare = strings.ToLower(strings.TrimSpace(bare))

	at := strings.Index(bare, "@")
	if at <= 0 || at == len(bare)-1 || strings.Count(bare, "@") != 1 || strings.ContainsAny(bare, " \t\r\n") {
		return "", fmt.Errorf("malformed address %q", s)
	}
	return bare, nil
}

// Domain returns the part of a bare address after "@", or "".
func Domain(addr string) string {
	if i := strings.LastIndex(addr, "@"); i >= 0 {
		return addr[i+1:]
	}
	return ""
}
