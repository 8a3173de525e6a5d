package reconcile

import (
	"regexp"
	"strings"
)

// replyPrefix matches one leading reply/forward marker, including the
// bracket-numbered forms some clients emit ("re[2]:").
var replyPrefix = regexp.MustCompile(`^(?:re|fw|fwd|aw|antw)(?:\s*\[\d+\])?\s*:`)

// NormalizeSubject lower-cases and trims s, then strips reply and forward
// prefixes until none remain. The result is stable under repeated calls.
func NormalizeSubject(s string) string {
	out := strings.TrimSpace(strings.ToLower(s))
	for {
		loc := replyPrefix.FindStringIndex(out)
		if loc == nil {
			return out
		}
		out = strings.TrimSpace(out[loc[1]:])
	}
}
