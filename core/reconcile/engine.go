package reconcile

import (
	"fmt"
	"time"
)

const (
	// DefaultMediumWindow is the MEDIUM tier window for deduplication.
	DefaultMediumWindow = 5 * time.Minute
	// LowWindow is the fixed LOW tier window.
	LowWindow = time.Minute
	// DefaultCompareTolerance is the HIGH tier tolerance across mailboxes.
	DefaultCompareTolerance = 15 * time.Second

	reasonIDLimit = 50
)

// Strategy configures the match engine. Tiers are evaluated from EXACT down
// to LOW and the first hit wins; tiers below MinCertainty are skipped.
// A MEDIUM or LOW tier with a zero window is disabled.
type Strategy struct {
	UseMessageID bool
	UseContent   bool
	// Tolerance bounds the HIGH tier time difference. Zero means both
	// timestamps must fall in the same minute.
	Tolerance    time.Duration
	MediumWindow time.Duration
	LowWindow    time.Duration
	MinCertainty Certainty
}

// StandardStrategy is the three-tier policy used for cross-mailbox work:
// EXACT by Message-ID, EXACT by content, HIGH by sender, subject and time.
func StandardStrategy(useMessageID, useContent bool, tolerance time.Duration) Strategy {
	return Strategy{
		UseMessageID: useMessageID,
		UseContent:   useContent,
		Tolerance:    tolerance,
		MinCertainty: High,
	}
}

// Find returns the best match for q among the fingerprints in idx, or nil.
// A fingerprint never matches itself.
func (s Strategy) Find(idx *Index, q Fingerprint) *Match {
	if s.admits(Exact) {
		if m := s.findExact(idx, q); m != nil {
			return m
		}
	}

	bucket := idx.buckets[q.SenderSubjectKey()]

	if s.admits(High) && q.HasTimestamp() {
		for _, c := range bucket {
			if c.ID == q.ID || !c.HasTimestamp() {
				continue
			}
			if !s.withinTolerance(q.Timestamp, c.Timestamp) {
				continue
			}
			if s.UseContent && c.ContentHash != q.ContentHash {
				continue
			}
			return newMatch(q, c, High, s.highReason())
		}
	}

	if s.admits(Medium) && s.MediumWindow > 0 && q.HasTimestamp() {
		for _, c := range bucket {
			if c.ID == q.ID || !c.HasTimestamp() {
				continue
			}
			if absDiff(q.Timestamp, c.Timestamp) <= s.MediumWindow {
				return newMatch(q, c, Medium, fmt.Sprintf("same sender and subject within %s", s.MediumWindow))
			}
		}
	}

	// LOW scans every stored fingerprint; it is linear per lookup.
	if s.admits(Low) && s.LowWindow > 0 && q.HasTimestamp() {
		for _, c := range idx.order {
			if c.ID == q.ID || !c.HasTimestamp() || c.NormalizedSubject != q.NormalizedSubject {
				continue
			}
			if absDiff(q.Timestamp, c.Timestamp) <= s.LowWindow {
				return newMatch(q, c, Low, fmt.Sprintf("same subject within %s", s.LowWindow))
			}
		}
	}

	return nil
}

func (s Strategy) findExact(idx *Index, q Fingerprint) *Match {
	if s.UseMessageID {
		if key := q.MessageIDKey(); key != "" {
			if c, ok := idx.byMessageID[key]; ok && c.ID != q.ID {
				return newMatch(q, c, Exact, "same Message-ID: "+shorten(q.MessageID, reasonIDLimit))
			}
		}
	}
	if s.UseContent {
		if c, ok := idx.byContent[q.ContentHash]; ok && c.ID != q.ID {
			return newMatch(q, c, Exact, "identical content hash")
		}
	}
	return nil
}

func (s Strategy) admits(c Certainty) bool {
	return c >= s.MinCertainty
}

func (s Strategy) withinTolerance(a, b time.Time) bool {
	if s.Tolerance <= 0 {
		return a.Truncate(time.Minute).Equal(b.Truncate(time.Minute))
	}
	return absDiff(a, b) <= s.Tolerance
}

func (s Strategy) highReason() string {
	window := "the same minute"
	if s.Tolerance > 0 {
		window = s.Tolerance.String()
	}
	if s.UseContent {
		return "same sender, subject and content within " + window
	}
	return "same sender and subject within " + window
}

func newMatch(q Fingerprint, c *Fingerprint, level Certainty, reason string) *Match {
	return &Match{
		Left:      MatchRef{ID: q.ID, SourceFile: q.SourceFile},
		Right:     MatchRef{ID: c.ID, SourceFile: c.SourceFile},
		Certainty: level,
		Reason:    reason,
	}
}

func absDiff(a, b time.Time) time.Duration {
	d := a.Sub(b)
	if d < 0 {
		return -d
	}
	return d
}

func shorten(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return truncateRunes(s, n) + "..."
}
