package reconcile

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Certainty is the confidence level of a match. Levels are ordered so that a
// minimum certainty acts as a threshold: Low < Medium < High < Exact.
type Certainty int

const (
	// Low: same normalized subject, any sender, within one minute.
	Low Certainty = iota + 1
	// Medium: same sender and subject within a configurable window.
	Medium
	// High: same sender and subject, timestamps within tolerance.
	High
	// Exact: same Message-ID or identical content hash.
	Exact
)

var certaintyNames = map[Certainty]string{
	Low:    "low",
	Medium: "medium",
	High:   "high",
	Exact:  "exact",
}

// String returns the lowercase name of the level.
func (c Certainty) String() string {
	if name, ok := certaintyNames[c]; ok {
		return name
	}
	return fmt.Sprintf("certainty(%d)", int(c))
}

// ParseCertainty parses a level name case-insensitively.
func ParseCertainty(s string) (Certainty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return Low, nil
	case "medium":
		return Medium, nil
	case "high":
		return High, nil
	case "exact":
		return Exact, nil
	}
	return 0, fmt.Errorf("unknown certainty %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Certainty) MarshalText() ([]byte, error) {
	if _, ok := certaintyNames[c]; !ok {
		return nil, fmt.Errorf("invalid certainty %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Certainty) UnmarshalText(text []byte) error {
	parsed, err := ParseCertainty(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

var (
	// ErrDuplicateID is returned when two items of one collection share an ID.
	ErrDuplicateID = errors.New("duplicate item id")
	// ErrNoCriteria is returned when a filter has no address criteria at all.
	ErrNoCriteria = errors.New("no filter criteria specified")
	// ErrNoRecords is reported when an operation receives no records.
	ErrNoRecords = errors.New("no emails found")
)

// Record is the normalized view of one email as produced by the extraction
// collaborators. The engine never parses raw messages itself.
type Record struct {
	// MessageID is the Message-ID header value, possibly empty.
	MessageID string `json:"message_id"`
	// Sender is the display form of the From header.
	Sender string `json:"sender"`
	// SenderEmail is the bare sender address.
	SenderEmail string `json:"sender_email"`
	// Subject is the raw subject line.
	Subject string `json:"subject"`
	// To, Cc and Bcc hold recipient addresses in any common form.
	To  []string `json:"to,omitempty"`
	Cc  []string `json:"cc,omitempty"`
	Bcc []string `json:"bcc,omitempty"`
	// Timestamp is the Date header. The zero value means unknown.
	Timestamp time.Time `json:"timestamp"`
	// BodyText is the plain-text body.
	BodyText string `json:"body_text,omitempty"`
	// BodyHTML is the HTML body, used when no plain-text body exists.
	BodyHTML string `json:"body_html,omitempty"`
	// Size is the raw message size in bytes, when known.
	Size int64 `json:"size,omitempty"`
}

// Item is one entry of an input collection: a caller-supplied opaque ID plus
// the extracted record, or the extraction error that prevented it.
type Item struct {
	ID         string
	Record     *Record
	SourceFile string
	FolderPath string
	// Err carries an upstream parse failure. Such items are kept but never indexed.
	Err error
}

// usable reports whether the item carries a record the engine can fingerprint.
func (it Item) usable() error {
	if it.Err != nil {
		return it.Err
	}
	if it.Record == nil {
		return errors.New("no record extracted")
	}
	return nil
}

// Collection is a named list of items, used as Merger input.
type Collection struct {
	Name  string
	Items []Item
}

// MatchRef identifies one side of a match.
type MatchRef struct {
	ID         string `json:"id"`
	SourceFile string `json:"source_file,omitempty"`
	Collection string `json:"collection,omitempty"`
}

// Match is the result of a successful index lookup. Left is the record that
// was looked up, Right the previously indexed record it matched.
type Match struct {
	Left      MatchRef  `json:"left"`
	Right     MatchRef  `json:"right"`
	Certainty Certainty `json:"certainty"`
	Reason    string    `json:"reason"`
}

// ItemRef names an item inside a merge union.
type ItemRef struct {
	Collection string `json:"collection"`
	ID         string `json:"id"`
}

// Outcome is embedded in every operation result.
type Outcome struct {
	// Success is false when the run was rejected or cancelled.
	Success bool `json:"success"`
	// Total is the number of input records seen.
	Total int `json:"total"`
	// Errors holds result-level failures.
	Errors []string `json:"errors"`
	// Warnings holds per-record problems that did not abort the run.
	Warnings []string `json:"warnings"`
}

func newOutcome() Outcome {
	return Outcome{Success: true, Errors: []string{}, Warnings: []string{}}
}

func (o *Outcome) fail(err error) {
	o.Success = false
	o.Errors = append(o.Errors, err.Error())
}

func (o *Outcome) warn(id string, err error) {
	o.Warnings = append(o.Warnings, fmt.Sprintf("%s: %v", id, err))
}

// DedupeResult is the output of Deduplicator.Process.
type DedupeResult struct {
	Outcome
	// Unique holds the IDs of kept records, in input order.
	Unique []string `json:"unique"`
	// Duplicates holds the IDs of dropped records, in input order.
	Duplicates []string `json:"duplicates"`
	// Matches holds one entry per duplicate, pointing at the kept record.
	Matches []Match `json:"matches"`
	// Index describes the lookup tables built from the kept records.
	Index Stats `json:"index"`
}

// CompareResult is the output of Comparator.Compare.
type CompareResult struct {
	Outcome
	// TotalA and TotalB are the input sizes of each side.
	TotalA int `json:"total_a"`
	TotalB int `json:"total_b"`
	// CommonFromA holds A IDs that matched a B record.
	CommonFromA []string `json:"common_from_a"`
	// UniqueToA holds A IDs with no counterpart in B.
	UniqueToA []string `json:"unique_to_a"`
	// UniqueToB holds B IDs never consumed by an A match.
	UniqueToB []string `json:"unique_to_b"`
	// Matches pairs A (left) with B (right).
	Matches []Match `json:"matches"`
}

// MergeResult is the output of Merger.Merge.
type MergeResult struct {
	Outcome
	// Collections counts the inputs.
	Collections int `json:"collections"`
	// Unique is the merged union in concatenation order.
	Unique []ItemRef `json:"unique"`
	// DuplicatesRemoved counts records dropped by deduplication.
	DuplicatesRemoved int `json:"duplicates_removed"`
	// Matches lists each dropped record and what it matched.
	Matches []Match `json:"matches"`
}

// FilterResult is the output of Filter.Apply.
type FilterResult struct {
	Outcome
	// Matched holds IDs satisfying the criteria.
	Matched []string `json:"matched"`
	// NonMatched holds every other ID, including unusable records.
	NonMatched []string `json:"non_matched"`
}
