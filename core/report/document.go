package report

import (
	"encoding/json"
	"fmt"
	"io"

	"mailrecon/core/reconcile"
)

// Partition names.
const (
	PartUnique     = "unique"
	PartDuplicates = "duplicates"
	PartCommon     = "common"
	PartUniqueToA  = "unique_to_a"
	PartUniqueToB  = "unique_to_b"
	PartMatched    = "matched"
	PartNonMatched = "non_matched"
)

// Selection chooses the optional partitions written for a result.
type Selection struct {
	// Duplicates adds the dropped records of a dedupe.
	Duplicates bool
	// Common, UniqueToA and UniqueToB choose the comparison partitions.
	Common    bool
	UniqueToA bool
	UniqueToB bool
	// NonMatched adds the records a filter rejected.
	NonMatched bool
}

// DefaultSelection writes every comparison partition and no discarded records.
func DefaultSelection() Selection {
	return Selection{Common: true, UniqueToA: true, UniqueToB: true}
}

// Document is the JSON form of one partitioned result.
type Document struct {
	Operation  string            `json:"operation"`
	Source     string            `json:"source,omitempty"`
	Outcome    reconcile.Outcome `json:"outcome"`
	Partitions map[string]any    `json:"partitions"`
	Matches    []reconcile.Match `json:"matches,omitempty"`
}

// NewDocument builds the partition document of a result.
func NewDocument(source string, result any, sel Selection) (*Document, error) {
	doc := &Document{Source: source, Partitions: make(map[string]any)}

	switch r := deref(result).(type) {
	case reconcile.DedupeResult:
		doc.Operation = "dedupe"
		doc.Outcome, doc.Matches = r.Outcome, r.Matches
		doc.Partitions[PartUnique] = r.Unique
		if sel.Duplicates {
			doc.Partitions[PartDuplicates] = r.Duplicates
		}
	case reconcile.CompareResult:
		doc.Operation = "compare"
		doc.Outcome, doc.Matches = r.Outcome, r.Matches
		if sel.Common {
			doc.Partitions[PartCommon] = r.CommonFromA
		}
		if sel.UniqueToA {
			doc.Partitions[PartUniqueToA] = r.UniqueToA
		}
		if sel.UniqueToB {
			doc.Partitions[PartUniqueToB] = r.UniqueToB
		}
	case reconcile.MergeResult:
		doc.Operation = "merge"
		doc.Outcome, doc.Matches = r.Outcome, r.Matches
		doc.Partitions[PartUnique] = r.Unique
	case reconcile.FilterResult:
		doc.Operation = "filter"
		doc.Outcome = r.Outcome
		doc.Partitions[PartMatched] = r.Matched
		if sel.NonMatched {
			doc.Partitions[PartNonMatched] = r.NonMatched
		}
	default:
		return nil, fmt.Errorf("unsupported result type %T", result)
	}
	return doc, nil
}

// Encode writes the document as indented JSON.
func (d *Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

func deref(v any) any {
	switch r := v.(type) {
	case *reconcile.DedupeResult:
		return *r
	case *reconcile.CompareResult:
		return *r
	case *reconcile.MergeResult:
		return *r
	case *reconcile.FilterResult:
		return *r
	}
	return v
}
