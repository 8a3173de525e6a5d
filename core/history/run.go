package history

import (
	"encoding/json"
	"fmt"
	"time"

	"mailrecon/core/reconcile"

	"github.com/google/uuid"
)

// Operation names.
const (
	OpDedupe  = "dedupe"
	OpCompare = "compare"
	OpMerge   = "merge"
	OpFilter  = "filter"
)

// NewRun builds a Run from an operation result. result must be one of the
// reconcile result types, by value or pointer.
func NewRun(source string, result any, started time.Time, elapsed time.Duration) (*Run, error) {
	run := &Run{
		RunID:      uuid.NewString(),
		Source:     source,
		StartedAt:  started.UTC(),
		DurationMs: elapsed.Milliseconds(),
	}

	var outcome reconcile.Outcome
	var matches []reconcile.Match
	switch r := deref(result).(type) {
	case reconcile.DedupeResult:
		run.Operation = OpDedupe
		outcome, matches = r.Outcome, r.Matches
		run.Kept, run.Removed = len(r.Unique), len(r.Duplicates)
	case reconcile.CompareResult:
		run.Operation = OpCompare
		outcome, matches = r.Outcome, r.Matches
		run.Kept, run.Removed = len(r.CommonFromA), len(r.UniqueToB)
	case reconcile.MergeResult:
		run.Operation = OpMerge
		outcome, matches = r.Outcome, r.Matches
		run.Kept, run.Removed = len(r.Unique), r.DuplicatesRemoved
	case reconcile.FilterResult:
		run.Operation = OpFilter
		outcome = r.Outcome
		run.Kept, run.Removed = len(r.Matched), len(r.NonMatched)
	default:
		return nil, fmt.Errorf("unsupported result type %T", result)
	}

	run.Success = outcome.Success
	run.Total = outcome.Total
	run.Warnings = len(outcome.Warnings)

	doc, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	run.Summary = string(doc)

	for _, m := range matches {
		run.Matches = append(run.Matches, MatchRow{
			RunID:     run.RunID,
			LeftID:    m.Left.ID,
			RightID:   m.Right.ID,
			Certainty: m.Certainty.String(),
			Reason:    m.Reason,
		})
	}
	return run, nil
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
