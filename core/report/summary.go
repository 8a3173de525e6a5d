package report

import (
	"fmt"
	"strconv"
	"strings"

	"mailrecon/core/reconcile"

	"github.com/charmbracelet/lipgloss"
)

// MaxWarnings is the number of warnings listed before the rest is collapsed.
const MaxWarnings = 10

// Row is one labelled count or location.
type Row struct {
	Label string
	Value string
}

// Summary is the human-readable account of one operation.
type Summary struct {
	Title    string
	Success  bool
	Rows     []Row
	Outputs  []Row
	Errors   []string
	Warnings []string
}

// Summarize builds the summary of a reconcile result, by value or pointer.
func Summarize(source string, result any) (*Summary, error) {
	s := &Summary{}
	if source != "" {
		s.Rows = append(s.Rows, Row{"Source", source})
	}

	var outcome reconcile.Outcome
	switch r := deref(result).(type) {
	case reconcile.DedupeResult:
		s.Title = "Mailbox deduplication"
		outcome = r.Outcome
		s.Rows = append(s.Rows,
			count("Total emails", r.Total),
			count("Unique", len(r.Unique)),
			count("Duplicates", len(r.Duplicates)),
		)
		s.Rows = append(s.Rows, certaintyRows(r.Matches)...)
		if r.Index.Total > 0 {
			s.Rows = append(s.Rows,
				count("Message-ID keys", r.Index.MessageIDs),
				count("Content hashes", r.Index.ContentHashes),
				count("Sender/subject buckets", r.Index.SenderSubjectBuckets),
			)
		}
	case reconcile.CompareResult:
		s.Title = "Mailbox comparison"
		outcome = r.Outcome
		s.Rows = append(s.Rows,
			count("Mailbox A", r.TotalA),
			count("Mailbox B", r.TotalB),
			count("Common (in both)", len(r.CommonFromA)),
			count("Unique to A", len(r.UniqueToA)),
			count("Unique to B", len(r.UniqueToB)),
		)
	case reconcile.MergeResult:
		s.Title = "Mailbox merge"
		outcome = r.Outcome
		s.Rows = append(s.Rows,
			count("Collections", r.Collections),
			count("Total input emails", r.Total),
			count("Duplicates removed", r.DuplicatesRemoved),
			count("Emails kept", len(r.Unique)),
		)
	case reconcile.FilterResult:
		s.Title = "Mailbox filter"
		outcome = r.Outcome
		s.Rows = append(s.Rows,
			count("Total emails", r.Total),
			count("Matched", len(r.Matched)),
			count("Not matched", len(r.NonMatched)),
		)
	default:
		return nil, fmt.Errorf("unsupported result type %T", result)
	}

	s.Success = outcome.Success
	s.Errors = outcome.Errors
	s.Warnings = outcome.Warnings
	return s, nil
}

// AddOutput records where a partition was written.
func (s *Summary) AddOutput(label, location string) {
	s.Outputs = append(s.Outputs, Row{label, location})
}

// Render draws the summary as a bordered panel.
func (s *Summary) Render() string {
	status := okStyle.Render("OK")
	if !s.Success {
		status = failStyle.Render("FAILED")
	}

	sections := []string{titleStyle.Render(strings.ToUpper(s.Title)) + "  " + status, ""}
	for _, row := range s.Rows {
		sections = append(sections, labelStyle.Render(row.Label)+valueStyle.Render(row.Value))
	}

	if len(s.Outputs) > 0 {
		sections = append(sections, "")
		for _, row := range s.Outputs {
			sections = append(sections, labelStyle.Render(row.Label+" output")+row.Value)
		}
	}

	if len(s.Errors) > 0 {
		sections = append(sections, "", failStyle.Render("ERRORS:"))
		for _, e := range s.Errors {
			sections = append(sections, "  - "+e)
		}
	}

	if len(s.Warnings) > 0 {
		sections = append(sections, "", warningStyle.Render(fmt.Sprintf("WARNINGS (%d):", len(s.Warnings))))
		for _, w := range s.Warnings[:min(len(s.Warnings), MaxWarnings)] {
			sections = append(sections, "  - "+w)
		}
		if len(s.Warnings) > MaxWarnings {
			sections = append(sections, fmt.Sprintf("  ... and %d more", len(s.Warnings)-MaxWarnings))
		}
	}

	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func count(label string, n int) Row {
	return Row{label, strconv.Itoa(n)}
}

// certaintyRows breaks matches down by tier, strongest first.
func certaintyRows(matches []reconcile.Match) []Row {
	if len(matches) == 0 {
		return nil
	}
	counts := make(map[reconcile.Certainty]int)
	for _, m := range matches {
		counts[m.Certainty]++
	}
	var rows []Row
	for _, c := range []reconcile.Certainty{reconcile.Exact, reconcile.High, reconcile.Medium, reconcile.Low} {
		if n := counts[c]; n > 0 {
			rows = append(rows, count("  "+c.String(), n))
		}
	}
	return rows
}
