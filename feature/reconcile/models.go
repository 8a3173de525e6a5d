package reconcile

import (
	engine "mailrecon/core/reconcile"
)

// RecordInput is one inline record of a request.
type RecordInput struct {
	ID string `json:"id"`
	engine.Record
	SourceFile string `json:"source_file,omitempty"`
	FolderPath string `json:"folder_path,omitempty"`
}

// Input names a mailbox location or carries the records inline.
type Input struct {
	// Source is an s3://, imap:// or data directory relative location.
	Source string `json:"source,omitempty"`
	// Records are used when Source is empty.
	Records []RecordInput `json:"records,omitempty"`
}

// MatchOptions override the configured match settings for one request.
type MatchOptions struct {
	MinCertainty        *string `json:"min_certainty,omitempty"`
	UseMessageID        *bool   `json:"use_message_id,omitempty"`
	UseContent          *bool   `json:"use_content,omitempty"`
	ToleranceSeconds    *int    `json:"tolerance_seconds,omitempty"`
	MediumWindowMinutes *int    `json:"medium_window_minutes,omitempty"`
}

// DedupeRequest is the body of POST /reconcile/dedupe.
type DedupeRequest struct {
	Input
	MatchOptions
}

// CompareRequest is the body of POST /reconcile/compare.
type CompareRequest struct {
	A Input `json:"a"`
	B Input `json:"b"`
	MatchOptions
}

// NamedInput is one collection of a merge.
type NamedInput struct {
	Name string `json:"name"`
	Input
}

// MergeRequest is the body of POST /reconcile/merge.
type MergeRequest struct {
	Collections []NamedInput `json:"collections"`
	Deduplicate bool         `json:"deduplicate"`
	MatchOptions
}

// FilterRequest is the body of POST /reconcile/filter.
type FilterRequest struct {
	Input
	engine.FilterConfig
}

// apply returns s with the request overrides. tolerance points at the
// operation's tolerance field.
func (o MatchOptions) apply(s engine.Settings, tolerance func(*engine.Settings) *int) engine.Settings {
	if o.MinCertainty != nil {
		s.MinCertainty = *o.MinCertainty
	}
	if o.UseMessageID != nil {
		s.UseMessageID = *o.UseMessageID
	}
	if o.UseContent != nil {
		s.UseContent = *o.UseContent
	}
	if o.ToleranceSeconds != nil {
		*tolerance(&s) = *o.ToleranceSeconds
	}
	if o.MediumWindowMinutes != nil {
		s.MediumWindowMinutes = *o.MediumWindowMinutes
	}
	return s
}

func dedupeTolerance(s *engine.Settings) *int  { return &s.DedupeToleranceSeconds }
func compareTolerance(s *engine.Settings) *int { return &s.CompareToleranceSeconds }
func mergeTolerance(s *engine.Settings) *int   { return &s.MergeToleranceSeconds }
