package reconcile

import (
	"fmt"
	"time"
)

// Settings is the "match" configuration section. It carries the defaults
// every operation starts from; CLI flags and request fields override them.
type Settings struct {
	// MinCertainty is the lowest level reported as a duplicate (low, medium, high, exact).
	MinCertainty string `mapstructure:"min_certainty" default:"high"`
	// UseMessageID enables the EXACT Message-ID tier.
	UseMessageID bool `mapstructure:"use_message_id" default:"true"`
	// UseContent enables the EXACT content tier and the content check at HIGH.
	UseContent bool `mapstructure:"use_content" default:"true"`
	// DedupeToleranceSeconds is the HIGH tolerance inside one mailbox. Zero means same minute.
	DedupeToleranceSeconds int `mapstructure:"dedupe_tolerance_seconds" default:"0"`
	// CompareToleranceSeconds is the HIGH tolerance when comparing mailboxes.
	CompareToleranceSeconds int `mapstructure:"compare_tolerance_seconds" default:"15"`
	// MergeToleranceSeconds is the HIGH tolerance when merging mailboxes.
	MergeToleranceSeconds int `mapstructure:"merge_tolerance_seconds" default:"15"`
	// MediumWindowMinutes is the MEDIUM tier window.
	MediumWindowMinutes int `mapstructure:"medium_window_minutes" default:"5"`
	// Workers bounds fingerprint construction. Zero uses GOMAXPROCS.
	Workers int `mapstructure:"workers" default:"0"`
	// ProgressEvery is the progress callback period in records.
	ProgressEvery int `mapstructure:"progress_every" default:"100"`
}

// DefaultSettings mirrors the struct tag defaults.
func DefaultSettings() Settings {
	return Settings{
		MinCertainty:            "high",
		UseMessageID:            true,
		UseContent:              true,
		CompareToleranceSeconds: 15,
		MergeToleranceSeconds:   15,
		MediumWindowMinutes:     5,
		ProgressEvery:           100,
	}
}

// Options returns the shared pipeline options.
func (s Settings) Options(progress ProgressFunc) Options {
	return Options{Workers: s.Workers, Progress: progress, ProgressEvery: s.ProgressEvery}
}

// Dedupe builds a DedupeConfig from the settings.
func (s Settings) Dedupe() (DedupeConfig, error) {
	level, err := ParseCertainty(s.MinCertainty)
	if err != nil {
		return DedupeConfig{}, err
	}
	if s.DedupeToleranceSeconds < 0 || s.MediumWindowMinutes < 0 {
		return DedupeConfig{}, fmt.Errorf("negative time window")
	}
	return DedupeConfig{
		MinCertainty: level,
		UseMessageID: s.UseMessageID,
		UseContent:   s.UseContent,
		Tolerance:    time.Duration(s.DedupeToleranceSeconds) * time.Second,
		MediumWindow: time.Duration(s.MediumWindowMinutes) * time.Minute,
	}, nil
}

// Compare builds a MatchConfig for mailbox comparison.
func (s Settings) Compare() MatchConfig {
	return MatchConfig{
		UseMessageID: s.UseMessageID,
		UseContent:   s.UseContent,
		Tolerance:    time.Duration(s.CompareToleranceSeconds) * time.Second,
	}
}

// Merge builds a MatchConfig for mailbox merging.
func (s Settings) Merge() MatchConfig {
	return MatchConfig{
		UseMessageID: s.UseMessageID,
		UseContent:   s.UseContent,
		Tolerance:    time.Duration(s.MergeToleranceSeconds) * time.Second,
	}
}

// DedupeConfig configures intra-mailbox deduplication.
type DedupeConfig struct {
	MinCertainty Certainty
	UseMessageID bool
	UseContent   bool
	Tolerance    time.Duration
	MediumWindow time.Duration
}

// DefaultDedupeConfig returns the deduplication defaults.
func DefaultDedupeConfig() DedupeConfig {
	return DedupeConfig{
		MinCertainty: High,
		UseMessageID: true,
		UseContent:   true,
		MediumWindow: DefaultMediumWindow,
	}
}

// Strategy returns the match strategy with all four tiers available.
func (c DedupeConfig) Strategy() Strategy {
	level := c.MinCertainty
	if level == 0 {
		level = High
	}
	return Strategy{
		UseMessageID: c.UseMessageID,
		UseContent:   c.UseContent,
		Tolerance:    c.Tolerance,
		MediumWindow: c.MediumWindow,
		LowWindow:    LowWindow,
		MinCertainty: level,
	}
}

// MatchConfig configures the three-tier policy used by Comparator and Merger.
type MatchConfig struct {
	UseMessageID bool
	UseContent   bool
	Tolerance    time.Duration
}

// DefaultMatchConfig returns the cross-mailbox defaults.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{UseMessageID: true, UseContent: true, Tolerance: DefaultCompareTolerance}
}

// Strategy returns the standard three-tier strategy.
func (c MatchConfig) Strategy() Strategy {
	return StandardStrategy(c.UseMessageID, c.UseContent, c.Tolerance)
}
