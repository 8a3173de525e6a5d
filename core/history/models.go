package history

import (
	"encoding/json"
	"time"
)

// Run is one recorded reconciliation run.
type Run struct {
	ID        uint   `gorm:"column:id;primaryKey" json:"-"`
	RunID     string `gorm:"column:run_id;type:varchar(36);uniqueIndex" json:"run_id"`
	Operation string `gorm:"column:operation;type:varchar(16);index" json:"operation"`
	Source    string `gorm:"column:source;type:varchar(1024)" json:"source"`
	Success   bool   `gorm:"column:success" json:"success"`
	// Total is the number of input records.
	Total int `gorm:"column:total" json:"total"`
	// Kept counts unique, common or matched records depending on the operation.
	Kept int `gorm:"column:kept" json:"kept"`
	// Removed counts duplicates, unique-to-B or non-matched records.
	Removed    int       `gorm:"column:removed" json:"removed"`
	Warnings   int       `gorm:"column:warnings" json:"warnings"`
	Summary    string    `gorm:"column:summary;type:text" json:"-"`
	StartedAt  time.Time `gorm:"column:started_at;index" json:"started_at"`
	DurationMs int64     `gorm:"column:duration_ms" json:"duration_ms"`

	Matches []MatchRow `gorm:"foreignKey:RunID;references:RunID" json:"matches,omitempty"`
}

// TableName overrides the table name.
func (Run) TableName() string {
	return "reconcile_runs"
}

// Result returns the stored result document.
func (r Run) Result() json.RawMessage {
	if r.Summary == "" {
		return nil
	}
	return json.RawMessage(r.Summary)
}

// MatchRow is one match of a run.
type MatchRow struct {
	ID        uint   `gorm:"column:id;primaryKey" json:"-"`
	RunID     string `gorm:"column:run_id;type:varchar(36);index" json:"-"`
	LeftID    string `gorm:"column:left_id;type:varchar(1024)" json:"left_id"`
	RightID   string `gorm:"column:right_id;type:varchar(1024)" json:"right_id"`
	Certainty string `gorm:"column:certainty;type:varchar(8)" json:"certainty"`
	Reason    string `gorm:"column:reason;type:varchar(255)" json:"reason"`
}

// TableName overrides the table name.
func (MatchRow) TableName() string {
	return "reconcile_matches"
}
