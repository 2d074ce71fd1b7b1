package journal

import "time"

// Run is one sync or gc pass.
type Run struct {
	ID         string     `gorm:"primaryKey;size:36" json:"id"`
	Kind       string     `gorm:"size:64;index" json:"kind"`
	Status     string     `gorm:"size:16" json:"status"`
	Total      int        `json:"total"`
	Unchanged  int        `json:"unchanged"`
	Created    int        `json:"created"`
	Updated    int        `json:"updated"`
	Recreated  int        `json:"recreated"`
	Deleted    int        `json:"deleted"`
	Skipped    int        `json:"skipped"`
	Failed     int        `json:"failed"`
	StartedAt  time.Time  `gorm:"index" json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// TableName overrides the default table name.
func (Run) TableName() string {
	return "sync_runs"
}

// Failure is one failed item of a run.
type Failure struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RunID     string    `gorm:"size:36;index" json:"run_id"`
	Kind      string    `gorm:"size:64" json:"kind"`
	Key       string    `gorm:"size:512" json:"key"`
	Error     string    `gorm:"type:text" json:"error"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the default table name.
func (Failure) TableName() string {
	return "sync_failures"
}

const (
	StatusRunning  = "running"
	StatusFinished = "finished"
)
