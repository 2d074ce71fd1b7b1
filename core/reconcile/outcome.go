package reconcile

import "time"

// Outcome is what happened to one item during a pass.
type Outcome string

const (
	Unchanged Outcome = "unchanged"
	Created   Outcome = "created"
	Updated   Outcome = "updated"
	Recreated Outcome = "recreated"
	Deleted   Outcome = "deleted"
	Skipped   Outcome = "skipped"
	Failed    Outcome = "failed"
)

// Result is the report for one item.
type Result struct {
	Kind    string        `json:"kind"`
	Key     string        `json:"key"`
	Outcome Outcome       `json:"outcome"`
	Err     error         `json:"-"`
	Elapsed time.Duration `json:"elapsed"`
}

// Failure records a failed item in a Summary.
type Failure struct {
	Kind  string `json:"kind"`
	Key   string `json:"key"`
	Error string `json:"error"`
}

// Summary provides aggregate counts for a pass.
type Summary struct {
	Kind       string    `json:"kind"`
	Total      int       `json:"total"`
	Unchanged  int       `json:"unchanged"`
	Created    int       `json:"created"`
	Updated    int       `json:"updated"`
	Recreated  int       `json:"recreated"`
	Deleted    int       `json:"deleted"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
	Failures   []Failure `json:"failures,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Record counts one result.
func (s *Summary) Record(r Result) {
	s.Total++
	switch r.Outcome {
	case Unchanged:
		s.Unchanged++
	case Created:
		s.Created++
	case Updated:
		s.Updated++
	case Recreated:
		s.Recreated++
	case Deleted:
		s.Deleted++
	case Skipped:
		s.Skipped++
	case Failed:
		s.Failed++
		msg := ""
		if r.Err != nil {
			msg = r.Err.Error()
		}
		s.Failures = append(s.Failures, Failure{Kind: r.Kind, Key: r.Key, Error: msg})
	}
}

// Merge folds other into s, widening the time window.
func (s *Summary) Merge(other Summary) {
	s.Total += other.Total
	s.Unchanged += other.Unchanged
	s.Created += other.Created
	s.Updated += other.Updated
	s.Recreated += other.Recreated
	s.Deleted += other.Deleted
	s.Skipped += other.Skipped
	s.Failed += other.Failed
	s.Failures = append(s.Failures, other.Failures...)
	if s.StartedAt.IsZero() || (!other.StartedAt.IsZero() && other.StartedAt.Before(s.StartedAt)) {
		s.StartedAt = other.StartedAt
	}
	if other.FinishedAt.After(s.FinishedAt) {
		s.FinishedAt = other.FinishedAt
	}
}

// Changed counts items that caused a write.
func (s Summary) Changed() int {
	return s.Created + s.Updated + s.Recreated + s.Deleted
}
