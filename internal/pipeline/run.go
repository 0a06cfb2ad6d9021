package pipeline

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunStatus represents the state of a generation run.
type RunStatus string

const (
	StatusPending     RunStatus = "pending"
	StatusExtracting  RunStatus = "extracting"
	StatusComposing   RunStatus = "composing"
	StatusListing     RunStatus = "listing"
	StatusReconciling RunStatus = "reconciling"
	StatusSplicing    RunStatus = "splicing"
	StatusCompleted   RunStatus = "completed"
	StatusFailed      RunStatus = "failed"
)

// Run tracks one invocation of the generator.
type Run struct {
	ID     string    `json:"run_id"`
	Status RunStatus `json:"status"`
	Phase  string    `json:"phase"`

	Progress Progress `json:"progress"`

	StartedAt time.Time `json:"started_at"`
	UpdatedAt time.Time `json:"updated_at"`

	errors []string
}

// Progress counts what a run produced.
type Progress struct {
	RecordsExtracted int      `json:"records_extracted"`
	RecordsLoaded    int      `json:"records_loaded"`
	PagesRendered    int      `json:"pages_rendered"`
	LinksReconciled  int      `json:"links_reconciled"`
	LinksUnmatched   int      `json:"links_unmatched"`
	FilesWritten     int      `json:"files_written"`
	FilesUnchanged   int      `json:"files_unchanged"`
	Errors           []string `json:"errors"`
}

func NewRun() *Run {
	now := time.Now()
	return &Run{
		ID:        uuid.NewString(),
		Status:    StatusPending,
		Phase:     "pending",
		StartedAt: now,
		UpdatedAt: now,
	}
}

// SetStatus moves the run to a new phase.
func (r *Run) SetStatus(status RunStatus, phase string) {
	r.Status = status
	r.Phase = phase
	r.UpdatedAt = time.Now()
}

// Fail records err and marks the run failed.
func (r *Run) Fail(err error) {
	r.AddError(err.Error())
	r.SetStatus(StatusFailed, "failed")
}

// AddError records an error.
func (r *Run) AddError(msg string) {
	r.errors = append(r.errors, msg)
	r.Progress.Errors = r.errors
	r.UpdatedAt = time.Now()
}

// AddPages records rendered page counts.
func (r *Run) AddPages(n int) {
	r.Progress.PagesRendered += n
	r.UpdatedAt = time.Now()
}

// AddWrites records writer outcomes.
func (r *Run) AddWrites(written, unchanged int) {
	r.Progress.FilesWritten += written
	r.Progress.FilesUnchanged += unchanged
	r.UpdatedAt = time.Now()
}

// RunSnapshot is a read-only copy of run state.
type RunSnapshot struct {
	ID       string        `json:"run_id"`
	Status   RunStatus     `json:"status"`
	Phase    string        `json:"phase"`
	Progress Progress      `json:"progress"`
	Elapsed  time.Duration `json:"elapsed"`
}

// Snapshot returns a copy of the run state.
func (r *Run) Snapshot() RunSnapshot {
	errs := make([]string, len(r.errors))
	copy(errs, r.errors)
	p := r.Progress
	p.Errors = errs
	return RunSnapshot{
		ID:       r.ID,
		Status:   r.Status,
		Phase:    r.Phase,
		Progress: p,
		Elapsed:  r.UpdatedAt.Sub(r.StartedAt),
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
