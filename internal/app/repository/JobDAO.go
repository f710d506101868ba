package repository

import (
	"time"

	"videomind/internal/app/model"
)

// CompletionArtifacts is the artifact group written atomically with the
// completed status transition. Constructing this value is the only way to
// mark a job completed, so a completion without artifacts is an intentional
// empty value rather than an accidental omission.
type CompletionArtifacts struct {
	SummaryShort    string
	SummaryDetailed string
	Chapters        []model.Chapter
	SubtitlesSRT    string
	VisualAnalysis  []model.VisualObservation
}

// JobDAO is the persistence contract for analysis jobs. Each mutation applies
// one sparse field group; the pipeline is the single writer per job, so the
// store does not serialize writers itself. Concurrent updates to different
// jobs never block one another.
type JobDAO interface {
	// CreateJob inserts a pending job and returns its generated identifier.
	CreateJob(url string, options model.Options) (string, error)

	// GetJob returns errors.ErrJobNotFound for unknown identifiers.
	GetJob(jobID string) (*model.Job, error)

	// MarkProcessing records the pending -> processing transition together
	// with the first progress checkpoint.
	MarkProcessing(jobID string, progress int, step string) error

	// SetCheckpoint advances progress and the current-stage label.
	SetCheckpoint(jobID string, progress int, step string) error

	// SetVideoInfo writes the acquisition artifacts with their checkpoint.
	SetVideoInfo(jobID string, info model.VideoInfo, progress int, step string) error

	// SetTranscript writes the transcription artifacts with their checkpoint.
	SetTranscript(jobID string, transcript model.Transcript, progress int, step string) error

	// Complete writes the remaining artifacts atomically with
	// status=completed, progress=100, step="Done" and stamps completed_at.
	Complete(jobID string, artifacts CompletionArtifacts) error

	// Fail records a terminal failure with its message and stamps
	// completed_at. Artifacts written by earlier stages are left in place.
	Fail(jobID string, message string) error

	// FindStale returns jobs still processing that were created before the
	// given cutoff. Used by the health monitor.
	FindStale(createdBefore time.Time) ([]model.Job, error)

	// ListCompleted returns up to limit completed jobs, newest first.
	ListCompleted(limit int) ([]model.Job, error)

	Close() error
}
