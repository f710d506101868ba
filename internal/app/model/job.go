package model

import (
	"time"
)

// JobStatus represents the lifecycle state of an analysis job.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Terminal reports whether the status allows no further pipeline writes.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// Options is the per-job flag set controlling which artifacts are produced.
type Options struct {
	Transcript     bool `json:"transcript"`
	Summary        bool `json:"summary"`
	Chapters       bool `json:"chapters"`
	Subtitles      bool `json:"subtitles"`
	VisualAnalysis bool `json:"visual_analysis"`
}

// DefaultOptions returns the option set applied when a submission carries none.
func DefaultOptions() Options {
	return Options{
		Transcript: true,
		Summary:    true,
		Chapters:   true,
		Subtitles:  true,
	}
}

// Segment is one time-aligned piece of the transcript.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Chapter is one logical section of the video, estimated by the summarizer.
type Chapter struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Title string `json:"title"`
}

// VisualObservation is the description of one retained video frame.
type VisualObservation struct {
	Timestamp   float64 `json:"timestamp"`
	FramePath   string  `json:"frame_path"`
	Description string  `json:"description"`
}

// VideoInfo holds the metadata recovered during acquisition.
type VideoInfo struct {
	Title    string
	Duration int
	Source   string
	FilePath string
}

// Transcript is the output of the transcription capability.
type Transcript struct {
	FullText string
	Segments []Segment
}

// Summary is the output of the summarization capability.
type Summary struct {
	Short    string
	Detailed string
	Chapters []Chapter
}

// Job is the single persisted unit of work. It is created pending by the
// request intake path and mutated exclusively by the pipeline afterwards.
type Job struct {
	ID       string
	URL      string
	Options  Options
	Status   JobStatus
	Progress int
	Step     string

	VideoTitle    string
	VideoDuration string
	VideoSource   string

	TranscriptText     string
	TranscriptSegments []Segment

	SummaryShort    string
	SummaryDetailed string
	Chapters        []Chapter
	SubtitlesSRT    string
	VisualAnalysis  []VisualObservation

	ErrorMessage string

	CreatedAt   time.Time
	CompletedAt *time.Time
}
