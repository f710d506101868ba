package dto

import (
	"videomind/internal/app/model"
)

// AnalyzeRequest is the job submission body. Options may be omitted
// entirely, in which case the default artifact set is produced.
type AnalyzeRequest struct {
	URL     string         `json:"url" binding:"required"`
	Options *model.Options `json:"options"`
}

// AnalyzeResponse acknowledges a queued submission.
type AnalyzeResponse struct {
	JobID   string `json:"job_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// StatusResponse reports the live progress of a job.
type StatusResponse struct {
	JobID       string `json:"job_id"`
	Status      string `json:"status"`
	Progress    int    `json:"progress"`
	CurrentStep string `json:"current_step"`
	Error       string `json:"error,omitempty"`
}

// VideoResult is the acquisition metadata section of a completed result.
type VideoResult struct {
	Title    string `json:"title"`
	Duration string `json:"duration"`
	Source   string `json:"source"`
}

// TranscriptResult is the transcription section of a completed result.
type TranscriptResult struct {
	FullText string          `json:"full_text"`
	Segments []model.Segment `json:"segments"`
}

// SummaryResult is the summarization section of a completed result.
type SummaryResult struct {
	Short    string `json:"short"`
	Detailed string `json:"detailed"`
}

// ResultResponse is the full artifact payload for a completed job. For
// pending and processing jobs only the status fields and Message are set;
// for failed jobs only the status fields and Error.
type ResultResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`

	Progress    int    `json:"progress,omitempty"`
	CurrentStep string `json:"current_step,omitempty"`
	Message     string `json:"message,omitempty"`

	Error string `json:"error,omitempty"`

	Video          *VideoResult              `json:"video,omitempty"`
	Transcript     *TranscriptResult         `json:"transcript,omitempty"`
	Summary        *SummaryResult            `json:"summary,omitempty"`
	Chapters       []model.Chapter           `json:"chapters,omitempty"`
	SubtitlesSRT   string                    `json:"subtitles_srt,omitempty"`
	VisualAnalysis []model.VisualObservation `json:"visual_analysis,omitempty"`
}

// AskRequest is the question body for a completed job.
type AskRequest struct {
	JobID    string `json:"job_id" binding:"required"`
	Question string `json:"question" binding:"required"`
}

// AskResponse carries the answer plus the material it was grounded on.
type AskResponse struct {
	JobID              string   `json:"job_id"`
	Question           string   `json:"question"`
	Answer             string   `json:"answer"`
	RelevantTimestamps []string `json:"relevant_timestamps"`
	RelevantFrames     []string `json:"relevant_frames"`
}

// ExportResponse reports where the spreadsheet was written.
type ExportResponse struct {
	Path string `json:"path"`
	Jobs int    `json:"jobs"`
}
