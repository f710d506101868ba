package services

import (
	"context"
	"strings"

	appapi "videomind/internal/app/api"
	"videomind/internal/app/errors"
	"videomind/internal/app/export"
	"videomind/internal/app/model"
	"videomind/internal/app/repository"

	"videomind/internal/api/v1/dto"
)

// Queue accepts job ids for background processing.
type Queue interface {
	Submit(jobID string) error
}

// AnalysisService is the request-facing surface over the job store and the
// worker queue.
type AnalysisService interface {
	// Submit persists a pending job and hands it to the queue.
	Submit(url string, options *model.Options) (*dto.AnalyzeResponse, error)

	// GetStatus returns the live progress of a job.
	GetStatus(jobID string) (*dto.StatusResponse, error)

	// GetResult returns the artifacts of a completed job, a progress notice
	// for jobs still in flight, or the failure message for failed jobs.
	GetResult(jobID string) (*dto.ResultResponse, error)

	// Ask answers a question about a completed job.
	Ask(ctx context.Context, jobID string, question string) (*dto.AskResponse, error)

	// Export writes up to limit completed jobs to an xlsx file at path.
	Export(path string, limit int) (*dto.ExportResponse, error)
}

type analysisService struct {
	dao      repository.JobDAO
	queue    Queue
	answerer appapi.Answerer
}

// NewAnalysisService wires the store, the queue and the answering capability.
func NewAnalysisService(dao repository.JobDAO, queue Queue, answerer appapi.Answerer) AnalysisService {
	return &analysisService{
		dao:      dao,
		queue:    queue,
		answerer: answerer,
	}
}

func (s *analysisService) Submit(url string, options *model.Options) (*dto.AnalyzeResponse, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.ErrMissingURL
	}

	opts := model.DefaultOptions()
	if options != nil {
		opts = *options
	}

	jobID, err := s.dao.CreateJob(url, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create job")
	}

	if err := s.queue.Submit(jobID); err != nil {
		// The row stays pending; surface the backpressure to the caller.
		return nil, err
	}

	return &dto.AnalyzeResponse{
		JobID:   jobID,
		Status:  string(model.JobStatusPending),
		Message: "Video analysis started. Poll /api/v1/status/{job_id} for progress.",
	}, nil
}

func (s *analysisService) GetStatus(jobID string) (*dto.StatusResponse, error) {
	job, err := s.dao.GetJob(jobID)
	if err != nil {
		return nil, err
	}

	return &dto.StatusResponse{
		JobID:       job.ID,
		Status:      string(job.Status),
		Progress:    job.Progress,
		CurrentStep: job.Step,
		Error:       job.ErrorMessage,
	}, nil
}

func (s *analysisService) GetResult(jobID string) (*dto.ResultResponse, error) {
	job, err := s.dao.GetJob(jobID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ResultResponse{
		JobID:  job.ID,
		Status: string(job.Status),
	}

	switch job.Status {
	case model.JobStatusFailed:
		resp.Error = job.ErrorMessage
		return resp, nil

	case model.JobStatusCompleted:
		resp.Video = &dto.VideoResult{
			Title:    job.VideoTitle,
			Duration: job.VideoDuration,
			Source:   job.VideoSource,
		}
		resp.Transcript = &dto.TranscriptResult{
			FullText: job.TranscriptText,
			Segments: job.TranscriptSegments,
		}
		resp.Summary = &dto.SummaryResult{
			Short:    job.SummaryShort,
			Detailed: job.SummaryDetailed,
		}
		resp.Chapters = job.Chapters
		resp.SubtitlesSRT = job.SubtitlesSRT
		resp.VisualAnalysis = job.VisualAnalysis
		return resp, nil

	default:
		resp.Progress = job.Progress
		resp.CurrentStep = job.Step
		resp.Message = "Analysis still in progress. Poll /api/v1/status/{job_id} for progress."
		return resp, nil
	}
}

func (s *analysisService) Ask(ctx context.Context, jobID string, question string) (*dto.AskResponse, error) {
	job, err := s.dao.GetJob(jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != model.JobStatusCompleted {
		return nil, errors.ErrJobNotCompleted
	}

	answer, err := s.answerer.Answer(ctx, question, job.TranscriptText, job.VisualAnalysis, job.Chapters)
	if err != nil {
		return nil, errors.Wrap(err, "failed to answer question")
	}

	return &dto.AskResponse{
		JobID:              job.ID,
		Question:           question,
		Answer:             answer.Answer,
		RelevantTimestamps: answer.RelevantTimestamps,
		RelevantFrames:     answer.RelevantFrames,
	}, nil
}

func (s *analysisService) Export(path string, limit int) (*dto.ExportResponse, error) {
	jobs, err := s.dao.ListCompleted(limit)
	if err != nil {
		return nil, err
	}

	if err := export.ToExcel(jobs, path); err != nil {
		return nil, errors.Wrap(err, "failed to write export file")
	}

	return &dto.ExportResponse{Path: path, Jobs: len(jobs)}, nil
}
