package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"videomind/internal/app/api"
	"videomind/internal/app/frames"
	"videomind/internal/app/media"
	"videomind/internal/app/model"
	"videomind/internal/app/repository"
	"videomind/internal/app/storage"
	"videomind/internal/app/subtitle"
)

// Stage names recorded when a stage fails; which stage failed is a value,
// not something parsed out of an error string.
const (
	StageDownload      = "download"
	StageAudio         = "audio"
	StageTranscribe    = "transcribe"
	StageSummarize     = "summarize"
	StageExtractFrames = "extract_frames"
	StageDedupeFrames  = "dedupe_frames"
	StageAnalyzeFrames = "analyze_frames"
	StagePersist       = "persist"
)

// Orchestrator drives one job through the pipeline stages, updating the job
// record after each stage. It is the single writer for a job's record while
// the job is in flight.
type Orchestrator struct {
	dao         repository.JobDAO
	downloader  media.Downloader
	transcriber api.Transcriber
	summarizer  api.Summarizer
	captioner   frames.Captioner
	frameStore  storage.FrameStore
	logger      *slog.Logger

	tempRoot        string
	framesRoot      string
	frameInterval   int
	dedupeThreshold int

	// ffmpeg-backed helpers, replaced in tests
	extractAudio  func(ctx context.Context, videoPath, outputDir string) (string, error)
	extractFrames func(ctx context.Context, videoPath, outputDir string, interval int) ([]frames.Frame, error)
	dedupeFrames  func(input []frames.Frame, threshold int) ([]frames.Frame, error)
}

// OrchestratorConfig bundles the orchestrator's collaborators and tunables.
type OrchestratorConfig struct {
	DAO         repository.JobDAO
	Downloader  media.Downloader
	Transcriber api.Transcriber
	Summarizer  api.Summarizer
	Captioner   frames.Captioner
	FrameStore  storage.FrameStore
	Logger      *slog.Logger

	TempRoot        string
	FramesRoot      string
	FrameInterval   int
	DedupeThreshold int
}

func NewOrchestrator(cfg OrchestratorConfig) *Orchestrator {
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = 5
	}
	if cfg.DedupeThreshold <= 0 {
		cfg.DedupeThreshold = 5
	}
	if cfg.FrameStore == nil {
		cfg.FrameStore = storage.NewLocalFrameStore()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Orchestrator{
		dao:             cfg.DAO,
		downloader:      cfg.Downloader,
		transcriber:     cfg.Transcriber,
		summarizer:      cfg.Summarizer,
		captioner:       cfg.Captioner,
		frameStore:      cfg.FrameStore,
		logger:          cfg.Logger,
		tempRoot:        cfg.TempRoot,
		framesRoot:      cfg.FramesRoot,
		frameInterval:   cfg.FrameInterval,
		dedupeThreshold: cfg.DedupeThreshold,
		extractAudio:    media.ExtractAudio,
		extractFrames:   frames.Extract,
		dedupeFrames:    frames.Deduplicate,
	}
}

// Process runs the full pipeline for jobID. Stage failures are converted into
// a terminal failed record; nothing propagates past this method. Artifacts
// written by completed stages are never rolled back. The returned error only
// signals the terminal outcome to the caller.
func (o *Orchestrator) Process(ctx context.Context, jobID string) error {
	job, err := o.dao.GetJob(jobID)
	if err != nil {
		o.logger.Error("job lookup failed", "job_id", jobID, "error", err)
		return err
	}

	jobsStarted.Inc()

	tempDir := filepath.Join(o.tempRoot, jobID)
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return o.fail(jobID, StageDownload, err)
	}
	// Scratch storage is removed regardless of outcome.
	defer func() {
		if err := os.RemoveAll(tempDir); err != nil {
			o.logger.Warn("scratch cleanup failed", "job_id", jobID, "dir", tempDir, "error", err)
		}
	}()

	// Stage 1: acquisition.
	if err := o.dao.MarkProcessing(jobID, 10, "Downloading video"); err != nil {
		return o.fail(jobID, StagePersist, err)
	}
	info, err := o.downloader.Fetch(ctx, job.URL, tempDir)
	if err != nil {
		return o.fail(jobID, StageDownload, err)
	}
	if err := o.dao.SetVideoInfo(jobID, *info, 20, "Extracting audio"); err != nil {
		return o.fail(jobID, StagePersist, err)
	}

	// Stage 2: audio extraction.
	audioPath, err := o.extractAudio(ctx, info.FilePath, tempDir)
	if err != nil {
		return o.fail(jobID, StageAudio, err)
	}
	if err := o.dao.SetCheckpoint(jobID, 30, "Transcribing audio"); err != nil {
		return o.fail(jobID, StagePersist, err)
	}

	// Stage 3: transcription.
	transcript, err := o.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return o.fail(jobID, StageTranscribe, err)
	}
	if err := o.dao.SetTranscript(jobID, *transcript, 50, "Generating summary"); err != nil {
		return o.fail(jobID, StagePersist, err)
	}

	// Stage 4: summarization.
	summary, err := o.summarizer.Summarize(ctx, transcript.FullText)
	if err != nil {
		return o.fail(jobID, StageSummarize, err)
	}

	// Stage 5: subtitles. Pure transform, no checkpoint between it and the
	// summary stage.
	srt := subtitle.GenerateSRT(transcript.Segments)

	// Stage 6: optional visual analysis.
	visual := []model.VisualObservation{}
	if job.Options.VisualAnalysis {
		visual, err = o.analyzeFrames(ctx, jobID, info.FilePath)
		if err != nil {
			return err
		}
	}

	// Stage 7: terminal success; remaining artifacts land atomically with
	// the status change.
	artifacts := repository.CompletionArtifacts{
		SummaryShort:    summary.Short,
		SummaryDetailed: summary.Detailed,
		Chapters:        summary.Chapters,
		SubtitlesSRT:    srt,
		VisualAnalysis:  visual,
	}
	if err := o.dao.Complete(jobID, artifacts); err != nil {
		return o.fail(jobID, StagePersist, err)
	}

	jobsCompleted.Inc()
	o.logger.Info("job completed", "job_id", jobID, "title", info.Title)
	return nil
}

// analyzeFrames runs the extract -> dedupe -> caption branch. The returned
// error is already recorded as the job's terminal failure.
func (o *Orchestrator) analyzeFrames(ctx context.Context, jobID string, videoPath string) ([]model.VisualObservation, error) {
	if err := o.dao.SetCheckpoint(jobID, 60, "Extracting frames"); err != nil {
		return nil, o.fail(jobID, StagePersist, err)
	}
	framesDir := filepath.Join(o.framesRoot, jobID)
	raw, err := o.extractFrames(ctx, videoPath, framesDir, o.frameInterval)
	if err != nil {
		return nil, o.fail(jobID, StageExtractFrames, err)
	}

	if err := o.dao.SetCheckpoint(jobID, 70, "Deduplicating frames"); err != nil {
		return nil, o.fail(jobID, StagePersist, err)
	}
	unique, err := o.dedupeFrames(raw, o.dedupeThreshold)
	if err != nil {
		return nil, o.fail(jobID, StageDedupeFrames, err)
	}

	if err := o.dao.SetCheckpoint(jobID, 80, "Analyzing frames with AI"); err != nil {
		return nil, o.fail(jobID, StagePersist, err)
	}
	visual := frames.Analyze(ctx, o.captioner, unique, o.frameInterval)

	// Publishing failures keep the local path; they never fail the job.
	for i := range visual {
		ref, err := o.frameStore.Publish(ctx, jobID, visual[i].FramePath)
		if err != nil {
			o.logger.Warn("frame publish failed", "job_id", jobID, "frame", visual[i].FramePath, "error", err)
			continue
		}
		visual[i].FramePath = ref
	}

	return visual, nil
}

// fail records the terminal failure and returns the original error.
func (o *Orchestrator) fail(jobID string, stage string, stageErr error) error {
	jobsFailed.Inc()
	o.logger.Error("pipeline stage failed", "job_id", jobID, "stage", stage, "error", stageErr)

	if err := o.dao.Fail(jobID, stageErr.Error()); err != nil {
		o.logger.Error("failure write failed", "job_id", jobID, "error", err)
	}
	return stageErr
}
