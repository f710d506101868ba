package testutil

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"videomind/internal/app/errors"
	"videomind/internal/app/model"
	"videomind/internal/app/repository"
)

// MockJobDAO is an in-memory repository.JobDAO for pipeline and service
// tests. It records every status transition so tests can assert on the
// checkpoint sequence, and can be configured to fail specific methods.
type MockJobDAO struct {
	mu sync.RWMutex

	jobs   map[string]*model.Job
	nextID int

	// Checkpoints is the ordered (progress, step) history across all writes.
	Checkpoints []Checkpoint

	// ErrorMap forces an error return for the named method.
	ErrorMap map[string]error
}

// Checkpoint is one recorded progress write.
type Checkpoint struct {
	JobID    string
	Progress int
	Step     string
}

// NewMockJobDAO creates an empty in-memory store.
func NewMockJobDAO() *MockJobDAO {
	return &MockJobDAO{
		jobs:     make(map[string]*model.Job),
		nextID:   1,
		ErrorMap: make(map[string]error),
	}
}

func (m *MockJobDAO) forcedError(method string) error {
	return m.ErrorMap[method]
}

func (m *MockJobDAO) CreateJob(url string, options model.Options) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.forcedError("CreateJob"); err != nil {
		return "", err
	}

	id := fmt.Sprintf("job_%012d", m.nextID)
	m.nextID++
	m.jobs[id] = &model.Job{
		ID:        id,
		URL:       url,
		Options:   options,
		Status:    model.JobStatusPending,
		Step:      "Queued",
		CreatedAt: time.Now(),
	}
	return id, nil
}

func (m *MockJobDAO) GetJob(jobID string) (*model.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.forcedError("GetJob"); err != nil {
		return nil, err
	}

	job, ok := m.jobs[jobID]
	if !ok {
		return nil, errors.ErrJobNotFound
	}
	copied := *job
	return &copied, nil
}

func (m *MockJobDAO) MarkProcessing(jobID string, progress int, step string) error {
	return m.update("MarkProcessing", jobID, func(job *model.Job) {
		job.Status = model.JobStatusProcessing
		m.record(jobID, progress, step, job)
	})
}

func (m *MockJobDAO) SetCheckpoint(jobID string, progress int, step string) error {
	return m.update("SetCheckpoint", jobID, func(job *model.Job) {
		m.record(jobID, progress, step, job)
	})
}

func (m *MockJobDAO) SetVideoInfo(jobID string, info model.VideoInfo, progress int, step string) error {
	return m.update("SetVideoInfo", jobID, func(job *model.Job) {
		job.VideoTitle = info.Title
		job.VideoDuration = fmt.Sprintf("%d", info.Duration)
		job.VideoSource = info.Source
		m.record(jobID, progress, step, job)
	})
}

func (m *MockJobDAO) SetTranscript(jobID string, transcript model.Transcript, progress int, step string) error {
	return m.update("SetTranscript", jobID, func(job *model.Job) {
		job.TranscriptText = transcript.FullText
		job.TranscriptSegments = transcript.Segments
		m.record(jobID, progress, step, job)
	})
}

func (m *MockJobDAO) Complete(jobID string, artifacts repository.CompletionArtifacts) error {
	return m.update("Complete", jobID, func(job *model.Job) {
		job.Status = model.JobStatusCompleted
		job.SummaryShort = artifacts.SummaryShort
		job.SummaryDetailed = artifacts.SummaryDetailed
		job.Chapters = artifacts.Chapters
		job.SubtitlesSRT = artifacts.SubtitlesSRT
		job.VisualAnalysis = artifacts.VisualAnalysis
		now := time.Now()
		job.CompletedAt = &now
		m.record(jobID, 100, "Done", job)
	})
}

func (m *MockJobDAO) Fail(jobID string, message string) error {
	return m.update("Fail", jobID, func(job *model.Job) {
		job.Status = model.JobStatusFailed
		job.ErrorMessage = message
		now := time.Now()
		job.CompletedAt = &now
		m.record(jobID, job.Progress, "Error", job)
	})
}

func (m *MockJobDAO) FindStale(createdBefore time.Time) ([]model.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.forcedError("FindStale"); err != nil {
		return nil, err
	}

	var stale []model.Job
	for _, job := range m.jobs {
		if job.Status == model.JobStatusProcessing && job.CreatedAt.Before(createdBefore) {
			stale = append(stale, *job)
		}
	}
	sort.Slice(stale, func(i, j int) bool { return stale[i].ID < stale[j].ID })
	return stale, nil
}

func (m *MockJobDAO) ListCompleted(limit int) ([]model.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.forcedError("ListCompleted"); err != nil {
		return nil, err
	}

	var completed []model.Job
	for _, job := range m.jobs {
		if job.Status == model.JobStatusCompleted {
			completed = append(completed, *job)
		}
	}
	sort.Slice(completed, func(i, j int) bool {
		return completed[i].CreatedAt.After(completed[j].CreatedAt)
	})
	if limit > 0 && len(completed) > limit {
		completed = completed[:limit]
	}
	return completed, nil
}

func (m *MockJobDAO) Close() error {
	return nil
}

// Seed installs a job directly, bypassing CreateJob.
func (m *MockJobDAO) Seed(job *model.Job) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = job
}

// ProgressHistory returns the recorded progress values for one job.
func (m *MockJobDAO) ProgressHistory(jobID string) []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var history []int
	for _, cp := range m.Checkpoints {
		if cp.JobID == jobID {
			history = append(history, cp.Progress)
		}
	}
	return history
}

func (m *MockJobDAO) update(method, jobID string, apply func(*model.Job)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.forcedError(method); err != nil {
		return err
	}

	job, ok := m.jobs[jobID]
	if !ok {
		return errors.ErrJobNotFound
	}
	apply(job)
	return nil
}

// record assumes the caller holds the write lock.
func (m *MockJobDAO) record(jobID string, progress int, step string, job *model.Job) {
	job.Progress = progress
	job.Step = step
	m.Checkpoints = append(m.Checkpoints, Checkpoint{JobID: jobID, Progress: progress, Step: step})
}
