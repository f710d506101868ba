package sqlite

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videomind/internal/app/errors"
	"videomind/internal/app/model"
	"videomind/internal/app/repository"
)

func newTestDB(t *testing.T) *JobDB {
	t.Helper()
	db, err := NewJobDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCreateAndGetJob(t *testing.T) {
	db := newTestDB(t)

	opts := model.DefaultOptions()
	opts.VisualAnalysis = true
	jobID, err := db.CreateJob("https://example.com/v", opts)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(jobID, "job_"))
	assert.Len(t, jobID, len("job_")+12)

	job, err := db.GetJob(jobID)
	require.NoError(t, err)
	assert.Equal(t, jobID, job.ID)
	assert.Equal(t, "https://example.com/v", job.URL)
	assert.Equal(t, model.JobStatusPending, job.Status)
	assert.Equal(t, 0, job.Progress)
	assert.True(t, job.Options.VisualAnalysis)
	assert.Empty(t, job.TranscriptSegments)
	assert.Nil(t, job.CompletedAt)
	assert.False(t, job.CreatedAt.IsZero())
}

func TestGetJobNotFound(t *testing.T) {
	db := newTestDB(t)
	_, err := db.GetJob("job_missing00000")
	assert.ErrorIs(t, err, errors.ErrJobNotFound)
}

func TestJobIDsAreUnique(t *testing.T) {
	db := newTestDB(t)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, err := db.CreateJob("https://example.com/v", model.DefaultOptions())
		require.NoError(t, err)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestProgressUpdates(t *testing.T) {
	db := newTestDB(t)
	jobID, err := db.CreateJob("https://example.com/v", model.DefaultOptions())
	require.NoError(t, err)

	require.NoError(t, db.MarkProcessing(jobID, 10, "Downloading video"))
	job, err := db.GetJob(jobID)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusProcessing, job.Status)
	assert.Equal(t, 10, job.Progress)
	assert.Equal(t, "Downloading video", job.Step)

	require.NoError(t, db.SetVideoInfo(jobID, model.VideoInfo{
		Title: "Title", Duration: 95, Source: "youtube.com",
	}, 20, "Extracting audio"))
	job, err = db.GetJob(jobID)
	require.NoError(t, err)
	assert.Equal(t, "Title", job.VideoTitle)
	assert.Equal(t, "95", job.VideoDuration)
	assert.Equal(t, "youtube.com", job.VideoSource)
	assert.Equal(t, 20, job.Progress)

	require.NoError(t, db.SetTranscript(jobID, model.Transcript{
		FullText: "hello",
		Segments: []model.Segment{{Start: 0, End: 2.5, Text: "hello"}},
	}, 50, "Generating summary"))
	job, err = db.GetJob(jobID)
	require.NoError(t, err)
	assert.Equal(t, "hello", job.TranscriptText)
	require.Len(t, job.TranscriptSegments, 1)
	assert.Equal(t, 2.5, job.TranscriptSegments[0].End)
}

func TestCompleteStampsTerminalState(t *testing.T) {
	db := newTestDB(t)
	jobID, err := db.CreateJob("https://example.com/v", model.DefaultOptions())
	require.NoError(t, err)

	artifacts := repository.CompletionArtifacts{
		SummaryShort:    "short",
		SummaryDetailed: "detailed",
		Chapters:        []model.Chapter{{Start: "00:00", End: "01:00", Title: "Intro"}},
		SubtitlesSRT:    "1\n00:00:00,000 --> 00:00:02,500\nhello\n",
	}
	require.NoError(t, db.Complete(jobID, artifacts))

	job, err := db.GetJob(jobID)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusCompleted, job.Status)
	assert.Equal(t, 100, job.Progress)
	assert.Equal(t, "Done", job.Step)
	assert.Equal(t, "short", job.SummaryShort)
	require.Len(t, job.Chapters, 1)
	assert.Equal(t, "Intro", job.Chapters[0].Title)
	assert.NotNil(t, job.CompletedAt)
	assert.Empty(t, job.VisualAnalysis)
}

func TestFailStampsTerminalState(t *testing.T) {
	db := newTestDB(t)
	jobID, err := db.CreateJob("https://example.com/v", model.DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, db.MarkProcessing(jobID, 10, "Downloading video"))

	require.NoError(t, db.Fail(jobID, "Download failed"))

	job, err := db.GetJob(jobID)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusFailed, job.Status)
	assert.Equal(t, "Error", job.Step)
	assert.Equal(t, "Download failed", job.ErrorMessage)
	assert.NotNil(t, job.CompletedAt)
	// Progress is left where the pipeline stopped.
	assert.Equal(t, 10, job.Progress)
}

func TestFindStale(t *testing.T) {
	db := newTestDB(t)

	stuck, err := db.CreateJob("https://example.com/stuck", model.DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, db.MarkProcessing(stuck, 10, "Downloading video"))

	fresh, err := db.CreateJob("https://example.com/fresh", model.DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, db.MarkProcessing(fresh, 10, "Downloading video"))

	// A cutoff in the future catches both; one in the past catches neither.
	stale, err := db.FindStale(time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.Len(t, stale, 2)

	stale, err = db.FindStale(time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.Empty(t, stale)
}

func TestListCompleted(t *testing.T) {
	db := newTestDB(t)

	for i := 0; i < 3; i++ {
		id, err := db.CreateJob("https://example.com/v", model.DefaultOptions())
		require.NoError(t, err)
		require.NoError(t, db.Complete(id, repository.CompletionArtifacts{SummaryShort: "s"}))
	}
	pending, err := db.CreateJob("https://example.com/pending", model.DefaultOptions())
	require.NoError(t, err)

	jobs, err := db.ListCompleted(10)
	require.NoError(t, err)
	assert.Len(t, jobs, 3)
	for _, job := range jobs {
		assert.NotEqual(t, pending, job.ID)
		assert.Equal(t, model.JobStatusCompleted, job.Status)
	}

	jobs, err = db.ListCompleted(2)
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
}
