package pipeline

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"videomind/internal/app/errors"
	"videomind/internal/app/frames"
	"videomind/internal/app/model"
	"videomind/internal/app/testutil"
)

func newTestOrchestrator(t *testing.T, dao *testutil.MockJobDAO, downloader *testutil.MockDownloader, transcriber *testutil.MockTranscriber, summarizer *testutil.MockSummarizer, captioner *testutil.MockCaptioner) *Orchestrator {
	t.Helper()
	tempRoot := t.TempDir()
	o := NewOrchestrator(OrchestratorConfig{
		DAO:         dao,
		Downloader:  downloader,
		Transcriber: transcriber,
		Summarizer:  summarizer,
		Captioner:   captioner,
		TempRoot:    tempRoot,
		FramesRoot:  filepath.Join(tempRoot, "frames"),
	})
	o.extractAudio = func(ctx context.Context, videoPath, outputDir string) (string, error) {
		return filepath.Join(outputDir, "audio.wav"), nil
	}
	o.extractFrames = func(ctx context.Context, videoPath, outputDir string, interval int) ([]frames.Frame, error) {
		return []frames.Frame{
			{Path: filepath.Join(outputDir, "frame_0001.jpg"), Ordinal: 1},
			{Path: filepath.Join(outputDir, "frame_0002.jpg"), Ordinal: 2},
		}, nil
	}
	o.dedupeFrames = func(input []frames.Frame, threshold int) ([]frames.Frame, error) {
		return input, nil
	}
	return o
}

func seededJob(dao *testutil.MockJobDAO, t *testing.T, opts model.Options) string {
	t.Helper()
	jobID, err := dao.CreateJob("https://example.com/video", opts)
	require.NoError(t, err)
	return jobID
}

func TestProcessCompletesWithoutVisualAnalysis(t *testing.T) {
	dao := testutil.NewMockJobDAO()
	downloader := new(testutil.MockDownloader)
	transcriber := new(testutil.MockTranscriber)
	summarizer := new(testutil.MockSummarizer)

	downloader.On("Fetch", mock.Anything, "https://example.com/video", mock.Anything).Return(&model.VideoInfo{
		Title:    "Test Video",
		Duration: 120,
		Source:   "example.com",
		FilePath: "/tmp/video.mp4",
	}, nil)
	transcriber.On("Transcribe", mock.Anything, mock.Anything).Return(&model.Transcript{
		FullText: "hello world",
		Segments: []model.Segment{{Start: 0, End: 5.2, Text: "hello world"}},
	}, nil)
	summarizer.On("Summarize", mock.Anything, "hello world").Return(&model.Summary{
		Short:    "A greeting.",
		Detailed: "Someone says hello to the world.",
		Chapters: []model.Chapter{{Start: "00:00", End: "00:05", Title: "Greeting"}},
	}, nil)

	o := newTestOrchestrator(t, dao, downloader, transcriber, summarizer, nil)
	jobID := seededJob(dao, t, model.DefaultOptions())

	err := o.Process(context.Background(), jobID)
	require.NoError(t, err)

	job, err := dao.GetJob(jobID)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusCompleted, job.Status)
	assert.Equal(t, 100, job.Progress)
	assert.Equal(t, "Done", job.Step)
	assert.Equal(t, "Test Video", job.VideoTitle)
	assert.Equal(t, "hello world", job.TranscriptText)
	assert.Equal(t, "A greeting.", job.SummaryShort)
	assert.Contains(t, job.SubtitlesSRT, "00:00:00,000 --> 00:00:05,200")
	assert.Empty(t, job.VisualAnalysis)
	assert.NotNil(t, job.CompletedAt)

	downloader.AssertExpectations(t)
	transcriber.AssertExpectations(t)
	summarizer.AssertExpectations(t)
}

func TestProcessRunsVisualBranchWhenEnabled(t *testing.T) {
	dao := testutil.NewMockJobDAO()
	downloader := new(testutil.MockDownloader)
	transcriber := new(testutil.MockTranscriber)
	summarizer := new(testutil.MockSummarizer)
	captioner := new(testutil.MockCaptioner)

	downloader.On("Fetch", mock.Anything, mock.Anything, mock.Anything).Return(&model.VideoInfo{
		Title: "Visual", Duration: 60, Source: "example.com", FilePath: "/tmp/v.mp4",
	}, nil)
	transcriber.On("Transcribe", mock.Anything, mock.Anything).Return(&model.Transcript{
		FullText: "talk", Segments: []model.Segment{{Start: 0, End: 1, Text: "talk"}},
	}, nil)
	summarizer.On("Summarize", mock.Anything, mock.Anything).Return(&model.Summary{Short: "s", Detailed: "d"}, nil)
	captioner.On("Describe", mock.Anything, mock.Anything).Return("A slide with text.", nil)

	o := newTestOrchestrator(t, dao, downloader, transcriber, summarizer, captioner)

	opts := model.DefaultOptions()
	opts.VisualAnalysis = true
	jobID := seededJob(dao, t, opts)

	err := o.Process(context.Background(), jobID)
	require.NoError(t, err)

	job, err := dao.GetJob(jobID)
	require.NoError(t, err)
	require.Len(t, job.VisualAnalysis, 2)
	assert.Equal(t, 0.0, job.VisualAnalysis[0].Timestamp)
	assert.Equal(t, 5.0, job.VisualAnalysis[1].Timestamp)
	assert.Equal(t, "A slide with text.", job.VisualAnalysis[0].Description)

	// The visual checkpoints land between summarization and completion.
	assert.Equal(t, []int{10, 20, 30, 50, 60, 70, 80, 100}, dao.ProgressHistory(jobID))
}

func TestProcessRecordsDownloadFailure(t *testing.T) {
	dao := testutil.NewMockJobDAO()
	downloader := new(testutil.MockDownloader)

	downloader.On("Fetch", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("Download failed"))

	o := newTestOrchestrator(t, dao, downloader, new(testutil.MockTranscriber), new(testutil.MockSummarizer), nil)
	jobID := seededJob(dao, t, model.DefaultOptions())

	err := o.Process(context.Background(), jobID)
	require.Error(t, err)

	job, getErr := dao.GetJob(jobID)
	require.NoError(t, getErr)
	assert.Equal(t, model.JobStatusFailed, job.Status)
	assert.Equal(t, "Error", job.Step)
	assert.Equal(t, "Download failed", job.ErrorMessage)
	assert.NotNil(t, job.CompletedAt)
}

func TestProcessProgressIsMonotonic(t *testing.T) {
	dao := testutil.NewMockJobDAO()
	downloader := new(testutil.MockDownloader)
	transcriber := new(testutil.MockTranscriber)
	summarizer := new(testutil.MockSummarizer)

	downloader.On("Fetch", mock.Anything, mock.Anything, mock.Anything).Return(&model.VideoInfo{
		Title: "T", Duration: 10, Source: "s", FilePath: "/tmp/v.mp4",
	}, nil)
	transcriber.On("Transcribe", mock.Anything, mock.Anything).Return(&model.Transcript{FullText: "x"}, nil)
	summarizer.On("Summarize", mock.Anything, mock.Anything).Return(&model.Summary{}, nil)

	o := newTestOrchestrator(t, dao, downloader, transcriber, summarizer, nil)
	jobID := seededJob(dao, t, model.DefaultOptions())

	require.NoError(t, o.Process(context.Background(), jobID))

	history := dao.ProgressHistory(jobID)
	require.NotEmpty(t, history)
	for i := 1; i < len(history); i++ {
		assert.GreaterOrEqual(t, history[i], history[i-1], "progress went backwards at step %d", i)
	}
	assert.Equal(t, 100, history[len(history)-1])
}

func TestProcessUnknownJob(t *testing.T) {
	dao := testutil.NewMockJobDAO()
	o := newTestOrchestrator(t, dao, new(testutil.MockDownloader), new(testutil.MockTranscriber), new(testutil.MockSummarizer), nil)

	err := o.Process(context.Background(), "job_missing")
	assert.ErrorIs(t, err, errors.ErrJobNotFound)
}
