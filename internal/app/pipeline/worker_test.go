package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"videomind/internal/app/errors"
	"videomind/internal/app/model"
	"videomind/internal/app/testutil"
)

func TestSubmitBeforeStart(t *testing.T) {
	d := NewDispatcher(nil, 1, 1, nil)
	err := d.Submit("job_x")
	assert.ErrorIs(t, err, errors.ErrPoolNotRunning)
}

func TestSubmitQueueFull(t *testing.T) {
	dao := testutil.NewMockJobDAO()
	downloader := new(testutil.MockDownloader)

	// Block the single worker so queued submissions pile up.
	release := make(chan struct{})
	downloader.On("Fetch", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { <-release }).
		Return(nil, errors.New("blocked"))

	o := newTestOrchestrator(t, dao, downloader, new(testutil.MockTranscriber), new(testutil.MockSummarizer), nil)
	d := NewDispatcher(o, 1, 1, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)
	defer func() {
		close(release)
		d.Stop()
	}()

	first := seededJob(dao, t, model.DefaultOptions())
	require.NoError(t, d.Submit(first))

	// Give the worker time to pick up the first job.
	require.Eventually(t, func() bool {
		job, err := dao.GetJob(first)
		return err == nil && job.Status == model.JobStatusProcessing
	}, 2*time.Second, 10*time.Millisecond)

	second := seededJob(dao, t, model.DefaultOptions())
	require.NoError(t, d.Submit(second))

	third := seededJob(dao, t, model.DefaultOptions())
	assert.ErrorIs(t, d.Submit(third), errors.ErrQueueFull)
}

func TestDispatcherProcessesQueuedJobs(t *testing.T) {
	dao := testutil.NewMockJobDAO()
	downloader := new(testutil.MockDownloader)
	transcriber := new(testutil.MockTranscriber)
	summarizer := new(testutil.MockSummarizer)

	downloader.On("Fetch", mock.Anything, mock.Anything, mock.Anything).Return(&model.VideoInfo{
		Title: "T", Duration: 10, Source: "s", FilePath: "/tmp/v.mp4",
	}, nil)
	transcriber.On("Transcribe", mock.Anything, mock.Anything).Return(&model.Transcript{FullText: "x"}, nil)
	summarizer.On("Summarize", mock.Anything, mock.Anything).Return(&model.Summary{Short: "s"}, nil)

	o := newTestOrchestrator(t, dao, downloader, transcriber, summarizer, nil)
	d := NewDispatcher(o, 2, 8, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)
	defer d.Stop()

	var ids []string
	for i := 0; i < 4; i++ {
		id := seededJob(dao, t, model.DefaultOptions())
		require.NoError(t, d.Submit(id))
		ids = append(ids, id)
	}

	require.Eventually(t, func() bool {
		for _, id := range ids {
			job, err := dao.GetJob(id)
			if err != nil || job.Status != model.JobStatusCompleted {
				return false
			}
		}
		return true
	}, 5*time.Second, 20*time.Millisecond)
}
