package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"videomind/internal/app/model"
)

// MockDownloader is a testify mock for the media.Downloader interface.
type MockDownloader struct {
	mock.Mock
}

func (m *MockDownloader) Fetch(ctx context.Context, url, destDir string) (*model.VideoInfo, error) {
	args := m.Called(ctx, url, destDir)
	if info := args.Get(0); info != nil {
		return info.(*model.VideoInfo), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockTranscriber is a testify mock for the api.Transcriber interface.
type MockTranscriber struct {
	mock.Mock
}

func (m *MockTranscriber) Transcribe(ctx context.Context, audioPath string) (*model.Transcript, error) {
	args := m.Called(ctx, audioPath)
	if t := args.Get(0); t != nil {
		return t.(*model.Transcript), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockSummarizer is a testify mock for the api.Summarizer interface.
type MockSummarizer struct {
	mock.Mock
}

func (m *MockSummarizer) Summarize(ctx context.Context, transcript string) (*model.Summary, error) {
	args := m.Called(ctx, transcript)
	if s := args.Get(0); s != nil {
		return s.(*model.Summary), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockCaptioner is a testify mock for the frames.Captioner interface.
type MockCaptioner struct {
	mock.Mock
}

func (m *MockCaptioner) Describe(ctx context.Context, framePath string) (string, error) {
	args := m.Called(ctx, framePath)
	return args.String(0), args.Error(1)
}

// MockAnswerer is a testify mock for the api.Answerer interface.
type MockAnswerer struct {
	mock.Mock
}

func (m *MockAnswerer) Answer(ctx context.Context, question, transcript string, visual []model.VisualObservation, chapters []model.Chapter) (*model.Answer, error) {
	args := m.Called(ctx, question, transcript, visual, chapters)
	if a := args.Get(0); a != nil {
		return a.(*model.Answer), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockQueue is a testify mock for the services.Queue interface.
type MockQueue struct {
	mock.Mock
}

func (m *MockQueue) Submit(jobID string) error {
	args := m.Called(jobID)
	return args.Error(0)
}
