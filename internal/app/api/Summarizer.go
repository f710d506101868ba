package api

import (
	"context"

	"videomind/internal/app/model"
)

// Summarizer condenses a transcript into a short summary, a detailed summary
// and an estimated chapter list.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (*model.Summary, error)
}

// Answerer answers a free-form question about a processed video using the
// transcript and any visual context gathered by the pipeline.
type Answerer interface {
	Answer(ctx context.Context, question string, transcript string, visual []model.VisualObservation, chapters []model.Chapter) (*model.Answer, error)
}
