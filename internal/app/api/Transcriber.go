package api

import (
	"context"

	"videomind/internal/app/model"
)

// Transcriber converts an audio file into full text plus time-aligned
// segments.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*model.Transcript, error)
}
