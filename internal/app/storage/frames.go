package storage

import (
	"context"
)

// FrameStore publishes a retained frame image and returns the reference
// recorded in the job's visual observations.
type FrameStore interface {
	Publish(ctx context.Context, jobID string, framePath string) (string, error)
}

// LocalFrameStore leaves frames where the extractor wrote them; the recorded
// reference is the local path.
type LocalFrameStore struct{}

func NewLocalFrameStore() LocalFrameStore {
	return LocalFrameStore{}
}

func (LocalFrameStore) Publish(_ context.Context, _ string, framePath string) (string, error) {
	return framePath, nil
}
