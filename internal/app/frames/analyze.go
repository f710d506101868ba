package frames

import (
	"context"
	"log"

	"videomind/internal/app/model"
)

// FailedDescription is recorded when a single frame's captioning call fails.
// One frame's failure never aborts the batch.
const FailedDescription = "Analysis failed"

// Captioner produces a one-sentence description of a single frame image.
type Captioner interface {
	Describe(ctx context.Context, framePath string) (string, error)
}

// Analyze captions each retained frame independently. Failures are isolated
// per frame and substituted with the sentinel description.
func Analyze(ctx context.Context, captioner Captioner, input []Frame, intervalSeconds int) []model.VisualObservation {
	observations := make([]model.VisualObservation, 0, len(input))

	for _, frame := range input {
		description, err := captioner.Describe(ctx, frame.Path)
		if err != nil {
			log.Printf("frame captioning failed for %s: %v", frame.Path, err)
			description = FailedDescription
		}

		observations = append(observations, model.VisualObservation{
			Timestamp:   frame.Timestamp(intervalSeconds),
			FramePath:   frame.Path,
			Description: description,
		})
	}

	return observations
}
