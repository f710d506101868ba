package frames

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videomind/internal/app/errors"
)

type stubCaptioner struct {
	responses map[string]string
	failures  map[string]error
}

func (s *stubCaptioner) Describe(_ context.Context, framePath string) (string, error) {
	if err, ok := s.failures[framePath]; ok {
		return "", err
	}
	return s.responses[framePath], nil
}

func TestAnalyzeIsolatesPerFrameFailures(t *testing.T) {
	captioner := &stubCaptioner{
		responses: map[string]string{
			"f2.jpg": "A person speaking at a podium.",
		},
		failures: map[string]error{
			"f1.jpg": errors.New("vision call failed"),
		},
	}

	input := []Frame{
		{Path: "f1.jpg", Ordinal: 1},
		{Path: "f2.jpg", Ordinal: 2},
	}

	observations := Analyze(context.Background(), captioner, input, 5)
	require.Len(t, observations, 2)

	assert.Equal(t, FailedDescription, observations[0].Description)
	assert.Equal(t, "A person speaking at a podium.", observations[1].Description)
}

func TestAnalyzeTimestamps(t *testing.T) {
	captioner := &stubCaptioner{responses: map[string]string{}}

	input := []Frame{
		{Path: "f1.jpg", Ordinal: 1},
		{Path: "f2.jpg", Ordinal: 2},
		{Path: "f3.jpg", Ordinal: 5},
	}

	observations := Analyze(context.Background(), captioner, input, 10)
	require.Len(t, observations, 3)
	assert.Equal(t, 0.0, observations[0].Timestamp)
	assert.Equal(t, 10.0, observations[1].Timestamp)
	assert.Equal(t, 40.0, observations[2].Timestamp)
}

func TestAnalyzeEmptyInput(t *testing.T) {
	observations := Analyze(context.Background(), &stubCaptioner{}, nil, 5)
	assert.Empty(t, observations)
}
