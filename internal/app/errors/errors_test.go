package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapPreservesSentinel(t *testing.T) {
	wrapped := Wrap(ErrJobNotFound, "lookup during status check")

	assert.True(t, stderrors.Is(wrapped, ErrJobNotFound))
	assert.Contains(t, wrapped.Error(), "lookup during status check")
	assert.Contains(t, wrapped.Error(), "job not found")
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
}

func TestWrapfFormats(t *testing.T) {
	err := Wrapf(ErrQueueFull, "submitting job %s", "job_abc")
	assert.True(t, stderrors.Is(err, ErrQueueFull))
	assert.Contains(t, err.Error(), "submitting job job_abc")
}

func TestIsMatchesByMessage(t *testing.T) {
	assert.True(t, stderrors.Is(New("job not found"), ErrJobNotFound))
	assert.False(t, stderrors.Is(New("something else"), ErrJobNotFound))
}
