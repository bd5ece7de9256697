package recording

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"droptracker/types"
)

func TestDefaultFilename(t *testing.T) {
	now := time.Date(2026, 10, 19, 8, 5, 3, 0, time.UTC)
	assert.Equal(t, "tracking_video_20261019_080503.mp4", DefaultFilename(now))
}

func TestRecorderIdle(t *testing.T) {
	r := NewRecorder(types.DefaultVideoConfig())
	assert.False(t, r.IsRecording())
	assert.Zero(t, r.Duration())
	assert.True(t, errors.Is(r.Stop(), ErrNotRecording))
	r.Cleanup()
}
