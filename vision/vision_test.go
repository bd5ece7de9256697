package vision

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestValidTracker(t *testing.T) {
	for _, name := range []string{"csrt", "KCF", "mil"} {
		assert.NoError(t, ValidTracker(name), name)
	}
	err := ValidTracker("goturn")
	assert.True(t, errors.Is(err, ErrUnknownTracker))

	_, err = NewFactory("boosting")
	assert.True(t, errors.Is(err, ErrUnknownTracker))
}

func TestOpenCaptureMissingFile(t *testing.T) {
	_, err := OpenCapture(t.TempDir() + "/missing.mov")
	assert.True(t, errors.Is(err, ErrOpenVideo))
}
