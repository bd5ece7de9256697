package input

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		key  int
		want Action
	}{
		{KeyEscape, Quit},
		{'q', Quit},
		{' ', TogglePause},
		{'p', TogglePause},
		{'d', ToggleDebug},
		{NoKey, None},
		{'x', None},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Lookup(tt.key), "key %d", tt.key)
	}
}

func TestProcessInputCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	action, stop := ProcessInput('d', cancel)
	assert.Equal(t, ToggleDebug, action)
	assert.False(t, stop)
	assert.NoError(t, ctx.Err())

	action, stop = ProcessInput(KeyEscape, cancel)
	assert.Equal(t, Quit, action)
	assert.True(t, stop)
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestProcessInputNilCancel(t *testing.T) {
	_, stop := ProcessInput('q', nil)
	assert.True(t, stop)
}
