package progress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterval(t *testing.T) {
	tests := []struct {
		frames int
		want   int
	}{
		{0, 1},
		{1, 1},
		{5, 1},
		{19, 1},
		{20, 1},
		{40, 2},
		{59, 2},
		{60, 2},
		{80, 4},
		{201, 8},
		{1000, 32},
	}

	for _, tt := range tests {
		got := Interval(tt.frames)
		assert.Equal(t, tt.want, got, "Interval(%d)", tt.frames)
		assert.GreaterOrEqual(t, got, 1)
		assert.Zero(t, got&(got-1), "interval must be a power of two")
	}
}

func TestReporterSmallVideo(t *testing.T) {
	var out bytes.Buffer
	r := NewReporter(&out, 5)
	assert.Equal(t, 1, r.Interval())

	r.Start()
	for j := 1; j < 5; j++ {
		r.Step(j)
	}
	assert.Equal(t, 4, r.Count())
	r.Finish()
	assert.Equal(t, 5, r.Count())

	s := out.String()
	assert.True(t, strings.HasPrefix(s, "Tracking...\n"))
	assert.Contains(t, s, "[=====] 100%")
	assert.True(t, strings.HasSuffix(s, "Tracking complete!\n"))
}

func TestReporterStepsOnlyOnInterval(t *testing.T) {
	var out bytes.Buffer
	r := NewReporter(&out, 201)
	assert.Equal(t, 8, r.Interval())

	for j := 1; j < 201; j++ {
		r.Step(j)
	}
	// frames 8, 16, ..., 200
	assert.Equal(t, 25, r.Count())
}

func TestReporterNeverOverflows(t *testing.T) {
	var out bytes.Buffer
	r := NewReporter(&out, 3)
	for j := 0; j < 10; j++ {
		r.Step(j)
	}
	r.Finish()
	assert.Equal(t, 3, r.Count())
}
