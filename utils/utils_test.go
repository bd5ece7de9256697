package utils

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstrainBoundingBox(t *testing.T) {
	tests := []struct {
		name string
		rect image.Rectangle
		want image.Rectangle
	}{
		{
			name: "inside and large enough",
			rect: image.Rect(10, 10, 30, 30),
			want: image.Rect(10, 10, 30, 30),
		},
		{
			name: "grown to minimum around center",
			rect: image.Rect(50, 50, 52, 52),
			want: image.Rect(46, 46, 56, 56),
		},
		{
			name: "shifted back from top left",
			rect: image.Rect(-5, -5, 15, 15),
			want: image.Rect(0, 0, 20, 20),
		},
		{
			name: "shifted back from bottom right",
			rect: image.Rect(90, 90, 110, 110),
			want: image.Rect(80, 80, 100, 100),
		},
		{
			name: "larger than the image",
			rect: image.Rect(0, 0, 300, 50),
			want: image.Rect(0, 0, 100, 50),
		},
		{
			name: "empty stays empty",
			rect: image.Rect(5, 5, 5, 20),
			want: image.Rectangle{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConstrainBoundingBox(tt.rect, 10, 100, 100))
		})
	}
}

func TestClampToFrame(t *testing.T) {
	assert.Equal(t, image.Rect(0, 0, 10, 10), ClampToFrame(image.Rect(-5, -5, 10, 10), 640, 480))
	assert.Equal(t, image.Rect(600, 400, 640, 480), ClampToFrame(image.Rect(600, 400, 700, 500), 640, 480))
	assert.True(t, ClampToFrame(image.Rect(700, 500, 800, 600), 640, 480).Empty())
}
