package utils

import (
	"image"
)

// ConstrainBoundingBox keeps a selected region usable for tracker
// initialization: it enforces a minimum size around the same center and then
// shifts the rectangle back inside the image.
func ConstrainBoundingBox(rect image.Rectangle, minSize, imgWidth, imgHeight int) image.Rectangle {
	rect = rect.Canon()
	if rect.Empty() {
		return image.Rectangle{}
	}

	newWidth := rect.Dx()
	newHeight := rect.Dy()
	if newWidth < minSize {
		newWidth = minSize
	}
	if newHeight < minSize {
		newHeight = minSize
	}
	if newWidth > imgWidth {
		newWidth = imgWidth
	}
	if newHeight > imgHeight {
		newHeight = imgHeight
	}

	// Calculate center point of original rectangle
	centerX := rect.Min.X + rect.Dx()/2
	centerY := rect.Min.Y + rect.Dy()/2

	newRect := image.Rect(
		centerX-newWidth/2,
		centerY-newHeight/2,
		centerX-newWidth/2+newWidth,
		centerY-newHeight/2+newHeight,
	)

	// Ensure the rectangle stays within image bounds
	if newRect.Min.X < 0 {
		newRect = newRect.Add(image.Pt(-newRect.Min.X, 0))
	}
	if newRect.Min.Y < 0 {
		newRect = newRect.Add(image.Pt(0, -newRect.Min.Y))
	}
	if newRect.Max.X > imgWidth {
		newRect = newRect.Add(image.Pt(imgWidth-newRect.Max.X, 0))
	}
	if newRect.Max.Y > imgHeight {
		newRect = newRect.Add(image.Pt(0, imgHeight-newRect.Max.Y))
	}

	return newRect
}

// ClampToFrame intersects rect with the frame bounds
func ClampToFrame(rect image.Rectangle, imgWidth, imgHeight int) image.Rectangle {
	return rect.Canon().Intersect(image.Rect(0, 0, imgWidth, imgHeight))
}
