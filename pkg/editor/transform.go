package editor

import "github.com/michalprusek/segedit/pkg/geometry"

// Transform converts between screen (device pixel) coordinates and
// image-space coordinates under the current zoom factor and pan offset.
// The container's top-left corner is the screen-space origin.
type Transform struct {
	Zoom   float64
	Offset geometry.Point
}

// NewTransform returns the identity transform (zoom 1, no pan)
func NewTransform() Transform {
	return Transform{Zoom: 1}
}

// ToImage converts a screen point to image space
func (t Transform) ToImage(screen geometry.Point) geometry.Point {
	return geometry.Point{
		X: screen.X/t.Zoom - t.Offset.X,
		Y: screen.Y/t.Zoom - t.Offset.Y,
	}
}

// ToScreen converts an image point to screen space
func (t Transform) ToScreen(image geometry.Point) geometry.Point {
	return geometry.Point{
		X: (image.X + t.Offset.X) * t.Zoom,
		Y: (image.Y + t.Offset.Y) * t.Zoom,
	}
}

// HitThreshold widens a hit-test threshold under low zoom so targets stay
// clickable when the image is zoomed out. At zoom >= 1 the threshold is
// used as-is.
func (t Transform) HitThreshold(base float64) float64 {
	if t.Zoom >= 1 || t.Zoom <= 0 {
		return base
	}
	return base / t.Zoom
}
