// Package viewport implements the camera-viewport math for zoom and follow:
// given a frame size, a zoom factor and a focus point it derives the crop
// rectangle to magnify, and the point mapping between original-frame and
// zoomed-frame coordinates. Everything here is pure; the Transform for a
// frame is computed once and reused for both the crop and any overlay
// re-projection so the two can never disagree.
package viewport

import (
	"fmt"
	"image"
)

// Point is a position in frame-pixel coordinates, origin top-left.
// Focus points are fractional: the smoothing filter produces sub-pixel
// positions and rounding them early would reintroduce jitter.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// RectCenter returns the center of a bounding rectangle as a Point.
func RectCenter(r image.Rectangle) Point {
	return Point{
		X: float64(r.Min.X) + float64(r.Dx())/2,
		Y: float64(r.Min.Y) + float64(r.Dy())/2,
	}
}

// Transform describes one frame's viewport: the region of the original
// frame that will be cropped and scaled back up to full size.
type Transform struct {
	TopLeft image.Point // clamped crop origin in original-frame coordinates
	Size    image.Point // crop size, floor(frame/zoom), at least 1x1
	Zoom    float64
}

// Compute derives the viewport for a frame. The crop is centered on focus
// and clamped so it always lies fully inside the frame: when the focus
// point nears a frame edge the viewport stops moving with it rather than
// cropping out of bounds.
func Compute(frameSize image.Point, focus Point, zoom float64) Transform {
	roiW := int(float64(frameSize.X) / zoom)
	roiH := int(float64(frameSize.Y) / zoom)
	if roiW < 1 {
		roiW = 1
	}
	if roiH < 1 {
		roiH = 1
	}

	x1 := int(focus.X - float64(roiW)/2)
	y1 := int(focus.Y - float64(roiH)/2)

	x1 = clampInt(x1, 0, frameSize.X-roiW)
	y1 = clampInt(y1, 0, frameSize.Y-roiH)

	return Transform{
		TopLeft: image.Pt(x1, y1),
		Size:    image.Pt(roiW, roiH),
		Zoom:    zoom,
	}
}

// Validate reports whether a frame size can support the given zoom factor.
// Degenerate frames (where the crop would collapse below one pixel) are a
// configuration error and should be rejected before the frame loop starts.
func Validate(frameSize image.Point, zoom float64) error {
	if frameSize.X < 1 || frameSize.Y < 1 {
		return fmt.Errorf("viewport: invalid frame size %dx%d", frameSize.X, frameSize.Y)
	}
	if int(float64(frameSize.X)/zoom) < 1 || int(float64(frameSize.Y)/zoom) < 1 {
		return fmt.Errorf("viewport: frame %dx%d too small for %.1fx zoom", frameSize.X, frameSize.Y, zoom)
	}
	return nil
}

// Rect returns the crop rectangle in original-frame coordinates.
func (t Transform) Rect() image.Rectangle {
	return image.Rect(t.TopLeft.X, t.TopLeft.Y, t.TopLeft.X+t.Size.X, t.TopLeft.Y+t.Size.Y)
}

// ToViewport maps a point from original-frame coordinates into the zoomed
// output frame. This exactly inverts the crop+resize: the resize filter
// does not affect this linear point mapping.
func (t Transform) ToViewport(p Point) Point {
	return Point{
		X: (p.X - float64(t.TopLeft.X)) * t.Zoom,
		Y: (p.Y - float64(t.TopLeft.Y)) * t.Zoom,
	}
}

// ProjectRect maps a bounding rectangle from original-frame coordinates
// into the zoomed output frame: the top-left goes through ToViewport and
// the size scales by the zoom factor.
func (t Transform) ProjectRect(r image.Rectangle) image.Rectangle {
	tl := t.ToViewport(Pt(float64(r.Min.X), float64(r.Min.Y)))
	w := float64(r.Dx()) * t.Zoom
	h := float64(r.Dy()) * t.Zoom
	return image.Rect(int(tl.X), int(tl.Y), int(tl.X+w), int(tl.Y+h))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
