// Package overlay draws tracking annotations onto output frames: the
// target box with a center crosshair, the zoom/state status line, and the
// tracking-lost banner. Purely presentational; all coordinates arrive
// already projected into output-frame space.
package overlay

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Renderer draws tracking annotations with a fixed palette.
type Renderer struct {
	target color.RGBA // box, crosshair, status line
	alert  color.RGBA // lost banner
	help   color.RGBA // key hints
}

// NewRenderer creates a renderer with the default palette.
func NewRenderer() *Renderer {
	return &Renderer{
		target: color.RGBA{R: 0, G: 255, B: 0, A: 255},
		alert:  color.RGBA{R: 255, G: 40, B: 40, A: 255},
		help:   color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// DrawTarget draws the target bounding box and a crosshair at its center.
func (r *Renderer) DrawTarget(img *gocv.Mat, box image.Rectangle) {
	gocv.Rectangle(img, box, r.target, 2)

	center := image.Pt(box.Min.X+box.Dx()/2, box.Min.Y+box.Dy()/2)
	size := 10
	gocv.Line(img,
		image.Pt(center.X-size, center.Y),
		image.Pt(center.X+size, center.Y),
		r.target, 2)
	gocv.Line(img,
		image.Pt(center.X, center.Y-size),
		image.Pt(center.X, center.Y+size),
		r.target, 2)
	gocv.Circle(img, center, 2, r.target, -1)
}

// DrawStatus draws the zoom factor and session state in the top-left corner.
func (r *Renderer) DrawStatus(img *gocv.Mat, zoom float64, state string) {
	text := fmt.Sprintf("Zoom: %.1fx  [%s]", zoom, state)
	gocv.PutText(img, text, image.Pt(10, 30), gocv.FontHersheySimplex, 0.7, r.target, 2)
}

// DrawLost draws the tracking-lost banner.
func (r *Renderer) DrawLost(img *gocv.Mat) {
	gocv.PutText(img, "Tracking Lost! Press 'r' to reselect",
		image.Pt(10, 50), gocv.FontHersheySimplex, 0.7, r.alert, 2)
}

// DrawHelp draws the key hints along the bottom edge.
func (r *Renderer) DrawHelp(img *gocv.Mat) {
	gocv.PutText(img, "Press 'q' to quit, 'r' to reselect",
		image.Pt(10, img.Rows()-10), gocv.FontHersheySimplex, 0.5, r.help, 1)
}
