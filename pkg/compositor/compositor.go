// Package compositor turns a raw frame plus a viewport into the zoomed
// output frame and re-projects tracking annotations into it. It draws
// nothing itself; overlay rendering is layered on top by the caller.
package compositor

import (
	"image"

	"gocv.io/x/gocv"

	"followcam/pkg/viewport"
)

// Render crops frame to the viewport and scales the crop back up to the
// full frame size, writing into dst. Linear interpolation matches the
// reference behavior; the point mapping in viewport is unaffected by the
// filter choice. Render cannot fail: Compute guarantees the crop lies
// inside the frame.
func Render(frame gocv.Mat, vp viewport.Transform, dst *gocv.Mat) {
	region := frame.Region(vp.Rect())
	defer region.Close()

	gocv.Resize(region, dst, image.Pt(frame.Cols(), frame.Rows()), 0, 0, gocv.InterpolationLinear)
}

// ProjectBox maps a bounding box from original-frame coordinates into the
// zoomed output frame, using the same Transform that produced the crop so
// the overlay can never drift from the pixels underneath it.
func ProjectBox(vp viewport.Transform, box image.Rectangle) image.Rectangle {
	return vp.ProjectRect(box)
}
