package tracking

import (
	"image"

	"gocv.io/x/gocv"
)

// Backend is the capability interface over an external object tracker
// (CSRT, KCF and friends). The session never inspects a backend's
// internals; it only initializes it on a region and asks for per-frame
// updates. Any concrete tracker can be substituted without touching the
// camera-control core.
type Backend interface {
	// Init seeds the tracker with a target region in the given frame.
	// Returns false if the tracker rejected the region.
	Init(frame gocv.Mat, region image.Rectangle) bool

	// Update advances the tracker by one frame. Returns the new bounding
	// box and whether the target was found.
	Update(frame gocv.Mat) (image.Rectangle, bool)

	// Close releases the tracker's resources.
	Close() error
}

// BackendFactory produces a fresh Backend instance. The session creates a
// new backend on every selection: OpenCV trackers cannot be re-seeded
// after a failed update, so re-selection always starts from scratch.
type BackendFactory func() (Backend, error)
