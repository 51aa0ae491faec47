package tracking

import (
	"fmt"
	"strings"

	"gocv.io/x/gocv"
	"gocv.io/x/gocv/contrib"
)

// BackendNames lists the supported tracker backends, in preference order.
// CSRT is the most accurate, KCF the fastest of the contrib trackers, MIL
// the only one available without opencv_contrib.
var BackendNames = []string{"csrt", "kcf", "mil"}

// NewBackendFactory returns a factory for the named OpenCV tracker.
// gocv trackers satisfy Backend directly; a fresh instance is produced
// per call because a tracker cannot be re-initialized after losing its
// target.
func NewBackendFactory(name string) (BackendFactory, error) {
	switch strings.ToLower(name) {
	case "", "csrt":
		return func() (Backend, error) { return contrib.NewTrackerCSRT(), nil }, nil
	case "kcf":
		return func() (Backend, error) { return contrib.NewTrackerKCF(), nil }, nil
	case "mil":
		return func() (Backend, error) { return gocv.NewTrackerMIL(), nil }, nil
	default:
		return nil, fmt.Errorf("tracking: unknown backend %q (supported: %s)", name, strings.Join(BackendNames, ", "))
	}
}
