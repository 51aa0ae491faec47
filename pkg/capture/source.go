// Package capture wraps video acquisition behind a small source type that
// distinguishes end-of-stream from failure to open. A source delivers
// frames of a fixed size for its whole lifetime; a mid-session resolution
// change is unsupported.
package capture

import (
	"fmt"
	"image"
	"strconv"

	"gocv.io/x/gocv"
)

// Source supplies frames from a camera device or a video file.
type Source struct {
	vc   *gocv.VideoCapture
	spec string
	size image.Point
}

// Open opens a video source. A numeric spec is a camera index ("0", "1");
// anything else is treated as a file path or stream URL. Failure to open
// is fatal to the caller, unlike per-frame read failures.
func Open(spec string) (*Source, error) {
	var (
		vc  *gocv.VideoCapture
		err error
	)
	if id, convErr := strconv.Atoi(spec); convErr == nil {
		vc, err = gocv.VideoCaptureDevice(id)
	} else {
		vc, err = gocv.VideoCaptureFile(spec)
	}
	if err != nil {
		return nil, fmt.Errorf("capture: could not open source %q: %w", spec, err)
	}
	return &Source{vc: vc, spec: spec}, nil
}

// Read fetches the next frame into dst. Returns false on end-of-stream
// (file exhausted or device gone); that is a graceful outcome, not an
// error.
func (s *Source) Read(dst *gocv.Mat) bool {
	if ok := s.vc.Read(dst); !ok || dst.Empty() {
		return false
	}
	if s.size == (image.Point{}) {
		s.size = image.Pt(dst.Cols(), dst.Rows())
	}
	return true
}

// Size returns the frame size observed on the first successful Read,
// or the zero point before any frame has been read.
func (s *Source) Size() image.Point {
	return s.size
}

// Spec returns the source spec this source was opened with.
func (s *Source) Spec() string {
	return s.spec
}

// Close releases the underlying capture handle.
func (s *Source) Close() error {
	return s.vc.Close()
}
