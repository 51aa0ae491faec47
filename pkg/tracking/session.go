package tracking

import (
	"errors"
	"image"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"followcam/internal/log"
	"followcam/pkg/viewport"
)

// State is the lifecycle state of a tracking session.
type State int

const (
	// StateIdle: created, no target ever selected.
	StateIdle State = iota
	// StateAwaitingSelection: a selection has been requested and the
	// session is waiting for a region.
	StateAwaitingSelection
	// StateTracking: the backend has a target and Advance queries it
	// every frame.
	StateTracking
	// StateLost: the backend failed an update. Advance is a no-op until
	// the caller selects again; a lost track is never retried.
	StateLost
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingSelection:
		return "awaiting-selection"
	case StateTracking:
		return "tracking"
	case StateLost:
		return "lost"
	default:
		return "unknown"
	}
}

var (
	// ErrEmptySelection is returned by Select for a degenerate region
	// (zero or negative width or height), typically a cancelled ROI drag.
	ErrEmptySelection = errors.New("tracking: selection region is empty")

	// ErrBackendInit is returned when the tracker backend rejects the
	// selected region.
	ErrBackendInit = errors.New("tracking: backend could not initialize on region")
)

// Result is the outcome of advancing a session by one frame.
type Result struct {
	// Ok reports whether the target was tracked this frame.
	Ok bool
	// Box is the target bounding box in original-frame coordinates.
	// Only valid when Ok.
	Box image.Rectangle
	// Focus is the smoothed camera focus point. Only valid when Ok.
	Focus viewport.Point
}

// Session orchestrates the tracking lifecycle: initialization against the
// backend, per-frame updates feeding the motion smoother, loss detection
// and re-selection. A session is owned by a single driving loop and is not
// safe for concurrent use.
type Session struct {
	cfg      Config
	factory  BackendFactory
	smoother *Smoother

	state   State
	backend Backend
	trackID string
	frames  int
}

// NewSession creates an idle session. factory is invoked once per target
// selection to produce a fresh backend.
func NewSession(cfg Config, factory BackendFactory) *Session {
	return &Session{
		cfg:      cfg,
		factory:  factory,
		smoother: NewSmoother(cfg.Smoothing),
		state:    StateIdle,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// TrackID returns the identifier of the current track, or "" before the
// first successful selection. A new ID is minted per selection so log
// lines from separate tracks are distinguishable.
func (s *Session) TrackID() string {
	return s.trackID
}

// Config returns the session's (clamped) configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// RequestSelection cancels any in-flight track and moves the session to
// AwaitingSelection. The backend handle is dropped immediately; the next
// Select builds a fresh one.
func (s *Session) RequestSelection() {
	s.dropBackend()
	s.state = StateAwaitingSelection
	log.Debug("selection requested", "track", s.trackID)
}

// Select (re)initializes tracking on a target region. It is accepted in
// every state and always discards prior focus history: re-selection
// produces a fresh, unsmoothed starting focus. A degenerate region or a
// backend rejection leaves the session in its prior state.
func (s *Session) Select(frame gocv.Mat, region image.Rectangle) error {
	if region.Dx() <= 0 || region.Dy() <= 0 {
		return ErrEmptySelection
	}

	backend, err := s.factory()
	if err != nil {
		return err
	}
	if !backend.Init(frame, region) {
		backend.Close()
		return ErrBackendInit
	}

	s.dropBackend()
	s.backend = backend
	s.smoother.Reset(viewport.RectCenter(region))
	s.state = StateTracking
	s.trackID = uuid.NewString()
	s.frames = 0

	log.Info("target locked",
		"track", s.trackID,
		"region", region.String(),
		"zoom", s.cfg.ZoomFactor,
		"smoothing", s.cfg.Smoothing)
	return nil
}

// Advance processes one frame. In Tracking it queries the backend and, on
// success, feeds the bounding-box center through the smoother. A single
// backend failure is terminal for the current track: the session drops
// the backend, enters Lost, and every Advance after that returns a
// not-tracked Result without touching the backend until Select is called
// again. Recovery is always caller-driven.
func (s *Session) Advance(frame gocv.Mat) Result {
	if s.state != StateTracking {
		return Result{}
	}

	box, ok := s.backend.Update(frame)
	if !ok {
		log.Warn("tracking lost", "track", s.trackID, "frames", s.frames)
		s.dropBackend()
		s.state = StateLost
		return Result{}
	}

	s.frames++
	focus := s.smoother.Update(viewport.RectCenter(box))
	return Result{Ok: true, Box: box, Focus: focus}
}

// Frames returns how many frames the current track has survived.
func (s *Session) Frames() int {
	return s.frames
}

// Close releases the live backend, if any. The session is unusable after.
func (s *Session) Close() error {
	s.dropBackend()
	return nil
}

func (s *Session) dropBackend() {
	if s.backend != nil {
		s.backend.Close()
		s.backend = nil
	}
}
