package tracking

import (
	"errors"
	"image"
	"testing"

	"gocv.io/x/gocv"

	"followcam/pkg/viewport"
)

// mockBackend records calls and plays back scripted update results
type mockBackend struct {
	initCalls   int
	updateCalls int
	closeCalls  int

	initOK  bool
	updates []mockUpdate
}

type mockUpdate struct {
	box image.Rectangle
	ok  bool
}

func (m *mockBackend) Init(_ gocv.Mat, _ image.Rectangle) bool {
	m.initCalls++
	return m.initOK
}

func (m *mockBackend) Update(_ gocv.Mat) (image.Rectangle, bool) {
	m.updateCalls++
	if len(m.updates) == 0 {
		return image.Rectangle{}, false
	}
	u := m.updates[0]
	m.updates = m.updates[1:]
	return u.box, u.ok
}

func (m *mockBackend) Close() error {
	m.closeCalls++
	return nil
}

func newTestSession(backend *mockBackend) *Session {
	return NewSession(DefaultConfig(), func() (Backend, error) {
		return backend, nil
	})
}

// frame is a zero Mat: the session forwards frames opaquely and the mock
// never dereferences them, so no OpenCV allocation is needed.
var frame gocv.Mat

func TestSession_StartsIdle(t *testing.T) {
	s := newTestSession(&mockBackend{})
	defer s.Close()

	if s.State() != StateIdle {
		t.Errorf("state = %v, want idle", s.State())
	}
	if res := s.Advance(frame); res.Ok {
		t.Error("Advance in idle reported success")
	}
}

func TestSession_SelectRejectsDegenerateRegion(t *testing.T) {
	backend := &mockBackend{initOK: true}
	s := newTestSession(backend)
	defer s.Close()

	err := s.Select(frame, image.Rect(10, 10, 10, 50)) // zero width

	if !errors.Is(err, ErrEmptySelection) {
		t.Errorf("err = %v, want ErrEmptySelection", err)
	}
	if s.State() != StateIdle {
		t.Errorf("state = %v, want idle unchanged", s.State())
	}
	if backend.initCalls != 0 {
		t.Errorf("backend was initialized %d times for a degenerate region", backend.initCalls)
	}
}

func TestSession_SelectReportsBackendRejection(t *testing.T) {
	backend := &mockBackend{initOK: false}
	s := newTestSession(backend)
	defer s.Close()

	err := s.Select(frame, image.Rect(10, 10, 110, 110))

	if !errors.Is(err, ErrBackendInit) {
		t.Errorf("err = %v, want ErrBackendInit", err)
	}
	if s.State() != StateIdle {
		t.Errorf("state = %v, want idle unchanged", s.State())
	}
	if backend.closeCalls != 1 {
		t.Errorf("rejected backend closed %d times, want 1", backend.closeCalls)
	}
}

func TestSession_SelectStartsTrackingAtRegionCenter(t *testing.T) {
	backend := &mockBackend{initOK: true}
	s := newTestSession(backend)
	defer s.Close()

	if err := s.Select(frame, image.Rect(100, 100, 200, 160)); err != nil {
		t.Fatalf("Select: %v", err)
	}

	if s.State() != StateTracking {
		t.Errorf("state = %v, want tracking", s.State())
	}
	if s.TrackID() == "" {
		t.Error("no track ID minted")
	}

	// First advance with the target still at the selection: focus is the
	// exact region center, no blending with anything
	backend.updates = []mockUpdate{{box: image.Rect(100, 100, 200, 160), ok: true}}
	res := s.Advance(frame)
	if !res.Ok {
		t.Fatal("Advance reported failure")
	}
	if !pointEquals(res.Focus, viewport.Pt(150, 130)) {
		t.Errorf("focus = %v, want (150,130)", res.Focus)
	}
}

func TestSession_AdvanceSmoothsTowardTarget(t *testing.T) {
	backend := &mockBackend{
		initOK: true,
		updates: []mockUpdate{
			{box: image.Rect(150, 50, 250, 150), ok: true}, // center (200,100)
		},
	}
	s := NewSession(NewConfig(2.0, 0.1), func() (Backend, error) { return backend, nil })
	defer s.Close()

	if err := s.Select(frame, image.Rect(50, 50, 150, 150)); err != nil { // center (100,100)
		t.Fatalf("Select: %v", err)
	}

	res := s.Advance(frame)
	if !res.Ok {
		t.Fatal("Advance reported failure")
	}
	if !pointEquals(res.Focus, viewport.Pt(110, 100)) {
		t.Errorf("focus = %v, want (110,100)", res.Focus)
	}
	if res.Box != image.Rect(150, 50, 250, 150) {
		t.Errorf("box = %v, want the backend's raw box", res.Box)
	}
}

func TestSession_LossIsTerminalUntilReselect(t *testing.T) {
	backend := &mockBackend{
		initOK: true,
		updates: []mockUpdate{
			{box: image.Rect(0, 0, 50, 50), ok: true},
			{ok: false},
		},
	}
	s := newTestSession(backend)
	defer s.Close()

	if err := s.Select(frame, image.Rect(0, 0, 50, 50)); err != nil {
		t.Fatalf("Select: %v", err)
	}

	s.Advance(frame) // ok
	res := s.Advance(frame)
	if res.Ok {
		t.Fatal("Advance reported success on scripted failure")
	}
	if s.State() != StateLost {
		t.Errorf("state = %v, want lost", s.State())
	}
	if backend.closeCalls != 1 {
		t.Errorf("backend closed %d times on loss, want 1", backend.closeCalls)
	}

	// Lost is terminal: further advances never re-query the backend
	queriesAtLoss := backend.updateCalls
	for i := 0; i < 5; i++ {
		if res := s.Advance(frame); res.Ok {
			t.Fatal("Advance reported success while lost")
		}
	}
	if backend.updateCalls != queriesAtLoss {
		t.Errorf("backend queried %d more times while lost", backend.updateCalls-queriesAtLoss)
	}
}

func TestSession_ReselectAfterLossResetsFocus(t *testing.T) {
	first := &mockBackend{initOK: true, updates: []mockUpdate{{ok: false}}}
	second := &mockBackend{
		initOK:  true,
		updates: []mockUpdate{{box: image.Rect(600, 400, 700, 500), ok: true}},
	}
	backends := []*mockBackend{first, second}
	s := NewSession(NewConfig(2.0, 0.1), func() (Backend, error) {
		b := backends[0]
		backends = backends[1:]
		return b, nil
	})
	defer s.Close()

	if err := s.Select(frame, image.Rect(0, 0, 100, 100)); err != nil {
		t.Fatalf("first Select: %v", err)
	}
	firstTrack := s.TrackID()
	s.Advance(frame) // loses immediately

	if err := s.Select(frame, image.Rect(600, 400, 700, 500)); err != nil {
		t.Fatalf("second Select: %v", err)
	}
	if s.State() != StateTracking {
		t.Errorf("state = %v, want tracking", s.State())
	}
	if s.TrackID() == firstTrack {
		t.Error("re-selection reused the previous track ID")
	}

	// Focus restarts at the new region center: no smoothing against the
	// discarded first track
	res := s.Advance(frame)
	if !res.Ok {
		t.Fatal("Advance reported failure")
	}
	if !pointEquals(res.Focus, viewport.Pt(650, 450)) {
		t.Errorf("focus = %v, want fresh (650,450)", res.Focus)
	}
}

func TestSession_RequestSelectionCancelsTrack(t *testing.T) {
	backend := &mockBackend{
		initOK:  true,
		updates: []mockUpdate{{box: image.Rect(0, 0, 50, 50), ok: true}},
	}
	s := newTestSession(backend)
	defer s.Close()

	if err := s.Select(frame, image.Rect(0, 0, 50, 50)); err != nil {
		t.Fatalf("Select: %v", err)
	}
	s.RequestSelection()

	if s.State() != StateAwaitingSelection {
		t.Errorf("state = %v, want awaiting-selection", s.State())
	}
	if backend.closeCalls != 1 {
		t.Errorf("backend closed %d times, want 1", backend.closeCalls)
	}
	if res := s.Advance(frame); res.Ok {
		t.Error("Advance reported success while awaiting selection")
	}
	if backend.updateCalls != 0 {
		t.Errorf("cancelled backend was queried %d times", backend.updateCalls)
	}
}

func TestSession_FactoryErrorSurfaces(t *testing.T) {
	factoryErr := errors.New("no such tracker")
	s := NewSession(DefaultConfig(), func() (Backend, error) { return nil, factoryErr })
	defer s.Close()

	err := s.Select(frame, image.Rect(0, 0, 100, 100))
	if !errors.Is(err, factoryErr) {
		t.Errorf("err = %v, want factory error", err)
	}
	if s.State() != StateIdle {
		t.Errorf("state = %v, want idle unchanged", s.State())
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "idle"},
		{StateAwaitingSelection, "awaiting-selection"},
		{StateTracking, "tracking"},
		{StateLost, "lost"},
		{State(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
