package tracking

import "followcam/pkg/viewport"

// Smoother converts noisy raw target centers into stable camera motion
// using a first-order exponential moving average. It holds exactly one
// piece of state: the filtered focus point.
type Smoother struct {
	factor float64
	focus  viewport.Point
	primed bool
}

// NewSmoother creates a smoother with the given EMA factor, clamped to [0, 1].
func NewSmoother(factor float64) *Smoother {
	return &Smoother{factor: clamp(factor, MinSmoothing, MaxSmoothing)}
}

// Reset hard-sets the focus point, bypassing smoothing. Called on every
// (re)initialization so a fresh track never blends with stale history.
func (s *Smoother) Reset(center viewport.Point) {
	s.focus = center
	s.primed = true
}

// Update blends a raw target center into the focus point and returns the
// new focus: factor*raw + (1-factor)*previous. The first sample after
// construction is taken as-is; there is no previous value to blend with.
func (s *Smoother) Update(raw viewport.Point) viewport.Point {
	if !s.primed {
		s.Reset(raw)
		return s.focus
	}
	s.focus = viewport.Point{
		X: s.factor*raw.X + (1-s.factor)*s.focus.X,
		Y: s.factor*raw.Y + (1-s.factor)*s.focus.Y,
	}
	return s.focus
}

// Focus returns the current filtered focus point.
func (s *Smoother) Focus() viewport.Point {
	return s.focus
}
