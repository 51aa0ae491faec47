package tracking

import (
	"math"
	"testing"

	"followcam/pkg/viewport"
)

const floatTolerance = 1e-9

func pointEquals(a, b viewport.Point) bool {
	return math.Abs(a.X-b.X) < floatTolerance && math.Abs(a.Y-b.Y) < floatTolerance
}

func TestSmoother_ResetBypassesBlending(t *testing.T) {
	s := NewSmoother(0.1)
	s.Update(viewport.Pt(500, 500)) // establish unrelated history

	s.Reset(viewport.Pt(100, 100))

	if !pointEquals(s.Focus(), viewport.Pt(100, 100)) {
		t.Errorf("focus after reset = %v, want (100,100)", s.Focus())
	}

	// Updating with the reset value must not move the focus at all
	got := s.Update(viewport.Pt(100, 100))
	if !pointEquals(got, viewport.Pt(100, 100)) {
		t.Errorf("focus after update with same center = %v, want (100,100)", got)
	}
}

func TestSmoother_EMAStep(t *testing.T) {
	s := NewSmoother(0.1)
	s.Reset(viewport.Pt(100, 100))

	got := s.Update(viewport.Pt(200, 100))

	// 0.1*200 + 0.9*100 = 110
	if !pointEquals(got, viewport.Pt(110, 100)) {
		t.Errorf("focus = %v, want (110,100)", got)
	}
}

func TestSmoother_FirstUpdateTakenAsIs(t *testing.T) {
	s := NewSmoother(0.1)

	got := s.Update(viewport.Pt(320, 240))

	if !pointEquals(got, viewport.Pt(320, 240)) {
		t.Errorf("first update = %v, want (320,240) exactly", got)
	}
}

func TestSmoother_ZeroFactorFreezesCamera(t *testing.T) {
	s := NewSmoother(0)
	s.Reset(viewport.Pt(100, 100))

	for i := 0; i < 50; i++ {
		s.Update(viewport.Pt(900, 700))
	}

	if !pointEquals(s.Focus(), viewport.Pt(100, 100)) {
		t.Errorf("focus moved to %v with smoothing factor 0", s.Focus())
	}
}

func TestSmoother_UnityFactorSnaps(t *testing.T) {
	s := NewSmoother(1)
	s.Reset(viewport.Pt(100, 100))

	got := s.Update(viewport.Pt(640, 360))

	if !pointEquals(got, viewport.Pt(640, 360)) {
		t.Errorf("focus = %v, want raw center exactly", got)
	}
}

func TestSmoother_ConvergesToStationaryTarget(t *testing.T) {
	factors := []float64{0.05, 0.1, 0.5, 0.9}
	target := viewport.Pt(800, 450)

	for _, factor := range factors {
		s := NewSmoother(factor)
		s.Reset(viewport.Pt(0, 0))

		// EMA error decays by (1-factor) per step; ~10/factor steps is
		// plenty to get within a pixel from anywhere on a 4K frame.
		steps := int(10 / factor)
		for i := 0; i < steps; i++ {
			s.Update(target)
		}

		if math.Abs(s.Focus().X-target.X) > 1 || math.Abs(s.Focus().Y-target.Y) > 1 {
			t.Errorf("factor %v: focus %v has not converged to %v after %d steps",
				factor, s.Focus(), target, steps)
		}
	}
}

func TestSmoother_ClampsFactor(t *testing.T) {
	s := NewSmoother(7.5) // clamped to 1: pure snap
	s.Reset(viewport.Pt(0, 0))

	got := s.Update(viewport.Pt(100, 100))
	if !pointEquals(got, viewport.Pt(100, 100)) {
		t.Errorf("focus = %v, want snap to (100,100)", got)
	}
}
