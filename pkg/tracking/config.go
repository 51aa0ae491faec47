// Package tracking provides the camera-control engine for zoom and follow:
// a clamped configuration, an exponential-smoothing motion filter, and a
// session state machine that drives an external tracker backend.
package tracking

// Clamp ranges and driver defaults.
const (
	MinZoom = 1.0
	MaxZoom = 5.0

	MinSmoothing = 0.0
	MaxSmoothing = 1.0

	DefaultZoom      = 2.0
	DefaultSmoothing = 0.1
)

// Config holds the tunable parameters for a tracking session.
type Config struct {
	// ZoomFactor is the output magnification (1.0 = no zoom). Always in [1, 5].
	ZoomFactor float64

	// Smoothing is the EMA factor for camera movement. Always in [0, 1].
	// 0 freezes the camera entirely; 1 snaps it to every raw detection.
	Smoothing float64
}

// NewConfig builds a Config, silently clamping out-of-range inputs to their
// valid ranges. Clamping rather than rejecting is deliberate: a slightly
// wrong flag value should degrade to the nearest sane behavior, not refuse
// to start.
func NewConfig(zoom, smoothing float64) Config {
	return Config{
		ZoomFactor: clamp(zoom, MinZoom, MaxZoom),
		Smoothing:  clamp(smoothing, MinSmoothing, MaxSmoothing),
	}
}

// DefaultConfig returns the recommended configuration: 2x zoom with heavy
// smoothing, matching a patient human camera operator.
func DefaultConfig() Config {
	return NewConfig(DefaultZoom, DefaultSmoothing)
}

// SteadyConfig returns a configuration for slow, deliberate camera motion.
// Useful for presentations where any camera movement is distracting.
func SteadyConfig() Config {
	return NewConfig(DefaultZoom, 0.05)
}

// ResponsiveConfig returns a configuration that follows fast-moving
// subjects at the cost of some visible camera wobble.
func ResponsiveConfig() Config {
	return NewConfig(DefaultZoom, 0.35)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
