// Package config provides configuration helpers for followcam commands.
package config

import "os"

// Default driver configuration.
const (
	DefaultSource  = "0"
	DefaultTracker = "csrt"
)

// Source returns the video source from the FOLLOWCAM_SOURCE env var.
// Falls back to the provided default if not set.
func Source(defaultSource string) string {
	if src := os.Getenv("FOLLOWCAM_SOURCE"); src != "" {
		return src
	}
	return defaultSource
}

// WebAddr returns the preview dashboard listen address from the
// FOLLOWCAM_WEB_ADDR env var. Empty means the dashboard is disabled.
func WebAddr(defaultAddr string) string {
	if addr := os.Getenv("FOLLOWCAM_WEB_ADDR"); addr != "" {
		return addr
	}
	return defaultAddr
}

// Tracker returns the tracker backend name from the FOLLOWCAM_TRACKER
// env var. Falls back to the provided default if not set.
func Tracker(defaultName string) string {
	if name := os.Getenv("FOLLOWCAM_TRACKER"); name != "" {
		return name
	}
	return defaultName
}
