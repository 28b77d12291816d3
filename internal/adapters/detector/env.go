// Package detector provides environment detection for log output selection.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents the log rendering mode for the application.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeStyled forces the human-readable styled log output.
	ModeStyled
	// ModeJSON forces machine-readable JSON log output.
	ModeJSON
)

// DetectEnvironment returns the recommended output mode based on the
// environment. It checks if stderr is a TTY and if CI environment
// variables are set.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModeJSON
	}
	return ModeStyled
}

// ResolveMode applies the user override flag to auto-detection.
// userFlag should be one of: "auto", "styled", "json", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "styled":
		return ModeStyled
	case "json":
		return ModeJSON
	default:
		return autoDetected
	}
}
