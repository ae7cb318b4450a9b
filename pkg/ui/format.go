package ui

import (
	"os"
	"strings"

	"github.com/arthur-debert/modlog/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ColorMode selects when command output is colored
type ColorMode int

const (
	// ColorAuto colors output written to a color capable terminal
	ColorAuto ColorMode = iota
	// ColorAlways colors output even when piped
	ColorAlways
	// ColorNever disables colors
	ColorNever
)

// String returns the string representation of the mode
func (m ColorMode) String() string {
	switch m {
	case ColorAuto:
		return "auto"
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "unknown"
	}
}

// ParseColorMode parses a --color flag value
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return ColorAuto, nil
	case "always", "yes", "force":
		return ColorAlways, nil
	case "never", "no", "none":
		return ColorNever, nil
	default:
		return ColorAuto, errors.Newf(errors.ErrInvalidInput, "unknown color mode: %s", s)
	}
}

// Enabled resolves the mode for output
func (m ColorMode) Enabled(output *os.File) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return DetectColor(output)
	}
}

// DetectColor reports whether output is a terminal that supports colors
func DetectColor(output *os.File) bool {
	// Check if NO_COLOR is set
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// Check if we're being piped or redirected
	if output == nil || (!isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd())) {
		return false
	}

	// Check terminal color support
	return termenv.NewOutput(output).ColorProfile() != termenv.Ascii
}
