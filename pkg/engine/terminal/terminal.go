// Package terminal answers questions about the process's output terminal.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// Fallback size used when the output is not a terminal
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// Size returns the width and height of the terminal behind f, or the
// defaults when f is not a terminal
func Size(f *os.File) (width, height int) {
	if f == nil {
		return DefaultWidth, DefaultHeight
	}
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// GetSize returns the size of the terminal on stdout
func GetSize() (width, height int) {
	return Size(os.Stdout)
}

// GetWidth returns the stdout terminal width
func GetWidth() int {
	width, _ := GetSize()
	return width
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// ColorEnabled reports whether colored output should be written to f.
// NO_COLOR (any value) and a non-terminal f both turn color off.
func ColorEnabled(f *os.File) bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	return IsTerminal(f)
}
