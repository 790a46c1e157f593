package util

import (
	"os"

	"github.com/fatih/color"
)

// IsTTY returns true if the given file is a terminal.
func IsTTY(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// InitColor configures color output based on flags and terminal detection.
// Diagnostics go to stderr, so that is the stream that decides.
func InitColor(noColor bool) {
	if noColor || !IsTTY(os.Stderr) {
		color.NoColor = true
	}
}
