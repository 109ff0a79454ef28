//go:build !windows

package config

import (
	"os"

	"golang.org/x/term"
)

// EnableColorOutput reports whether stream is a terminal and colors were not
// disabled with NO_COLOR.
func EnableColorOutput(stream *os.File) bool {
	if colorDisabled() {
		return false
	}
	return term.IsTerminal(int(stream.Fd()))
}
