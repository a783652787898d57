package util

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether r is an interactive terminal.  Readers
// that are not *os.File (pipes wrapped in buffers, test fixtures) are
// never terminals.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
