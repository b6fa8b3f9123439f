package utils

import (
	"os"

	"github.com/logrusorgru/aurora"
	"golang.org/x/term"
)

func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewStyler colours output only when stdout is a terminal.
func NewStyler() aurora.Aurora {
	return aurora.NewAurora(IsTerminal(os.Stdout))
}
