package utils

import (
	"os"

	"golang.org/x/term"
)

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// StdinIsTerminal reports whether a user can answer prompts.
func StdinIsTerminal() bool { return isTerminal(os.Stdin) }

// StdoutIsTerminal reports whether progress output such as spinners is visible.
func StdoutIsTerminal() bool { return isTerminal(os.Stdout) }
