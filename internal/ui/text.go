package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter renders one semantic role of CLI output. With color disabled the
// plain decoration (open/close) is used instead.
type Formatter struct {
	color *color.Color
	open  string
	close string
}

func (f Formatter) render(text string) string {
	if colorDisabled() {
		return f.open + text + f.close
	}
	return f.color.Sprint(text)
}

// Sprint renders the operands as fmt.Sprint would.
func (f Formatter) Sprint(a ...any) string {
	return f.render(fmt.Sprint(a...))
}

// Sprintf renders according to a format specifier.
func (f Formatter) Sprintf(format string, a ...any) string {
	return f.render(fmt.Sprintf(format, a...))
}

// EnsureNewline appends a trailing newline when s lacks one.
func EnsureNewline(s string) string {
	if s == "" || s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}

// colorDisabled honours NO_COLOR (https://no-color.org/) and fatih/color's
// own terminal detection.
func colorDisabled() bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return true
	}
	return color.NoColor
}

func plain(attr color.Attribute) Formatter {
	return Formatter{color: color.New(attr)}
}

func wrapped(attr color.Attribute, open, close string) Formatter {
	return Formatter{color: color.New(attr), open: open, close: close}
}

var (
	// Command is a rollcall invocation the user can copy, `quoted` without color.
	Command = wrapped(color.FgYellow, "`", "`")
	// Path is a file or directory on disk.
	Path = plain(color.FgYellow)
	// Flag is a command line flag such as --yes.
	Flag = plain(color.FgYellow)

	Success = plain(color.FgGreen)
	Error   = plain(color.FgRed)
	Warning = plain(color.FgYellow)

	// Hint marks a suggested next step.
	Hint = plain(color.FgCyan)
	// Value is user data echoed back (names, row numbers, counts), 'quoted'
	// without color.
	Value = wrapped(color.FgCyan, "'", "'")
	// Dim is secondary text, (parenthesised) without color.
	Dim = wrapped(color.FgHiBlack, "(", ")")
	// Heading is a table column title.
	Heading = plain(color.Bold)
)
