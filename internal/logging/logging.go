package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Logger writes leveled diagnostics. Everything goes to Out (stderr when
// nil) so command results on stdout, such as an export, stay clean.
type Logger struct {
	Verbose bool
	Debug   bool
	Out     io.Writer
}

func (l Logger) logf(prefix func(string, ...any) string, level, msg string, args ...any) {
	out := l.Out
	if out == nil {
		out = os.Stderr
	}
	fmt.Fprintf(out, prefix("[%s] ", level)+msg+"\n", args...)
}

func (l Logger) Infof(msg string, args ...any) {
	if l.Verbose || l.Debug {
		l.logf(color.GreenString, "info", msg, args...)
	}
}

func (l Logger) Debugf(msg string, args ...any) {
	if l.Debug {
		l.logf(color.CyanString, "debug", msg, args...)
	}
}

func (l Logger) Warnf(msg string, args ...any) {
	if l.Verbose || l.Debug {
		l.WarnfAlways(msg, args...)
	}
}

// WarnfAlways is for problems the user must see, like a world-readable key.
func (l Logger) WarnfAlways(msg string, args ...any) {
	l.logf(color.YellowString, "warn", msg, args...)
}

func (l Logger) Errorf(msg string, args ...any) {
	if l.Debug {
		l.logf(color.RedString, "error", msg, args...)
	}
}

// ErrorfAndReturn logs at error level and returns the same message as an
// error.
func (l Logger) ErrorfAndReturn(msg string, args ...any) error {
	l.Errorf(msg, args...)
	return fmt.Errorf(msg, args...)
}
