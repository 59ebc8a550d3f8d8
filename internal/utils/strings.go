package utils

import (
	"strings"

	"github.com/PolarWolf314/rollcall/internal/ui"
)

// FormatPaths renders paths as an indented bullet list beginning on a new
// line.
func FormatPaths(paths []string) string {
	var b strings.Builder
	for _, p := range paths {
		b.WriteString("\n    - " + ui.Path.Sprint(p))
	}
	return b.String() + "\n"
}
