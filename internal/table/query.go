package table

import (
	"strings"

	"github.com/PolarWolf314/rollcall/internal/records"
	"golang.org/x/text/cases"
)

// MatchContact returns a predicate that holds when the record's email or
// phone contains term, ignoring case. An empty term matches every record.
func MatchContact(term string) func(records.Record) bool {
	fold := cases.Fold()
	needle := fold.String(term)

	return func(r records.Record) bool {
		if needle == "" {
			return true
		}
		return strings.Contains(fold.String(r.Email), needle) ||
			strings.Contains(fold.String(r.Phone), needle)
	}
}
