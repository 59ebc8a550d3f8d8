package records

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	kerrors "github.com/PolarWolf314/rollcall/internal/errors"
)

// Validate checks that every field is present and in canonical form.
// The store itself never calls it; callers run it before Append or ReplaceAt.
func (r Record) Validate() error {
	for i, value := range r.Fields() {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s", kerrors.ErrMissingField, Header[i])
		}
		if strings.IndexFunc(value, unicode.IsControl) >= 0 {
			return fmt.Errorf("%w: %s contains control characters", kerrors.ErrInvalidField, Header[i])
		}
	}

	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return fmt.Errorf("%w: date %q must be DD-MM-YYYY", kerrors.ErrInvalidField, r.Date)
	}
	if _, err := time.Parse(TimeLayout, r.Time); err != nil {
		return fmt.Errorf("%w: time %q must be HH:MM", kerrors.ErrInvalidField, r.Time)
	}

	return nil
}
