package workflows

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/PolarWolf314/rollcall/internal/audit"
	"github.com/PolarWolf314/rollcall/internal/configs"
	kerrors "github.com/PolarWolf314/rollcall/internal/errors"
)

const logDateLayout = "2006-01-02"

// LogOptions selects audit entries. Zero values disable each filter.
type LogOptions struct {
	// Limit keeps only the N most recent matches.
	Limit   int
	Reverse bool
	User    string
	// Operations is a comma-separated list such as "add,remove".
	Operations string
	// Since and Until are inclusive YYYY-MM-DD bounds.
	Since string
	Until string
}

type LogResult struct {
	Entries []audit.Entry
	// Total counts every entry in the log before filtering.
	Total int
}

type entryFilter func(audit.Entry) bool

// Log reads and filters the audit log. A missing log yields no entries.
// Malformed dates fail with ErrInvalidDateFormat before the log is read.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filters, err := opts.filters()
	if err != nil {
		return nil, err
	}

	if _, err := configs.InitSettings(); err != nil {
		return nil, fmt.Errorf("initializing settings: %w", err)
	}

	entries, err := audit.ReadEntries()
	if err != nil {
		return nil, fmt.Errorf("%w: reading audit log: %v", kerrors.ErrIO, err)
	}
	total := len(entries)

	entries = slices.DeleteFunc(entries, func(e audit.Entry) bool {
		for _, keep := range filters {
			if !keep(e) {
				return true
			}
		}
		return false
	})

	// The log is chronological, so the most recent N are at the tail.
	if opts.Limit > 0 && len(entries) > opts.Limit {
		entries = entries[len(entries)-opts.Limit:]
	}
	if opts.Reverse {
		slices.Reverse(entries)
	}
	if entries == nil {
		entries = []audit.Entry{}
	}

	return &LogResult{Entries: entries, Total: total}, nil
}

func (o LogOptions) filters() ([]entryFilter, error) {
	var filters []entryFilter

	if o.User != "" {
		filters = append(filters, func(e audit.Entry) bool {
			return strings.EqualFold(e.User, o.User)
		})
	}

	if o.Operations != "" {
		ops := map[string]bool{}
		for _, op := range strings.Split(o.Operations, ",") {
			ops[strings.ToLower(strings.TrimSpace(op))] = true
		}
		filters = append(filters, func(e audit.Entry) bool {
			return ops[strings.ToLower(e.Operation)]
		})
	}

	if o.Since != "" {
		since, err := time.Parse(logDateLayout, o.Since)
		if err != nil {
			return nil, fmt.Errorf("%w: --since date format invalid, use YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
		filters = append(filters, func(e audit.Entry) bool {
			t, ok := parseTimestamp(e.Timestamp)
			return ok && !t.Before(since)
		})
	}

	if o.Until != "" {
		until, err := time.Parse(logDateLayout, o.Until)
		if err != nil {
			return nil, fmt.Errorf("%w: --until date format invalid, use YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
		end := until.AddDate(0, 0, 1)
		filters = append(filters, func(e audit.Entry) bool {
			t, ok := parseTimestamp(e.Timestamp)
			return ok && t.Before(end)
		})
	}

	return filters, nil
}

func parseTimestamp(ts string) (time.Time, bool) {
	t, err := time.Parse(audit.TimestampLayout, ts)
	if err != nil {
		t, err = time.Parse(time.RFC3339, ts)
	}
	return t, err == nil
}

// FormatDateTime renders an audit timestamp as "2006-01-02 15:04:05", or
// returns it unchanged when it cannot be parsed.
func FormatDateTime(ts string) string {
	if t, ok := parseTimestamp(ts); ok {
		return t.Format(time.DateTime)
	}
	return ts
}

// FormatDetails summarises an entry for the human-readable log.
func FormatDetails(e audit.Entry) string {
	switch e.Operation {
	case audit.OpAdd, audit.OpUpdate, audit.OpRemove:
		if e.Row != nil {
			return fmt.Sprintf("row %d, %d rows", *e.Row, e.Count)
		}
	case audit.OpImport:
		return fmt.Sprintf("%d added, %d rows", e.Added, e.Count)
	case audit.OpExport:
		dest := e.OutputPath
		if dest == "" {
			dest = "stdout"
		}
		return fmt.Sprintf("%d rows to %s", e.Count, dest)
	case audit.OpInit:
		var parts []string
		if e.MovedTo != "" {
			parts = append(parts, "unreadable data moved to "+e.MovedTo)
		}
		if e.KeyMovedTo != "" {
			parts = append(parts, "corrupt key moved to "+e.KeyMovedTo)
		}
		return strings.Join(parts, ", ")
	}
	return ""
}
