package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/rollcall/internal/audit"
	"github.com/PolarWolf314/rollcall/internal/records"
)

// ImportOptions configures the import workflow.
type ImportOptions struct {
	// Data is a plaintext CSV table with the standard header, as written by
	// Export.
	Data []byte

	// DryRun validates the data without changing the table.
	DryRun bool
}

// ImportResult contains the outcome of an import operation.
type ImportResult struct {
	// Added is the number of records appended (or that would be, on dry-run).
	Added int

	// Count is the number of records in the table afterwards.
	Count int

	DryRun bool
}

// Import appends every record of a plaintext CSV table to the store in one
// write. Either all records are added or none are.
//
// Returns ErrInvalidFormat if the data is not a record table.
// Returns ErrMissingField or ErrInvalidField naming the first bad row.
func Import(ctx context.Context, opts ImportOptions) (*ImportResult, error) {
	incoming, err := records.Decode(opts.Data)
	if err != nil {
		return nil, err
	}

	for i := range incoming {
		incoming[i] = records.Normalize(incoming[i])
		if err := incoming[i].Validate(); err != nil {
			// Data rows start on line 2, after the header.
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
	}

	s, err := openSession(ctx, openOptions{})
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Added: len(incoming), Count: s.table.Len(), DryRun: opts.DryRun}
	if opts.DryRun || len(incoming) == 0 {
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.table.AppendAll(incoming); err != nil {
		return nil, err
	}
	result.Count = s.table.Len()

	entry := audit.NewEntry(audit.OpImport, s.storeUUID())
	entry.Added = result.Added
	entry.Count = result.Count
	audit.Log(entry)

	return result, nil
}
