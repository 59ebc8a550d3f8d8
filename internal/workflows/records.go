package workflows

import (
	"context"

	"github.com/PolarWolf314/rollcall/internal/audit"
	"github.com/PolarWolf314/rollcall/internal/records"
	"github.com/PolarWolf314/rollcall/internal/table"
)

// AddOptions configures the add workflow.
type AddOptions struct {
	// Record is the attendee to append. It is trimmed and validated first.
	Record records.Record
}

// AddResult contains the outcome of an add operation.
type AddResult struct {
	// Row is the index of the new record.
	Row int

	// Record is the record as stored.
	Record records.Record

	// Count is the number of records after the add.
	Count int
}

// Add validates a record and appends it to the table.
//
// Returns ErrMissingField or ErrInvalidField if the record is not valid;
// nothing is written in that case.
func Add(ctx context.Context, opts AddOptions) (*AddResult, error) {
	r := records.Normalize(opts.Record)
	if err := r.Validate(); err != nil {
		return nil, err
	}

	s, err := openSession(ctx, openOptions{})
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.table.Append(r); err != nil {
		return nil, err
	}

	result := &AddResult{Row: s.table.Len() - 1, Record: r, Count: s.table.Len()}

	entry := audit.NewEntry(audit.OpAdd, s.storeUUID())
	entry.Row = audit.RowRef(result.Row)
	entry.Count = result.Count
	audit.Log(entry)

	return result, nil
}

// UpdateOptions configures the update workflow.
type UpdateOptions struct {
	// Row is the index of the record to update.
	Row int

	// Changes holds the new field values. Empty fields keep the current value.
	Changes records.Record
}

// UpdateResult contains the outcome of an update operation.
type UpdateResult struct {
	Row      int
	Previous records.Record
	Record   records.Record
}

// Update overwrites the record at opts.Row, keeping fields left empty in
// opts.Changes.
//
// Returns ErrIndexOutOfRange if the row does not exist.
func Update(ctx context.Context, opts UpdateOptions) (*UpdateResult, error) {
	s, err := openSession(ctx, openOptions{})
	if err != nil {
		return nil, err
	}

	previous, err := s.table.At(opts.Row)
	if err != nil {
		return nil, err
	}

	r := records.Normalize(merge(previous, records.Normalize(opts.Changes)))
	if err := r.Validate(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.table.ReplaceAt(opts.Row, r); err != nil {
		return nil, err
	}

	entry := audit.NewEntry(audit.OpUpdate, s.storeUUID())
	entry.Row = audit.RowRef(opts.Row)
	entry.Count = s.table.Len()
	audit.Log(entry)

	return &UpdateResult{Row: opts.Row, Previous: previous, Record: r}, nil
}

// merge returns base with every non-empty field of changes applied.
func merge(base, changes records.Record) records.Record {
	fields := base.Fields()
	for i, v := range changes.Fields() {
		if v != "" {
			fields[i] = v
		}
	}
	return records.FromFields(fields)
}

// RemoveOptions configures the remove workflow.
type RemoveOptions struct {
	// Row is the index of the record to remove.
	Row int

	// Confirm, if set, is called with the record about to be removed.
	// Returning false cancels the removal.
	Confirm func(records.Record) bool
}

// RemoveResult contains the outcome of a remove operation.
type RemoveResult struct {
	Row     int
	Removed records.Record
	Count   int

	// Cancelled is true if Confirm declined the removal.
	Cancelled bool
}

// Remove deletes the record at opts.Row. Later rows shift down by one.
//
// Returns ErrIndexOutOfRange if the row does not exist.
func Remove(ctx context.Context, opts RemoveOptions) (*RemoveResult, error) {
	s, err := openSession(ctx, openOptions{})
	if err != nil {
		return nil, err
	}

	removed, err := s.table.At(opts.Row)
	if err != nil {
		return nil, err
	}

	result := &RemoveResult{Row: opts.Row, Removed: removed, Count: s.table.Len()}

	if opts.Confirm != nil && !opts.Confirm(removed) {
		result.Cancelled = true
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.table.RemoveAt(opts.Row); err != nil {
		return nil, err
	}
	result.Count = s.table.Len()

	entry := audit.NewEntry(audit.OpRemove, s.storeUUID())
	entry.Row = audit.RowRef(opts.Row)
	entry.Count = result.Count
	audit.Log(entry)

	return result, nil
}

// ListOptions configures the list workflow.
type ListOptions struct {
	// Search filters rows by case-insensitive substring of email or phone.
	// Empty lists every row.
	Search string
}

// Row is a record with its index in the table.
type Row struct {
	Index  int            `json:"row"`
	Record records.Record `json:"record"`
}

// ListResult contains the outcome of a list operation.
type ListResult struct {
	// Rows are the matching records in table order.
	Rows []Row

	// Total is the number of records in the table before filtering.
	Total int
}

// List returns the records matching opts.Search together with their row
// indexes, which update and remove accept.
func List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	s, err := openSession(ctx, openOptions{})
	if err != nil {
		return nil, err
	}

	result := &ListResult{Rows: []Row{}, Total: s.table.Len()}
	for i, r := range s.table.Query(table.MatchContact(opts.Search)) {
		result.Rows = append(result.Rows, Row{Index: i, Record: r})
	}

	return result, nil
}
