package table

import (
	"iter"
	"slices"
	"sync"

	kerrors "github.com/PolarWolf314/rollcall/internal/errors"
	"github.com/PolarWolf314/rollcall/internal/records"
)

// Persister loads and saves the whole record table.
type Persister interface {
	Load() ([]records.Record, error)
	Save(recs []records.Record) error
}

// Table is the authoritative in-memory copy of the record table.
//
// Every mutation is persisted synchronously before it becomes visible: the
// new table is saved first and only committed in memory once Save succeeds,
// so a failed write leaves both memory and disk at the previous state.
// Callers refer to rows by index and never hold record copies across calls.
type Table struct {
	mu    sync.Mutex
	store Persister
	rows  []records.Record
}

// New returns an empty table backed by store. Call Hydrate to load it.
func New(store Persister) *Table {
	return &Table{store: store}
}

// Hydrate replaces the table contents with what the store holds.
// On error the current contents are left untouched.
func (t *Table) Hydrate() error {
	recs, err := t.store.Load()
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = recs
	return nil
}

// Append adds r at the end of the table and persists.
func (t *Table) Append(r records.Record) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := make([]records.Record, len(t.rows), len(t.rows)+1)
	copy(next, t.rows)
	next = append(next, r)

	return t.commit(next)
}

// AppendAll adds recs at the end of the table in order and persists once.
func (t *Table) AppendAll(recs []records.Record) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.commit(slices.Concat(t.rows, recs))
}

// ReplaceAt overwrites the record at index and persists.
func (t *Table) ReplaceAt(index int, r records.Record) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.checkIndex(index); err != nil {
		return err
	}

	next := slices.Clone(t.rows)
	next[index] = r

	return t.commit(next)
}

// RemoveAt deletes the record at index and persists.
func (t *Table) RemoveAt(index int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.checkIndex(index); err != nil {
		return err
	}

	next := slices.Delete(slices.Clone(t.rows), index, index+1)

	return t.commit(next)
}

// Query yields the index and value of every record matching pred, in table
// order. It iterates over a snapshot taken when Query is called, is lazy,
// and can be ranged over any number of times.
func (t *Table) Query(pred func(records.Record) bool) iter.Seq2[int, records.Record] {
	snapshot := t.Records()

	return func(yield func(int, records.Record) bool) {
		for i, r := range snapshot {
			if pred != nil && !pred(r) {
				continue
			}
			if !yield(i, r) {
				return
			}
		}
	}
}

// Len returns the number of records.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rows)
}

// At returns the record at index.
func (t *Table) At(index int) (records.Record, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.checkIndex(index); err != nil {
		return records.Record{}, err
	}
	return t.rows[index], nil
}

// Records returns a copy of all records in table order.
func (t *Table) Records() []records.Record {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.rows)
}

func (t *Table) checkIndex(index int) error {
	if index < 0 || index >= len(t.rows) {
		return &kerrors.IndexError{Index: index, Len: len(t.rows)}
	}
	return nil
}

// commit must be called with t.mu held.
func (t *Table) commit(next []records.Record) error {
	if err := t.store.Save(next); err != nil {
		return err
	}
	t.rows = next
	return nil
}
