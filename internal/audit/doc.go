// Package audit keeps a JSON Lines trail of changes to the attendee list.
//
// Every mutation (init, add, update, remove, import) and every plaintext
// export appends one line to <data_dir>/audit.jsonl recording when, who,
// which store and which row. Attendee details are never written.
//
//	entry := audit.NewEntry(audit.OpRemove, cfg.Store.UUID)
//	entry.Row = audit.RowRef(3)
//	entry.Count = tbl.Len()
//	audit.Log(entry)
//
// Logging is best-effort: a failed write is dropped and the operation it
// describes still succeeds.
package audit
