// Package table holds the live record table between disk writes.
//
// The table is hydrated once from a Persister at startup and flushed back
// after every Append, ReplaceAt and RemoveAt. There is no write buffering:
// each mutation is one full save. Rows are addressed by their current index,
// and Query yields that index alongside each match so a caller can act on a
// filtered row.
package table
