// Package records defines the attendee Record and its tabular encoding.
//
// A record table is encoded as CSV with the header row
//
//	Name,Email,Phone,Date,Time
//
// followed by one row per record in table order. Values are quoted by
// encoding/csv whenever they contain a comma, quote or newline, so
// Decode(Encode(x)) reproduces x for any record Encode accepts. Encode
// refuses carriage returns, which the CSV reader would normalise, and
// Validate rejects every control character before a record reaches the table.
package records
