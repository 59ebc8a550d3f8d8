// Package store provides whole-file encrypted persistence of the record table.
//
// Every Save encodes the complete table, seals it with a fresh nonce and
// replaces the data file through a temporary file and a rename. There are no
// incremental writes: one mutation costs one full encrypt and rewrite, which
// is fine for the few thousand rows an attendee list holds.
//
// There is no file locking. Two processes saving to the same path race and
// the last rename wins.
//
// # Errors
//
//   - ErrIO: the data file or its directory could not be read or written
//   - ErrDecryptFailed: wrong key, corrupt key, or tampered ciphertext
//   - ErrInvalidFormat: the plaintext is not a record table
package store
