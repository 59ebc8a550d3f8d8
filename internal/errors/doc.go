// Package errors provides typed error values for rollcall.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
//   - I/O errors: key or data file could not be read or written (ErrIO)
//   - Crypto errors: wrong key or tampered ciphertext (ErrDecryptFailed)
//   - Format errors: decrypted payload is not a record table (ErrInvalidFormat)
//   - Table errors: mutation of a row that does not exist (ErrIndexOutOfRange)
//
// None of these are retried. They are reported upward and the caller decides
// whether to continue or abort.
//
// # Usage
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("%w: reading %s: %v", errors.ErrIO, path, err)
//
// Handle errors in the CLI layer:
//
//	if errors.Is(err, kerrors.ErrDecryptFailed) {
//	    // Show user-friendly message
//	}
package errors
