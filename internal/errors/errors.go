package errors

import (
	"errors"
	"fmt"
)

// I/O errors indicate the key or data file could not be accessed.
var (
	// ErrIO indicates a filesystem failure while reading or writing the key or data file.
	ErrIO = errors.New("file access failed")
)

// Key errors indicate issues with the encryption key.
var (
	// ErrKeyNotFound indicates the key file is missing while encrypted data exists.
	ErrKeyNotFound = errors.New("encryption key not found")

	// ErrInvalidKeyLength indicates the symmetric key has an unexpected length.
	ErrInvalidKeyLength = errors.New("invalid symmetric key length")
)

// Cryptographic errors indicate failures during encryption or decryption operations.
var (
	// ErrEncryptFailed indicates the record table could not be encrypted.
	ErrEncryptFailed = errors.New("failed to encrypt data file")

	// ErrDecryptFailed indicates the data file could not be decrypted with the
	// current key, or its contents were tampered with.
	ErrDecryptFailed = errors.New("failed to decrypt data file")
)

// Format errors indicate the decrypted payload is not a valid record table.
var (
	// ErrInvalidFormat indicates the decrypted data does not match the expected header or shape.
	ErrInvalidFormat = errors.New("invalid record table format")
)

// Store state errors indicate issues with the store's lifecycle.
var (
	// ErrStoreNotInitialized indicates no data file exists yet.
	ErrStoreNotInitialized = errors.New("store has not been initialized")
)

// Table errors indicate an invalid mutation of the record table.
var (
	// ErrIndexOutOfRange indicates a row index outside the current table bounds.
	ErrIndexOutOfRange = errors.New("row index out of range")
)

// Export errors indicate an export destination that would damage the store.
var (
	// ErrOutputIsStoreFile indicates an export path that resolves to the data
	// file, the key file or the audit log.
	ErrOutputIsStoreFile = errors.New("export would overwrite a store file")
)

// Validation errors indicate caller input that must not reach the store.
var (
	// ErrMissingField indicates a required record field is empty.
	ErrMissingField = errors.New("required field is empty")

	// ErrInvalidField indicates a record field is not in its canonical form.
	ErrInvalidField = errors.New("invalid field value")

	// ErrInvalidDateFormat indicates a date filter could not be parsed.
	ErrInvalidDateFormat = errors.New("invalid date format")
)

// IndexError reports a row index outside [0, Len).
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: row %d, table has %d rows", ErrIndexOutOfRange, e.Index, e.Len)
}

// Unwrap lets errors.Is match ErrIndexOutOfRange.
func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}
