// Package workflows provides high-level orchestration for rollcall commands.
//
// Workflows coordinate configs, secrets, store, table and audit to implement
// complete user-facing features. Each workflow handles a single command's
// business logic, independent of CLI concerns like flag parsing, spinners,
// and output formatting.
//
// Every workflow opens a session: settings are loaded, the key is read, and
// the record table is hydrated from the encrypted data file. Mutations are
// persisted before they return, so there is nothing to close.
//
// # Available Workflows
//
//   - Init: creates the key and an empty data file
//   - Add, Update, Remove: mutate one row
//   - List: returns rows, optionally filtered by email or phone
//   - Import, Export: plaintext CSV in and out
//   - Status: reports paths and whether the data file is readable
//   - Log: reads the audit log
//
// # Unreadable Data
//
// If the data file cannot be decrypted, workflows return ErrDecryptFailed.
// Only Init with RecoveryStartFresh moves the file aside and starts over.
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package:
//
//	result, err := workflows.Remove(ctx, opts)
//	if errors.Is(err, kerrors.ErrIndexOutOfRange) {
//	    // Show the valid row range
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter
// and check it before writing.
package workflows
