package workflows

import (
	"context"

	"github.com/PolarWolf314/rollcall/internal/audit"
	"github.com/PolarWolf314/rollcall/internal/configs"
)

// InitOptions configures the init workflow.
type InitOptions struct {
	// Recovery decides what happens when an existing data file cannot be
	// decrypted. Defaults to RecoveryAbort.
	Recovery RecoveryPolicy
}

// InitResult contains the outcome of an init operation.
type InitResult struct {
	// StoreUUID identifies this store in the audit log.
	StoreUUID string

	// DataPath is the location of the encrypted data file.
	DataPath string

	// KeyPath is the location of the key file.
	KeyPath string

	// KeyCreated is true if a new key was generated.
	KeyCreated bool

	// StoreCreated is true if a new, empty data file was written.
	StoreCreated bool

	// MovedTo is where an unreadable data file was moved, if any.
	MovedTo string

	// KeyMovedTo is where a key file of the wrong length was moved, if any.
	KeyMovedTo string

	// RecordCount is the number of records in the table after init.
	RecordCount int
}

// Init creates the key and an empty encrypted data file if they do not exist
// yet, then verifies the data file decrypts. Running it again on a healthy
// store changes nothing.
//
// Returns ErrKeyNotFound if the data file exists without its key, and
// ErrInvalidKeyLength for a corrupt key unless opts.Recovery is
// RecoveryStartFresh.
// Returns ErrDecryptFailed or ErrInvalidFormat if the data file is
// unreadable and opts.Recovery is RecoveryAbort.
func Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	s, err := openSession(ctx, openOptions{create: true, recovery: opts.Recovery})
	if err != nil {
		return nil, err
	}

	result := &InitResult{
		StoreUUID:    s.storeUUID(),
		DataPath:     s.store.Path(),
		KeyPath:      configs.RollcallSettings.KeyFilePath(),
		KeyCreated:   s.keyCreated,
		StoreCreated: s.storeCreated,
		MovedTo:      s.movedTo,
		KeyMovedTo:   s.keyMovedTo,
		RecordCount:  s.table.Len(),
	}

	if s.storeCreated || s.movedTo != "" || s.keyMovedTo != "" {
		entry := audit.NewEntry(audit.OpInit, s.storeUUID())
		entry.MovedTo = s.movedTo
		entry.KeyMovedTo = s.keyMovedTo
		audit.Log(entry)
	}

	return result, nil
}
