package workflows

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/PolarWolf314/rollcall/internal/configs"
	"github.com/PolarWolf314/rollcall/internal/secrets"
	"github.com/PolarWolf314/rollcall/internal/store"
)

// StatusOptions configures the status workflow.
type StatusOptions struct {
	// No options currently needed - included for consistency.
}

// StatusResult contains the outcome of a status operation.
type StatusResult struct {
	ConfigPath   string
	DataPath     string
	KeyPath      string
	AuditLogPath string

	// StoreUUID is empty until init has run.
	StoreUUID string

	DataExists bool
	KeyExists  bool

	// KeyMode is the key file's permission bits; KeyInsecure is true when
	// they grant access beyond the owner.
	KeyMode     fs.FileMode
	KeyInsecure bool

	// Readable is true if the data file decrypted and decoded.
	Readable bool

	// ReadError is why the data file could not be read, if it exists.
	ReadError error

	// RecordCount is the number of records when Readable.
	RecordCount int
}

// Status reports where the store lives and whether it can be read. It never
// creates or modifies files.
func Status(ctx context.Context, opts StatusOptions) (*StatusResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	config, err := configs.InitSettings()
	if err != nil {
		return nil, fmt.Errorf("initializing settings: %w", err)
	}

	settings := configs.RollcallSettings
	result := &StatusResult{
		ConfigPath:   settings.ConfigPath,
		DataPath:     settings.DataFilePath(),
		KeyPath:      settings.KeyFilePath(),
		AuditLogPath: settings.AuditLogPath(),
		StoreUUID:    config.Store.UUID,
	}

	if result.KeyExists, err = secrets.KeyExists(result.KeyPath); err != nil {
		return nil, err
	}
	if result.DataExists, err = store.New(result.DataPath, nil).Exists(); err != nil {
		return nil, err
	}

	if result.KeyExists {
		if result.KeyMode, result.KeyInsecure, err = secrets.CheckKeyPermissions(result.KeyPath); err != nil {
			return nil, err
		}
	}

	if !result.DataExists || !result.KeyExists {
		return result, nil
	}

	s, err := openSession(ctx, openOptions{})
	if err != nil {
		result.ReadError = err
		return result, nil
	}

	result.Readable = true
	result.RecordCount = s.table.Len()
	return result, nil
}
