package workflows

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/PolarWolf314/rollcall/internal/configs"
	kerrors "github.com/PolarWolf314/rollcall/internal/errors"
	"github.com/PolarWolf314/rollcall/internal/secrets"
	"github.com/PolarWolf314/rollcall/internal/store"
	"github.com/PolarWolf314/rollcall/internal/table"
)

// RecoveryPolicy decides what happens when the data file cannot be read
// with the current key.
type RecoveryPolicy int

const (
	// RecoveryAbort returns the decryption or format error. Nothing on disk
	// is touched.
	RecoveryAbort RecoveryPolicy = iota

	// RecoveryStartFresh moves the unreadable data file aside and starts a
	// new, empty table. A key file of the wrong length is moved aside too and
	// replaced. Only Init accepts it.
	RecoveryStartFresh
)

// CorruptSuffixLayout names files moved aside by RecoveryStartFresh:
// attendees.csv.corrupt-20250101T090000Z.
const CorruptSuffixLayout = "20060102T150405Z"

// session is an opened store: key loaded, table hydrated.
type session struct {
	config *configs.Config
	store  *store.FileStore
	table  *table.Table

	keyCreated   bool
	storeCreated bool
	movedTo      string
	keyMovedTo   string
}

type openOptions struct {
	// create allows generating the key and an empty data file.
	create   bool
	recovery RecoveryPolicy
}

// openSession loads settings, the key and the data file.
//
// Without create, a missing data file is ErrStoreNotInitialized and a
// missing key is ErrKeyNotFound. A key is never generated while a data file
// exists, since a new key cannot decrypt it. A key of the wrong length is
// ErrInvalidKeyLength and, unless the policy is RecoveryStartFresh, nothing
// on disk is changed.
func openSession(ctx context.Context, opts openOptions) (*session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	config, err := configs.InitSettings()
	if err != nil {
		return nil, fmt.Errorf("initializing settings: %w", err)
	}

	settings := configs.RollcallSettings
	dataPath := settings.DataFilePath()
	keyPath := settings.KeyFilePath()

	keyExists, err := secrets.KeyExists(keyPath)
	if err != nil {
		return nil, err
	}
	dataExists, err := store.New(dataPath, nil).Exists()
	if err != nil {
		return nil, err
	}

	s := &session{}

	if !opts.create {
		if !dataExists {
			return nil, fmt.Errorf("%w: no data file at %s", kerrors.ErrStoreNotInitialized, dataPath)
		}
		if !keyExists {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrKeyNotFound, keyPath)
		}
	}

	if dataExists && !keyExists {
		if opts.recovery != RecoveryStartFresh {
			return nil, fmt.Errorf("%w: %s is missing but %s exists; refusing to generate a new key",
				kerrors.ErrKeyNotFound, keyPath, dataPath)
		}
		if s.movedTo, err = moveAside(dataPath); err != nil {
			return nil, err
		}
	}

	if opts.create {
		if config, err = configs.EnsureConfig(); err != nil {
			return nil, fmt.Errorf("ensuring config: %w", err)
		}
	}
	s.config = config

	key, err := secrets.LoadOrCreateKey(keyPath)
	if err != nil {
		return nil, err
	}
	if len(key) != secrets.KeySize {
		if opts.recovery != RecoveryStartFresh {
			return nil, fmt.Errorf("%w: %s holds %d bytes, expected %d",
				kerrors.ErrInvalidKeyLength, keyPath, len(key), secrets.KeySize)
		}
		// Nothing can be sealed or opened with this key, so it goes aside
		// together with the data it was meant to protect.
		if s.keyMovedTo, err = moveAside(keyPath); err != nil {
			return nil, err
		}
		if dataExists {
			if s.movedTo, err = moveAside(dataPath); err != nil {
				return nil, err
			}
		}
		if key, err = secrets.LoadOrCreateKey(keyPath); err != nil {
			return nil, err
		}
		keyExists = false
	}
	s.keyCreated = !keyExists

	s.store = store.New(dataPath, key)
	if opts.create {
		if s.storeCreated, err = s.store.Initialize(); err != nil {
			return nil, err
		}
	}

	s.table = table.New(s.store)
	err = s.table.Hydrate()
	if err == nil {
		return s, nil
	}

	unreadable := errors.Is(err, kerrors.ErrDecryptFailed) || errors.Is(err, kerrors.ErrInvalidFormat)
	if !unreadable || opts.recovery != RecoveryStartFresh {
		return nil, err
	}

	if s.movedTo, err = moveAside(dataPath); err != nil {
		return nil, err
	}
	if s.storeCreated, err = s.store.Initialize(); err != nil {
		return nil, err
	}
	if err := s.table.Hydrate(); err != nil {
		return nil, err
	}
	return s, nil
}

// storeUUID returns the store UUID, or "" before init has written the config.
func (s *session) storeUUID() string {
	if s.config == nil {
		return ""
	}
	return s.config.Store.UUID
}

// moveAside renames path to path.corrupt-<timestamp> and returns the new name.
func moveAside(path string) (string, error) {
	target := fmt.Sprintf("%s.corrupt-%s", path, time.Now().UTC().Format(CorruptSuffixLayout))
	if err := os.Rename(path, target); err != nil {
		return "", fmt.Errorf("%w: moving %s aside: %v", kerrors.ErrIO, path, err)
	}
	return target, nil
}
