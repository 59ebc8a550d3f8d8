package secrets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	kerrors "github.com/PolarWolf314/rollcall/internal/errors"
)

// KeyFileMode is the permission the key file is created with.
const KeyFileMode fs.FileMode = 0600

// LoadOrCreateKey returns the symmetric key stored at path, generating and
// persisting a new one when no key file exists yet.
//
// An existing key is returned as-is, without length validation; a corrupt key
// surfaces as ErrDecryptFailed on first use. Filesystem errors are wrapped in
// ErrIO and the key is never regenerated after one.
func LoadOrCreateKey(path string) ([]byte, error) {
	_, err := os.Stat(path)
	if err == nil {
		key, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: reading key file at %s: %v", kerrors.ErrIO, path, err)
		}
		return key, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: checking key file at %s: %v", kerrors.ErrIO, path, err)
	}

	keyDir := filepath.Dir(path)
	if err := os.MkdirAll(keyDir, 0700); err != nil {
		return nil, fmt.Errorf("%w: creating key directory at %s: %v", kerrors.ErrIO, keyDir, err)
	}

	key, err := CreateSymmetricKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate symmetric key: %w", err)
	}

	// O_EXCL so a key written by another process in the meantime is never clobbered.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, KeyFileMode)
	if err != nil {
		return nil, fmt.Errorf("%w: creating key file at %s: %v", kerrors.ErrIO, path, err)
	}
	if _, err := f.Write(key); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: writing key file at %s: %v", kerrors.ErrIO, path, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("%w: closing key file at %s: %v", kerrors.ErrIO, path, err)
	}

	return key, nil
}

// KeyExists reports whether a key file is present at path.
func KeyExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("%w: checking key file at %s: %v", kerrors.ErrIO, path, err)
}

// CheckKeyPermissions returns the key file's permission bits and whether they
// grant access to anyone other than the owner.
func CheckKeyPermissions(path string) (fs.FileMode, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, false, fmt.Errorf("%w: checking key file at %s: %v", kerrors.ErrIO, path, err)
	}
	perm := info.Mode().Perm()
	return perm, perm&0077 != 0, nil
}
