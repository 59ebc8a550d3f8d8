package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	kerrors "github.com/PolarWolf314/rollcall/internal/errors"
	"github.com/PolarWolf314/rollcall/internal/records"
	"github.com/PolarWolf314/rollcall/internal/secrets"
)

// DataFileMode is the permission the data file is written with.
const DataFileMode fs.FileMode = 0600

// FileStore persists a whole record table as one encrypted file.
type FileStore struct {
	path string
	key  []byte
}

// New returns a store for the data file at path, encrypted under key.
// The key is borrowed; the store never modifies or persists it.
func New(path string, key []byte) *FileStore {
	return &FileStore{path: path, key: key}
}

// Path returns the location of the data file.
func (s *FileStore) Path() string {
	return s.path
}

// Exists reports whether the data file is present.
func (s *FileStore) Exists() (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("%w: checking data file at %s: %v", kerrors.ErrIO, s.path, err)
}

// Initialize writes an encrypted empty table if no data file exists yet.
// It is a no-op when the file is already present, and reports whether it
// created one.
func (s *FileStore) Initialize() (bool, error) {
	exists, err := s.Exists()
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if err := s.Save(nil); err != nil {
		return false, err
	}
	return true, nil
}

// Load reads, decrypts and decodes the data file.
func (s *FileStore) Load() ([]records.Record, error) {
	ciphertext, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w: %s", kerrors.ErrIO, kerrors.ErrStoreNotInitialized, s.path)
		}
		return nil, fmt.Errorf("%w: reading data file at %s: %v", kerrors.ErrIO, s.path, err)
	}

	plaintext, err := secrets.Open(s.key, ciphertext)
	if err != nil {
		return nil, err
	}

	recs, err := records.Decode(plaintext)
	if err != nil {
		return nil, err
	}

	return recs, nil
}

// Save encodes and encrypts the full table and replaces the data file.
//
// The ciphertext is written to a temporary file in the same directory,
// synced, and renamed over the target, so an interrupted save leaves the
// previous file intact.
func (s *FileStore) Save(recs []records.Record) error {
	plaintext, err := records.Encode(recs)
	if err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}

	ciphertext, err := secrets.Seal(s.key, plaintext)
	if err != nil {
		return err
	}

	return writeFileAtomic(s.path, ciphertext, DataFileMode)
}

func writeFileAtomic(path string, data []byte, perm fs.FileMode) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("%w: creating data directory at %s: %v", kerrors.ErrIO, dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: creating temporary file in %s: %v", kerrors.ErrIO, dir, err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("%w: writing %s: %v", kerrors.ErrIO, tmpPath, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("%w: syncing %s: %v", kerrors.ErrIO, tmpPath, err)
	}
	if err = tmp.Chmod(perm); err != nil {
		return fmt.Errorf("%w: setting permissions on %s: %v", kerrors.ErrIO, tmpPath, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %v", kerrors.ErrIO, tmpPath, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%w: replacing %s: %v", kerrors.ErrIO, path, err)
	}

	return nil
}
