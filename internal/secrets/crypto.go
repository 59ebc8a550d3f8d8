package secrets

import (
	"crypto/rand"
	"fmt"
	"io"

	kerrors "github.com/PolarWolf314/rollcall/internal/errors"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	// KeySize is the length of the symmetric key in bytes.
	KeySize = 32

	// NonceSize is the length of the secretbox nonce prepended to every ciphertext.
	NonceSize = 24
)

// CreateSymmetricKey generates a new random symmetric key.
func CreateSymmetricKey() ([]byte, error) {
	symKey := make([]byte, KeySize)
	if _, err := rand.Read(symKey); err != nil {
		return nil, err
	}

	return symKey, nil
}

// Seal encrypts plaintext with NaCl secretbox under a fresh random nonce.
// The nonce is prepended to the returned ciphertext.
func Seal(symKey, plaintext []byte) ([]byte, error) {
	if len(symKey) != KeySize {
		return nil, fmt.Errorf("%w: %w: expected %d bytes, got %d bytes",
			kerrors.ErrEncryptFailed, kerrors.ErrInvalidKeyLength, KeySize, len(symKey))
	}

	var key [KeySize]byte
	copy(key[:], symKey)

	var nonce [NonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("%w: generating nonce: %v", kerrors.ErrEncryptFailed, err)
	}

	return secretbox.Seal(nonce[:], plaintext, &nonce, &key), nil
}

// Open decrypts a ciphertext produced by Seal. Any failure, including a key of
// the wrong length, is reported as ErrDecryptFailed.
func Open(symKey, ciphertext []byte) ([]byte, error) {
	if len(symKey) != KeySize {
		return nil, fmt.Errorf("%w: %w: expected %d bytes, got %d bytes",
			kerrors.ErrDecryptFailed, kerrors.ErrInvalidKeyLength, KeySize, len(symKey))
	}
	if len(ciphertext) < NonceSize+secretbox.Overhead {
		return nil, fmt.Errorf("%w: ciphertext is too short (%d bytes)", kerrors.ErrDecryptFailed, len(ciphertext))
	}

	var key [KeySize]byte
	copy(key[:], symKey)

	// Extract the nonce from the beginning of the ciphertext
	var nonce [NonceSize]byte
	copy(nonce[:], ciphertext[:NonceSize])

	plaintext, ok := secretbox.Open(nil, ciphertext[NonceSize:], &nonce, &key)
	if !ok {
		return nil, fmt.Errorf("%w: wrong key or corrupted ciphertext", kerrors.ErrDecryptFailed)
	}

	return plaintext, nil
}
