// Package secrets owns the symmetric key and the cipher used for the data file.
//
// # Key Management
//
// A single 256-bit key is generated with crypto/rand the first time the store
// is opened and written as raw bytes to the key file (mode 0600), next to the
// data file. Every later run reads the same bytes back. The key is never
// rotated or re-derived: data encrypted under one key cannot be read with
// another, so a missing or unreadable key file is an error, never a reason to
// generate a fresh key over existing data.
//
// # Encryption
//
// Data is sealed with NaCl secretbox (XSalsa20-Poly1305). A random 24-byte
// nonce is prepended to each ciphertext, so sealing the same plaintext twice
// produces different output. Poly1305 authenticates the ciphertext; any
// flipped byte makes Open fail with ErrDecryptFailed.
//
// # Security Considerations
//
// The key file should have 0600 permissions. CheckKeyPermissions reports
// looser modes so the CLI can warn, but nothing is enforced.
package secrets
