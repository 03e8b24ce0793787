// Package service provides the cryptographic building blocks of credential
// protection: device fingerprinting, PBKDF2 key derivation, the session key
// cache, and the AES-256-GCM cipher engine.
package service

import (
	"context"
)

// DeviceInfoProvider supplies the device fingerprint used as key derivation input.
type DeviceInfoProvider interface {
	// Fingerprint returns a deterministic string built from environment signals.
	// It never fails; missing signals are replaced by fixed constants.
	Fingerprint() string
}

// KeyDeriver derives a symmetric key from low-entropy input material.
type KeyDeriver interface {
	// DeriveKey returns a KeySize-byte key or ErrDerivationFailed.
	DeriveKey(material string) ([]byte, error)
}

// KeyProvider returns the key used to seal and open secrets.
type KeyProvider interface {
	// GetKey returns a copy of the session key, deriving it on first use.
	// Callers own the returned slice and should zero it after use.
	GetKey(ctx context.Context) ([]byte, error)
}

// AEAD seals and opens secrets with a single key.
type AEAD interface {
	// Seal encrypts plaintext with a fresh random nonce and returns nonce || ciphertext.
	Seal(plaintext []byte) ([]byte, error)

	// Open splits the nonce from sealed, authenticates and decrypts the rest.
	Open(sealed []byte) ([]byte, error)
}

// AEADFactory creates an AEAD for a key.
type AEADFactory interface {
	CreateCipher(key []byte) (AEAD, error)
}
