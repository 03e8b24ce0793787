package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	credentialDomain "github.com/allisson/credguard/internal/credential/domain"
)

// AESGCMCipher implements the AEAD interface using AES-256-GCM
// (Advanced Encryption Standard with Galois/Counter Mode).
//
// Security properties:
//   - 256-bit key size
//   - 12-byte nonce (96 bits, randomly generated per Seal)
//   - 16-byte authentication tag (128 bits, appended to ciphertext)
//   - Open never returns unauthenticated plaintext
//
// Thread safety:
//
//	The cipher instance is stateless and safe for concurrent use from multiple
//	goroutines. Each Seal generates a unique nonce independently.
//
// Example usage:
//
//	cipher, err := NewAESGCM(key)
//	if err != nil {
//	    return err
//	}
//
//	sealed, err := cipher.Seal([]byte("sk-live-123"))
//	plaintext, err := cipher.Open(sealed)
type AESGCMCipher struct {
	aead cipher.AEAD
}

// NewAESGCM creates a new AES-256-GCM cipher instance.
//
// The key must be exactly 32 bytes (256 bits). Returns ErrInvalidKeySize
// otherwise.
func NewAESGCM(key []byte) (*AESGCMCipher, error) {
	if len(key) != credentialDomain.KeySize {
		return nil, credentialDomain.ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESGCMCipher{aead: aead}, nil
}

// Seal encrypts plaintext and returns nonce || ciphertext.
//
// A fresh 12-byte nonce is drawn from crypto/rand for every call, so sealing
// the same plaintext twice never yields the same output. Returns
// ErrEncryptionFailed if the random source fails.
func (a *AESGCMCipher) Seal(plaintext []byte) ([]byte, error) {
	nonceSize := a.aead.NonceSize()
	out := make([]byte, nonceSize, nonceSize+len(plaintext)+a.aead.Overhead())

	if _, err := rand.Read(out); err != nil {
		return nil, fmt.Errorf("%w: failed to generate nonce: %v", credentialDomain.ErrEncryptionFailed, err)
	}

	return a.aead.Seal(out, out[:nonceSize], plaintext, nil), nil
}

// Open splits the leading nonce from sealed and decrypts the remainder.
//
// Input shorter than nonce plus tag, a tag mismatch, or any modification of
// the sealed bytes returns ErrDecryptionFailed and no plaintext.
func (a *AESGCMCipher) Open(sealed []byte) ([]byte, error) {
	nonceSize := a.aead.NonceSize()
	if len(sealed) < nonceSize+a.aead.Overhead() {
		return nil, fmt.Errorf("%w: payload too short", credentialDomain.ErrDecryptionFailed)
	}

	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plaintext, err := a.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, credentialDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}
