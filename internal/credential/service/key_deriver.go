package service

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	credentialDomain "github.com/allisson/credguard/internal/credential/domain"
)

// PBKDF2KeyDeriver derives AES-256 keys with PBKDF2-HMAC-SHA-256 and the fixed
// application salt.
type PBKDF2KeyDeriver struct {
	salt       []byte
	iterations int
}

// NewPBKDF2KeyDeriver creates a deriver using credentialDomain.ApplicationSalt.
// The iteration count is validated by configuration; see config.Validate.
func NewPBKDF2KeyDeriver(iterations int) *PBKDF2KeyDeriver {
	return &PBKDF2KeyDeriver{
		salt:       credentialDomain.ApplicationSalt,
		iterations: iterations,
	}
}

// DeriveKey stretches material into a 32-byte key.
// Returns ErrDerivationFailed for empty material or a non-positive iteration count.
func (d *PBKDF2KeyDeriver) DeriveKey(material string) ([]byte, error) {
	if material == "" {
		return nil, fmt.Errorf("%w: empty key material", credentialDomain.ErrDerivationFailed)
	}
	if d.iterations < 1 {
		return nil, fmt.Errorf("%w: invalid iteration count %d", credentialDomain.ErrDerivationFailed, d.iterations)
	}

	key := pbkdf2.Key([]byte(material), d.salt, d.iterations, credentialDomain.KeySize, sha256.New)
	if len(key) != credentialDomain.KeySize {
		return nil, fmt.Errorf("%w: unexpected key length %d", credentialDomain.ErrDerivationFailed, len(key))
	}
	return key, nil
}
