// Package usecase implements the public contract of credential protection.
//
// CredentialUseCase is the error-returning core. Protector wraps it with the
// string-in/string-out policy consumed by the settings layer: encryption
// failures keep the plaintext, decryption failures lose the secret.
package usecase

import (
	"context"
)

// CredentialUseCase encrypts and decrypts secrets in the enc:v1: format.
type CredentialUseCase interface {
	// Encrypt returns "" for "", passes already encrypted values through, and
	// otherwise seals and encodes plaintext.
	Encrypt(ctx context.Context, plaintext string) (string, error)

	// Decrypt returns "" for "", passes values without the encrypted prefix
	// through, and otherwise decodes and opens the payload.
	Decrypt(ctx context.Context, encoded string) (string, error)

	// IsEncrypted reports whether value carries the encrypted prefix.
	IsEncrypted(value string) bool

	// Migrate upgrades a legacy plaintext value. Idempotent.
	Migrate(ctx context.Context, value string) (string, error)
}
