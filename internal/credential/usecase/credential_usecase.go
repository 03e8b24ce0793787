package usecase

import (
	"context"
	"fmt"

	credentialDomain "github.com/allisson/credguard/internal/credential/domain"
	credentialService "github.com/allisson/credguard/internal/credential/service"
)

// credentialUseCase implements CredentialUseCase.
type credentialUseCase struct {
	keyProvider credentialService.KeyProvider
	aeadFactory credentialService.AEADFactory
}

// NewCredentialUseCase creates a CredentialUseCase backed by the key provider
// (normally a *service.KeyCache) and the cipher factory.
func NewCredentialUseCase(
	keyProvider credentialService.KeyProvider,
	aeadFactory credentialService.AEADFactory,
) CredentialUseCase {
	return &credentialUseCase{
		keyProvider: keyProvider,
		aeadFactory: aeadFactory,
	}
}

// Encrypt seals plaintext into "enc:v1:<base64>".
func (c *credentialUseCase) Encrypt(ctx context.Context, plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	if credentialDomain.IsEncrypted(plaintext) {
		return plaintext, nil
	}

	cipher, err := c.cipher(ctx, credentialDomain.ErrEncryptionFailed)
	if err != nil {
		return "", err
	}

	sealed, err := cipher.Seal([]byte(plaintext))
	if err != nil {
		return "", fmt.Errorf("%w: %v", credentialDomain.ErrEncryptionFailed, err)
	}

	payload := credentialDomain.EncryptedPayload{
		Version: credentialDomain.PayloadVersion,
		Sealed:  sealed,
	}
	return payload.String(), nil
}

// Decrypt opens an "enc:v1:" payload.
func (c *credentialUseCase) Decrypt(ctx context.Context, encoded string) (string, error) {
	if encoded == "" {
		return "", nil
	}
	if !credentialDomain.IsEncrypted(encoded) {
		return encoded, nil
	}

	payload, err := credentialDomain.NewEncryptedPayload(encoded)
	if err != nil {
		return "", err
	}

	cipher, err := c.cipher(ctx, credentialDomain.ErrDecryptionFailed)
	if err != nil {
		return "", err
	}

	plaintext, err := cipher.Open(payload.Sealed)
	if err != nil {
		return "", err
	}
	defer credentialDomain.Zero(plaintext)

	return string(plaintext), nil
}

// IsEncrypted reports whether value carries the encrypted prefix.
func (c *credentialUseCase) IsEncrypted(value string) bool {
	return credentialDomain.IsEncrypted(value)
}

// Migrate encrypts value unless it is empty or already encrypted.
func (c *credentialUseCase) Migrate(ctx context.Context, value string) (string, error) {
	if value == "" || credentialDomain.IsEncrypted(value) {
		return value, nil
	}
	return c.Encrypt(ctx, value)
}

// cipher fetches the session key and builds the AEAD for it. A setup failure
// is wrapped in setupErr so it is attributed to the calling operation.
func (c *credentialUseCase) cipher(ctx context.Context, setupErr error) (credentialService.AEAD, error) {
	key, err := c.keyProvider.GetKey(ctx)
	if err != nil {
		if credentialDomain.FailureKind(err) == credentialDomain.FailureDerivation {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", credentialDomain.ErrDerivationFailed, err)
	}
	defer credentialDomain.Zero(key)

	cipher, err := c.aeadFactory.CreateCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", setupErr, err)
	}
	return cipher, nil
}
