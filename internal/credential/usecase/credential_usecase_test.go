package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	credentialDomain "github.com/allisson/credguard/internal/credential/domain"
	credentialService "github.com/allisson/credguard/internal/credential/service"
)

// failingKeyProvider always fails to produce a key.
type failingKeyProvider struct {
	err error
}

func (f failingKeyProvider) GetKey(ctx context.Context) ([]byte, error) {
	return nil, f.err
}

// failingFactory always fails to build a cipher.
type failingFactory struct{}

func (failingFactory) CreateCipher(key []byte) (credentialService.AEAD, error) {
	return nil, errors.New("cipher unavailable")
}

func newTestUseCase(t *testing.T, fingerprint string) CredentialUseCase {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cache := credentialService.NewKeyCache(
		credentialService.StaticDeviceInfo(fingerprint),
		credentialService.NewPBKDF2KeyDeriver(credentialDomain.MinKDFIterations),
		logger,
	)
	return NewCredentialUseCase(cache, credentialService.NewAESGCMFactory())
}

func TestCredentialUseCase_Encrypt(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, "en_US|0|24|8|linux/amd64")

	t.Run("produces enc:v1 payload", func(t *testing.T) {
		encoded, err := uc.Encrypt(ctx, "ABCD1234")
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(encoded, "enc:v1:"))
		assert.NotContains(t, encoded, "ABCD1234")
		assert.True(t, uc.IsEncrypted(encoded))
	})

	t.Run("empty input", func(t *testing.T) {
		encoded, err := uc.Encrypt(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, "", encoded)
	})

	t.Run("already encrypted passthrough", func(t *testing.T) {
		encoded, err := uc.Encrypt(ctx, "SECRET")
		require.NoError(t, err)

		again, err := uc.Encrypt(ctx, encoded)
		require.NoError(t, err)
		assert.Equal(t, encoded, again)
	})

	t.Run("same plaintext twice differs", func(t *testing.T) {
		first, err := uc.Encrypt(ctx, "SAMEKEY")
		require.NoError(t, err)
		second, err := uc.Encrypt(ctx, "SAMEKEY")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)

		decrypted1, err := uc.Decrypt(ctx, first)
		require.NoError(t, err)
		decrypted2, err := uc.Decrypt(ctx, second)
		require.NoError(t, err)
		assert.Equal(t, "SAMEKEY", decrypted1)
		assert.Equal(t, "SAMEKEY", decrypted2)
	})

	t.Run("derivation failure", func(t *testing.T) {
		failing := NewCredentialUseCase(
			failingKeyProvider{err: credentialDomain.ErrDerivationFailed},
			credentialService.NewAESGCMFactory(),
		)

		encoded, err := failing.Encrypt(ctx, "ABCD1234")
		assert.ErrorIs(t, err, credentialDomain.ErrDerivationFailed)
		assert.Equal(t, "", encoded)
	})

	t.Run("unexpected key provider error is a derivation failure", func(t *testing.T) {
		failing := NewCredentialUseCase(
			failingKeyProvider{err: errors.New("boom")},
			credentialService.NewAESGCMFactory(),
		)

		_, err := failing.Encrypt(ctx, "ABCD1234")
		assert.ErrorIs(t, err, credentialDomain.ErrDerivationFailed)
	})

	t.Run("cipher failure is an encryption failure", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		cache := credentialService.NewKeyCache(
			credentialService.StaticDeviceInfo("device"),
			credentialService.NewPBKDF2KeyDeriver(1000),
			logger,
		)
		failing := NewCredentialUseCase(cache, failingFactory{})

		_, err := failing.Encrypt(ctx, "ABCD1234")
		assert.ErrorIs(t, err, credentialDomain.ErrEncryptionFailed)
	})
}

func TestCredentialUseCase_Decrypt(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, "en_US|0|24|8|linux/amd64")

	t.Run("round trip", func(t *testing.T) {
		values := []string{
			"ABCD1234",
			"sk-proj-0123456789abcdefghijklmnopqrstuvwxyz",
			"enc:v1 looks like a prefix but is not",
			"ключ-🔑-with unicode",
			" leading and trailing spaces ",
			strings.Repeat("x", 4096),
			"\x00binary\xff",
		}

		for _, value := range values {
			encoded, err := uc.Encrypt(ctx, value)
			require.NoError(t, err)

			decrypted, err := uc.Decrypt(ctx, encoded)
			require.NoError(t, err)
			assert.Equal(t, value, decrypted)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		decrypted, err := uc.Decrypt(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, "", decrypted)
	})

	t.Run("legacy plaintext passthrough", func(t *testing.T) {
		decrypted, err := uc.Decrypt(ctx, "ABCD1234")
		require.NoError(t, err)
		assert.Equal(t, "ABCD1234", decrypted)
	})

	t.Run("malformed payload is a format failure", func(t *testing.T) {
		for _, value := range []string{"enc:v1:", "enc:v1:xyz", "enc:v1:!!!!"} {
			decrypted, err := uc.Decrypt(ctx, value)
			assert.Error(t, err, value)
			assert.Equal(t, credentialDomain.FailureFormat, credentialDomain.FailureKind(err), value)
			assert.Equal(t, "", decrypted)
		}
	})

	t.Run("truncated payload is a decryption failure", func(t *testing.T) {
		decrypted, err := uc.Decrypt(ctx, "enc:v1:Zm9vYmFy")
		assert.ErrorIs(t, err, credentialDomain.ErrDecryptionFailed)
		assert.Equal(t, "", decrypted)
	})

	t.Run("every tampered character is rejected", func(t *testing.T) {
		encoded, err := uc.Encrypt(ctx, "SECRET")
		require.NoError(t, err)

		prefixLen := len("enc:v1:")
		for i := prefixLen; i < len(encoded); i++ {
			replacement := byte('A')
			if encoded[i] == 'A' {
				replacement = 'B'
			}
			tampered := encoded[:i] + string(replacement) + encoded[i+1:]

			decrypted, err := uc.Decrypt(ctx, tampered)
			assert.Error(t, err, "position %d", i)
			assert.Equal(t, "", decrypted, "position %d", i)
		}
	})

	t.Run("changed fingerprint cannot decrypt", func(t *testing.T) {
		encoded, err := uc.Encrypt(ctx, "SECRET")
		require.NoError(t, err)

		other := newTestUseCase(t, "de_DE|60|24|8|linux/amd64")
		decrypted, err := other.Decrypt(ctx, encoded)
		assert.ErrorIs(t, err, credentialDomain.ErrDecryptionFailed)
		assert.Equal(t, "", decrypted)
	})

	t.Run("same fingerprint decrypts across instances", func(t *testing.T) {
		encoded, err := uc.Encrypt(ctx, "SECRET")
		require.NoError(t, err)

		restarted := newTestUseCase(t, "en_US|0|24|8|linux/amd64")
		decrypted, err := restarted.Decrypt(ctx, encoded)
		require.NoError(t, err)
		assert.Equal(t, "SECRET", decrypted)
	})

	t.Run("derivation failure", func(t *testing.T) {
		failing := NewCredentialUseCase(
			failingKeyProvider{err: credentialDomain.ErrDerivationFailed},
			credentialService.NewAESGCMFactory(),
		)

		decrypted, err := failing.Decrypt(ctx, "enc:v1:Zm9vYmFy")
		assert.ErrorIs(t, err, credentialDomain.ErrDerivationFailed)
		assert.Equal(t, "", decrypted)
	})

	t.Run("cipher failure is a decryption failure", func(t *testing.T) {
		encoded, err := uc.Encrypt(ctx, "SECRET")
		require.NoError(t, err)

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		cache := credentialService.NewKeyCache(
			credentialService.StaticDeviceInfo("en_US|0|24|8|linux/amd64"),
			credentialService.NewPBKDF2KeyDeriver(credentialDomain.MinKDFIterations),
			logger,
		)
		failing := NewCredentialUseCase(cache, failingFactory{})

		decrypted, err := failing.Decrypt(ctx, encoded)
		assert.ErrorIs(t, err, credentialDomain.ErrDecryptionFailed)
		assert.NotErrorIs(t, err, credentialDomain.ErrEncryptionFailed)
		assert.Equal(t, credentialDomain.FailureDecryption, credentialDomain.FailureKind(err))
		assert.Equal(t, "", decrypted)
	})
}

func TestCredentialUseCase_IsEncrypted(t *testing.T) {
	uc := newTestUseCase(t, "device")

	assert.True(t, uc.IsEncrypted("enc:v1:Zm9vYmFy"))
	assert.False(t, uc.IsEncrypted("ABCD1234"))
	assert.False(t, uc.IsEncrypted(""))
}

func TestCredentialUseCase_Migrate(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, "device")

	t.Run("empty", func(t *testing.T) {
		migrated, err := uc.Migrate(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, "", migrated)
	})

	t.Run("already encrypted is unchanged", func(t *testing.T) {
		migrated, err := uc.Migrate(ctx, "enc:v1:xyz")
		require.NoError(t, err)
		assert.Equal(t, "enc:v1:xyz", migrated)
	})

	t.Run("legacy plaintext is encrypted", func(t *testing.T) {
		migrated, err := uc.Migrate(ctx, "ABCD1234")
		require.NoError(t, err)
		assert.True(t, uc.IsEncrypted(migrated))

		decrypted, err := uc.Decrypt(ctx, migrated)
		require.NoError(t, err)
		assert.Equal(t, "ABCD1234", decrypted)
	})

	t.Run("idempotent", func(t *testing.T) {
		for _, value := range []string{"", "ABCD1234", "enc:v1:Zm9vYmFy", "enc:v1:xyz"} {
			once, err := uc.Migrate(ctx, value)
			require.NoError(t, err)
			twice, err := uc.Migrate(ctx, once)
			require.NoError(t, err)
			assert.Equal(t, once, twice, value)
		}
	})
}
