package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	credentialDomain "github.com/allisson/credguard/internal/credential/domain"
	credentialService "github.com/allisson/credguard/internal/credential/service"
	"github.com/allisson/credguard/internal/credential/usecase/mocks"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProtector_Encrypt(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockUseCase := &mocks.MockCredentialUseCase{}
		mockUseCase.On("Encrypt", ctx, "ABCD1234").Return("enc:v1:Zm9vYmFy", nil).Once()

		protector := NewProtector(mockUseCase, newDiscardLogger())

		assert.Equal(t, "enc:v1:Zm9vYmFy", protector.Encrypt(ctx, "ABCD1234"))
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_ReturnsPlaintext", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))

		mockUseCase := &mocks.MockCredentialUseCase{}
		mockUseCase.On("Encrypt", ctx, "ABCD1234").
			Return("", credentialDomain.ErrDerivationFailed).
			Once()

		protector := NewProtector(mockUseCase, logger)

		assert.Equal(t, "ABCD1234", protector.Encrypt(ctx, "ABCD1234"))
		assert.Contains(t, buf.String(), `"failure":"derivation"`)
		assert.NotContains(t, buf.String(), "ABCD1234")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Panic_ReturnsPlaintext", func(t *testing.T) {
		mockUseCase := &mocks.MockCredentialUseCase{}
		mockUseCase.On("Encrypt", ctx, "ABCD1234").
			Run(func(args mock.Arguments) { panic("cipher exploded") }).
			Return("", nil).
			Once()

		protector := NewProtector(mockUseCase, newDiscardLogger())

		assert.NotPanics(t, func() {
			assert.Equal(t, "ABCD1234", protector.Encrypt(ctx, "ABCD1234"))
		})
	})
}

func TestProtector_Decrypt(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockUseCase := &mocks.MockCredentialUseCase{}
		mockUseCase.On("Decrypt", ctx, "enc:v1:Zm9vYmFy").Return("ABCD1234", nil).Once()

		protector := NewProtector(mockUseCase, newDiscardLogger())

		assert.Equal(t, "ABCD1234", protector.Decrypt(ctx, "enc:v1:Zm9vYmFy"))
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_ReturnsEmpty", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))

		mockUseCase := &mocks.MockCredentialUseCase{}
		mockUseCase.On("Decrypt", ctx, "enc:v1:Zm9vYmFy").
			Return("", credentialDomain.ErrDecryptionFailed).
			Once()

		protector := NewProtector(mockUseCase, logger)

		assert.Equal(t, "", protector.Decrypt(ctx, "enc:v1:Zm9vYmFy"))
		assert.Contains(t, buf.String(), `"level":"WARN"`)
		assert.Contains(t, buf.String(), `"failure":"decryption"`)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Panic_ReturnsEmpty", func(t *testing.T) {
		mockUseCase := &mocks.MockCredentialUseCase{}
		mockUseCase.On("Decrypt", ctx, "enc:v1:Zm9vYmFy").
			Run(func(args mock.Arguments) { panic("boom") }).
			Return("", nil).
			Once()

		protector := NewProtector(mockUseCase, newDiscardLogger())

		assert.NotPanics(t, func() {
			assert.Equal(t, "", protector.Decrypt(ctx, "enc:v1:Zm9vYmFy"))
		})
	})
}

func TestProtector_IsEncrypted(t *testing.T) {
	mockUseCase := &mocks.MockCredentialUseCase{}
	mockUseCase.On("IsEncrypted", "enc:v1:Zm9vYmFy").Return(true).Once()
	mockUseCase.On("IsEncrypted", "ABCD1234").Return(false).Once()

	protector := NewProtector(mockUseCase, newDiscardLogger())

	assert.True(t, protector.IsEncrypted("enc:v1:Zm9vYmFy"))
	assert.False(t, protector.IsEncrypted("ABCD1234"))
	mockUseCase.AssertExpectations(t)
}

func TestProtector_Migrate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockUseCase := &mocks.MockCredentialUseCase{}
		mockUseCase.On("Migrate", ctx, "ABCD1234").Return("enc:v1:Zm9vYmFy", nil).Once()

		protector := NewProtector(mockUseCase, newDiscardLogger())

		assert.Equal(t, "enc:v1:Zm9vYmFy", protector.Migrate(ctx, "ABCD1234"))
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_ReturnsValueUnchanged", func(t *testing.T) {
		mockUseCase := &mocks.MockCredentialUseCase{}
		mockUseCase.On("Migrate", ctx, "ABCD1234").
			Return("", errors.New("unexpected")).
			Once()

		protector := NewProtector(mockUseCase, newDiscardLogger())

		assert.Equal(t, "ABCD1234", protector.Migrate(ctx, "ABCD1234"))
		mockUseCase.AssertExpectations(t)
	})
}

func TestProtector_EndToEnd(t *testing.T) {
	ctx := context.Background()
	logger := newDiscardLogger()
	cache := credentialService.NewKeyCache(
		credentialService.StaticDeviceInfo("en_US|-180|24|4|darwin/arm64"),
		credentialService.NewPBKDF2KeyDeriver(credentialDomain.MinKDFIterations),
		logger,
	)
	protector := NewProtector(NewCredentialUseCase(cache, credentialService.NewAESGCMFactory()), logger)

	t.Run("encrypt then decrypt", func(t *testing.T) {
		encoded := protector.Encrypt(ctx, "ABCD1234")
		require.True(t, protector.IsEncrypted(encoded))
		assert.Equal(t, "ABCD1234", protector.Decrypt(ctx, encoded))
	})

	t.Run("corrupted payload yields empty", func(t *testing.T) {
		encoded := protector.Encrypt(ctx, "SECRET")
		require.True(t, protector.IsEncrypted(encoded))

		i := len("enc:v1:") + 5
		replacement := byte('A')
		if encoded[i] == 'A' {
			replacement = 'B'
		}
		corrupted := encoded[:i] + string(replacement) + encoded[i+1:]

		assert.Equal(t, "", protector.Decrypt(ctx, corrupted))
	})

	t.Run("legacy plaintext passthrough", func(t *testing.T) {
		assert.Equal(t, "ABCD1234", protector.Decrypt(ctx, "ABCD1234"))
	})

	t.Run("migrate legacy then already encrypted", func(t *testing.T) {
		assert.Equal(t, "", protector.Migrate(ctx, ""))
		assert.Equal(t, "enc:v1:xyz", protector.Migrate(ctx, "enc:v1:xyz"))

		migrated := protector.Migrate(ctx, "ABCD1234")
		assert.True(t, protector.IsEncrypted(migrated))
		assert.Equal(t, migrated, protector.Migrate(ctx, migrated))
	})

	t.Run("derivation failure keeps plaintext", func(t *testing.T) {
		failing := NewProtector(
			NewCredentialUseCase(
				failingKeyProvider{err: credentialDomain.ErrDerivationFailed},
				credentialService.NewAESGCMFactory(),
			),
			logger,
		)

		assert.Equal(t, "ABCD1234", failing.Encrypt(ctx, "ABCD1234"))
		assert.Equal(t, "", failing.Decrypt(ctx, "enc:v1:Zm9vYmFy"))
		assert.Equal(t, "ABCD1234", failing.Migrate(ctx, "ABCD1234"))
	})
}
