package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/credguard/internal/credential/usecase/mocks"
	"github.com/allisson/credguard/internal/metrics"
)

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

var _ metrics.BusinessMetrics = (*mockBusinessMetrics)(nil)

func TestNewCredentialUseCaseWithMetrics(t *testing.T) {
	mockUseCase := &mocks.MockCredentialUseCase{}
	mockMetrics := &mockBusinessMetrics{}

	decorator := NewCredentialUseCaseWithMetrics(mockUseCase, mockMetrics)

	assert.NotNil(t, decorator)
	assert.Implements(t, (*CredentialUseCase)(nil), decorator)
}

func TestCredentialMetricsDecorator_Encrypt(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RecordsSuccessMetrics", func(t *testing.T) {
		mockUseCase := &mocks.MockCredentialUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		mockUseCase.On("Encrypt", ctx, "ABCD1234").Return("enc:v1:Zm9vYmFy", nil).Once()
		mockMetrics.On("RecordOperation", ctx, "credential", "credential_encrypt", "success").
			Return().
			Once()
		mockMetrics.On("RecordDuration", ctx, "credential", "credential_encrypt", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		decorator := NewCredentialUseCaseWithMetrics(mockUseCase, mockMetrics)
		encoded, err := decorator.Encrypt(ctx, "ABCD1234")

		assert.NoError(t, err)
		assert.Equal(t, "enc:v1:Zm9vYmFy", encoded)
		mockUseCase.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Error_RecordsErrorMetrics", func(t *testing.T) {
		mockUseCase := &mocks.MockCredentialUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		expectedErr := errors.New("derivation failed")

		mockUseCase.On("Encrypt", ctx, "ABCD1234").Return("", expectedErr).Once()
		mockMetrics.On("RecordOperation", ctx, "credential", "credential_encrypt", "error").
			Return().
			Once()
		mockMetrics.On("RecordDuration", ctx, "credential", "credential_encrypt", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		decorator := NewCredentialUseCaseWithMetrics(mockUseCase, mockMetrics)
		_, err := decorator.Encrypt(ctx, "ABCD1234")

		assert.Equal(t, expectedErr, err)
		mockUseCase.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})
}

func TestCredentialMetricsDecorator_Decrypt(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RecordsSuccessMetrics", func(t *testing.T) {
		mockUseCase := &mocks.MockCredentialUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		mockUseCase.On("Decrypt", ctx, "enc:v1:Zm9vYmFy").Return("ABCD1234", nil).Once()
		mockMetrics.On("RecordOperation", ctx, "credential", "credential_decrypt", "success").
			Return().
			Once()
		mockMetrics.On("RecordDuration", ctx, "credential", "credential_decrypt", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		decorator := NewCredentialUseCaseWithMetrics(mockUseCase, mockMetrics)
		plaintext, err := decorator.Decrypt(ctx, "enc:v1:Zm9vYmFy")

		assert.NoError(t, err)
		assert.Equal(t, "ABCD1234", plaintext)
		mockUseCase.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Error_RecordsErrorMetrics", func(t *testing.T) {
		mockUseCase := &mocks.MockCredentialUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		expectedErr := errors.New("decryption failed")

		mockUseCase.On("Decrypt", ctx, "enc:v1:Zm9vYmFy").Return("", expectedErr).Once()
		mockMetrics.On("RecordOperation", ctx, "credential", "credential_decrypt", "error").
			Return().
			Once()
		mockMetrics.On("RecordDuration", ctx, "credential", "credential_decrypt", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		decorator := NewCredentialUseCaseWithMetrics(mockUseCase, mockMetrics)
		_, err := decorator.Decrypt(ctx, "enc:v1:Zm9vYmFy")

		assert.Equal(t, expectedErr, err)
		mockUseCase.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})
}

func TestCredentialMetricsDecorator_Migrate(t *testing.T) {
	ctx := context.Background()

	mockUseCase := &mocks.MockCredentialUseCase{}
	mockMetrics := &mockBusinessMetrics{}

	mockUseCase.On("Migrate", ctx, "ABCD1234").Return("enc:v1:Zm9vYmFy", nil).Once()
	mockMetrics.On("RecordOperation", ctx, "credential", "credential_migrate", "success").
		Return().
		Once()
	mockMetrics.On("RecordDuration", ctx, "credential", "credential_migrate", mock.AnythingOfType("time.Duration"), "success").
		Return().
		Once()

	decorator := NewCredentialUseCaseWithMetrics(mockUseCase, mockMetrics)
	migrated, err := decorator.Migrate(ctx, "ABCD1234")

	assert.NoError(t, err)
	assert.Equal(t, "enc:v1:Zm9vYmFy", migrated)
	mockUseCase.AssertExpectations(t)
	mockMetrics.AssertExpectations(t)
}

func TestCredentialMetricsDecorator_IsEncrypted_NotInstrumented(t *testing.T) {
	mockUseCase := &mocks.MockCredentialUseCase{}
	mockMetrics := &mockBusinessMetrics{}

	mockUseCase.On("IsEncrypted", "ABCD1234").Return(false).Once()

	decorator := NewCredentialUseCaseWithMetrics(mockUseCase, mockMetrics)

	assert.False(t, decorator.IsEncrypted("ABCD1234"))
	mockUseCase.AssertExpectations(t)
	mockMetrics.AssertNotCalled(t, "RecordOperation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
