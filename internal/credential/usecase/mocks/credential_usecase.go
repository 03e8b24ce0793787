// Package mocks provides mock implementations of credential use cases for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCredentialUseCase is a mock implementation of CredentialUseCase for testing.
type MockCredentialUseCase struct {
	mock.Mock
}

// Encrypt mocks the Encrypt method of CredentialUseCase.
func (m *MockCredentialUseCase) Encrypt(ctx context.Context, plaintext string) (string, error) {
	args := m.Called(ctx, plaintext)
	return args.String(0), args.Error(1)
}

// Decrypt mocks the Decrypt method of CredentialUseCase.
func (m *MockCredentialUseCase) Decrypt(ctx context.Context, encoded string) (string, error) {
	args := m.Called(ctx, encoded)
	return args.String(0), args.Error(1)
}

// IsEncrypted mocks the IsEncrypted method of CredentialUseCase.
func (m *MockCredentialUseCase) IsEncrypted(value string) bool {
	args := m.Called(value)
	return args.Bool(0)
}

// Migrate mocks the Migrate method of CredentialUseCase.
func (m *MockCredentialUseCase) Migrate(ctx context.Context, value string) (string, error) {
	args := m.Called(ctx, value)
	return args.String(0), args.Error(1)
}
