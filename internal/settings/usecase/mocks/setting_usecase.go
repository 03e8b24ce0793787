// Package mocks provides mock implementations of settings use cases for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	settingsDomain "github.com/allisson/credguard/internal/settings/domain"
)

// MockSettingUseCase is a mock implementation of SettingUseCase for testing.
type MockSettingUseCase struct {
	mock.Mock
}

// Save mocks the Save method of SettingUseCase.
func (m *MockSettingUseCase) Save(
	ctx context.Context,
	name, value string,
	protected bool,
) (*settingsDomain.Setting, error) {
	args := m.Called(ctx, name, value, protected)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settingsDomain.Setting), args.Error(1)
}

// Get mocks the Get method of SettingUseCase.
func (m *MockSettingUseCase) Get(ctx context.Context, name string) (*settingsDomain.Setting, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settingsDomain.Setting), args.Error(1)
}

// List mocks the List method of SettingUseCase.
func (m *MockSettingUseCase) List(ctx context.Context, offset, limit int) ([]*settingsDomain.Setting, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*settingsDomain.Setting), args.Error(1)
}

// Delete mocks the Delete method of SettingUseCase.
func (m *MockSettingUseCase) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// MigrateLegacy mocks the MigrateLegacy method of SettingUseCase.
func (m *MockSettingUseCase) MigrateLegacy(ctx context.Context, batchSize int) (int, error) {
	args := m.Called(ctx, batchSize)
	return args.Int(0), args.Error(1)
}
