// Package usecase implements settings management on top of credential protection.
package usecase

import (
	"context"

	settingsDomain "github.com/allisson/credguard/internal/settings/domain"
)

// SettingRepository defines the interface for Setting persistence operations.
type SettingRepository interface {
	Create(ctx context.Context, setting *settingsDomain.Setting) error
	Update(ctx context.Context, setting *settingsDomain.Setting) error
	GetByName(ctx context.Context, name string) (*settingsDomain.Setting, error)
	List(ctx context.Context, offset, limit int) ([]*settingsDomain.Setting, error)
	ListLegacyProtected(ctx context.Context, limit int) ([]*settingsDomain.Setting, error)
	Delete(ctx context.Context, name string) error
}

// CredentialProtector is the never-failing string boundary for protected values.
type CredentialProtector interface {
	Encrypt(ctx context.Context, plaintext string) string
	Decrypt(ctx context.Context, encoded string) string
	IsEncrypted(value string) bool
	Migrate(ctx context.Context, value string) string
}

// SettingUseCase defines the interface for settings business logic.
type SettingUseCase interface {
	// Save creates or replaces a setting. Protected values are encrypted before
	// persisting; if encryption degrades the value is stored as plaintext and
	// the returned State is SecretPlaintext.
	Save(ctx context.Context, name, value string, protected bool) (*settingsDomain.Setting, error)
	// Get returns the setting with its plaintext value. A protected value that
	// cannot be decrypted comes back empty with State SecretCorrupted.
	Get(ctx context.Context, name string) (*settingsDomain.Setting, error)
	// List returns settings without exposing protected values.
	List(ctx context.Context, offset, limit int) ([]*settingsDomain.Setting, error)
	Delete(ctx context.Context, name string) error
	// MigrateLegacy encrypts protected settings still stored as plaintext and
	// returns how many were migrated.
	MigrateLegacy(ctx context.Context, batchSize int) (int, error)
}
