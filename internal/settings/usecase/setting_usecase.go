package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	credentialDomain "github.com/allisson/credguard/internal/credential/domain"
	"github.com/allisson/credguard/internal/database"
	apperrors "github.com/allisson/credguard/internal/errors"
	settingsDomain "github.com/allisson/credguard/internal/settings/domain"
)

// settingUseCase implements SettingUseCase.
type settingUseCase struct {
	txManager   database.TxManager
	settingRepo SettingRepository
	protector   CredentialProtector
}

// NewSettingUseCase creates a new SettingUseCase.
func NewSettingUseCase(
	txManager database.TxManager,
	settingRepo SettingRepository,
	protector CredentialProtector,
) SettingUseCase {
	return &settingUseCase{
		txManager:   txManager,
		settingRepo: settingRepo,
		protector:   protector,
	}
}

// Save creates or replaces the setting identified by name.
func (s *settingUseCase) Save(
	ctx context.Context,
	name, value string,
	protected bool,
) (*settingsDomain.Setting, error) {
	if err := settingsDomain.ValidateName(name); err != nil {
		return nil, err
	}

	stored := value
	if protected {
		stored = s.protector.Encrypt(ctx, value)
	}

	var saved *settingsDomain.Setting
	err := s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		now := time.Now().UTC()

		existing, err := s.settingRepo.GetByName(txCtx, name)
		if err != nil && !errors.Is(err, settingsDomain.ErrSettingNotFound) {
			return err
		}

		if existing == nil {
			saved = &settingsDomain.Setting{
				ID:        uuid.Must(uuid.NewV7()),
				Name:      name,
				Value:     stored,
				Protected: protected,
				CreatedAt: now,
				UpdatedAt: now,
			}
			return s.settingRepo.Create(txCtx, saved)
		}

		existing.Value = stored
		existing.Protected = protected
		existing.UpdatedAt = now
		saved = existing
		return s.settingRepo.Update(txCtx, saved)
	})
	if err != nil {
		return nil, err
	}

	saved.State = stateOf(saved)
	saved.Value = value
	return saved, nil
}

// Get retrieves a setting by name and decrypts its value.
func (s *settingUseCase) Get(ctx context.Context, name string) (*settingsDomain.Setting, error) {
	setting, err := s.settingRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	setting.State = stateOf(setting)
	if setting.State == credentialDomain.SecretEncrypted {
		setting.Value = s.protector.Decrypt(ctx, setting.Value)
		if setting.Value == "" {
			setting.State = credentialDomain.SecretCorrupted
		}
	}
	return setting, nil
}

// List returns a page of settings with protected values masked.
func (s *settingUseCase) List(ctx context.Context, offset, limit int) ([]*settingsDomain.Setting, error) {
	settings, err := s.settingRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	for _, setting := range settings {
		setting.State = stateOf(setting)
		if setting.Protected && setting.Value != "" {
			setting.Value = settingsDomain.MaskedValue
		}
	}
	return settings, nil
}

// Delete removes a setting by name.
func (s *settingUseCase) Delete(ctx context.Context, name string) error {
	return s.settingRepo.Delete(ctx, name)
}

// MigrateLegacy encrypts legacy protected values batch by batch, each batch in
// its own transaction. It stops with ErrMigrationIncomplete at the first value
// that stays in plaintext, keeping the batches already committed.
func (s *settingUseCase) MigrateLegacy(ctx context.Context, batchSize int) (int, error) {
	if batchSize < 1 {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "batch size must be positive")
	}

	total := 0
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		migrated := 0
		fetched := 0
		err := s.txManager.WithTx(ctx, func(txCtx context.Context) error {
			legacy, err := s.settingRepo.ListLegacyProtected(txCtx, batchSize)
			if err != nil {
				return err
			}
			fetched = len(legacy)

			now := time.Now().UTC()
			for _, setting := range legacy {
				encoded := s.protector.Migrate(txCtx, setting.Value)
				if !s.protector.IsEncrypted(encoded) {
					return fmt.Errorf("%w: setting %q", settingsDomain.ErrMigrationIncomplete, setting.Name)
				}

				setting.Value = encoded
				setting.UpdatedAt = now
				if err := s.settingRepo.Update(txCtx, setting); err != nil {
					return err
				}
				migrated++
			}
			return nil
		})
		if err != nil {
			return total, err
		}

		total += migrated
		if fetched < batchSize {
			return total, nil
		}
	}
}

// stateOf classifies the stored value of a setting.
func stateOf(setting *settingsDomain.Setting) credentialDomain.SecretState {
	if !setting.Protected && setting.Value != "" {
		return credentialDomain.SecretPlaintext
	}
	return credentialDomain.ClassifySecret(setting.Value)
}
