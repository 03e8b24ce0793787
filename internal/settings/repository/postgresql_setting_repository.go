package repository

import (
	"context"
	"database/sql"
	"errors"

	credentialDomain "github.com/allisson/credguard/internal/credential/domain"
	"github.com/allisson/credguard/internal/database"
	apperrors "github.com/allisson/credguard/internal/errors"
	settingsDomain "github.com/allisson/credguard/internal/settings/domain"
)

// PostgreSQLSettingRepository implements Setting persistence for PostgreSQL databases.
type PostgreSQLSettingRepository struct {
	db *sql.DB
}

// Create inserts a new setting.
func (p *PostgreSQLSettingRepository) Create(ctx context.Context, setting *settingsDomain.Setting) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO settings (id, name, value, protected, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		setting.ID,
		setting.Name,
		setting.Value,
		setting.Protected,
		setting.CreatedAt,
		setting.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create setting")
	}
	return nil
}

// Update overwrites the value, protection flag and update time of a setting.
func (p *PostgreSQLSettingRepository) Update(ctx context.Context, setting *settingsDomain.Setting) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE settings SET value = $1, protected = $2, updated_at = $3 WHERE id = $4`

	result, err := querier.ExecContext(
		ctx,
		query,
		setting.Value,
		setting.Protected,
		setting.UpdatedAt,
		setting.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update setting")
	}
	return checkAffected(result)
}

// GetByName retrieves a setting by its name.
func (p *PostgreSQLSettingRepository) GetByName(
	ctx context.Context,
	name string,
) (*settingsDomain.Setting, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, value, protected, created_at, updated_at
			  FROM settings
			  WHERE name = $1`

	setting, err := scanTextID(querier.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, settingsDomain.ErrSettingNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get setting by name")
	}
	return setting, nil
}

// List returns settings ordered by name.
func (p *PostgreSQLSettingRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*settingsDomain.Setting, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, value, protected, created_at, updated_at
			  FROM settings
			  ORDER BY name ASC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list settings")
	}
	return collectTextID(rows)
}

// ListLegacyProtected returns protected settings whose value is non-empty and
// not yet in the encrypted format. Rows are locked for the surrounding transaction.
func (p *PostgreSQLSettingRepository) ListLegacyProtected(
	ctx context.Context,
	limit int,
) ([]*settingsDomain.Setting, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, value, protected, created_at, updated_at
			  FROM settings
			  WHERE protected = TRUE AND value <> '' AND substr(value, 1, $1) <> $2
			  ORDER BY name ASC
			  LIMIT $3
			  FOR UPDATE SKIP LOCKED`

	rows, err := querier.QueryContext(
		ctx,
		query,
		len(credentialDomain.EncryptedPrefix),
		credentialDomain.EncryptedPrefix,
		limit,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list legacy settings")
	}
	return collectTextID(rows)
}

// Delete removes a setting by name.
func (p *PostgreSQLSettingRepository) Delete(ctx context.Context, name string) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM settings WHERE name = $1`, name)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete setting")
	}
	return checkAffected(result)
}

// NewPostgreSQLSettingRepository creates a new PostgreSQL Setting repository instance.
func NewPostgreSQLSettingRepository(db *sql.DB) *PostgreSQLSettingRepository {
	return &PostgreSQLSettingRepository{db: db}
}
