// Package repository implements data persistence for application settings.
// Repositories support SQLite, PostgreSQL and MySQL.
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

// SQLiteSettingRepository implements Setting persistence for SQLite databases.
type SQLiteSettingRepository struct {
	db *sql.DB
}

// Create inserts a new setting.
func (s *SQLiteSettingRepository) Create(ctx context.Context, setting *settingsDomain.Setting) error {
	querier := database.GetTx(ctx, s.db)

	query := `INSERT INTO settings (id, name, value, protected, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		setting.ID.String(),
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
func (s *SQLiteSettingRepository) Update(ctx context.Context, setting *settingsDomain.Setting) error {
	querier := database.GetTx(ctx, s.db)

	query := `UPDATE settings SET value = ?, protected = ?, updated_at = ? WHERE id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		setting.Value,
		setting.Protected,
		setting.UpdatedAt,
		setting.ID.String(),
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update setting")
	}
	return checkAffected(result)
}

// GetByName retrieves a setting by its name.
func (s *SQLiteSettingRepository) GetByName(ctx context.Context, name string) (*settingsDomain.Setting, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT id, name, value, protected, created_at, updated_at
			  FROM settings
			  WHERE name = ?`

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
func (s *SQLiteSettingRepository) List(ctx context.Context, offset, limit int) ([]*settingsDomain.Setting, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT id, name, value, protected, created_at, updated_at
			  FROM settings
			  ORDER BY name ASC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list settings")
	}
	return collectTextID(rows)
}

// ListLegacyProtected returns protected settings whose value is non-empty and
// not yet in the encrypted format.
func (s *SQLiteSettingRepository) ListLegacyProtected(
	ctx context.Context,
	limit int,
) ([]*settingsDomain.Setting, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT id, name, value, protected, created_at, updated_at
			  FROM settings
			  WHERE protected = 1 AND value <> '' AND substr(value, 1, ?) <> ?
			  ORDER BY name ASC
			  LIMIT ?`

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
func (s *SQLiteSettingRepository) Delete(ctx context.Context, name string) error {
	querier := database.GetTx(ctx, s.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM settings WHERE name = ?`, name)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete setting")
	}
	return checkAffected(result)
}

// NewSQLiteSettingRepository creates a new SQLite Setting repository instance.
func NewSQLiteSettingRepository(db *sql.DB) *SQLiteSettingRepository {
	return &SQLiteSettingRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanTextID scans a setting whose id column holds the UUID string form
// (SQLite TEXT and PostgreSQL UUID both scan into uuid.UUID).
func scanTextID(row rowScanner) (*settingsDomain.Setting, error) {
	var setting settingsDomain.Setting
	err := row.Scan(
		&setting.ID,
		&setting.Name,
		&setting.Value,
		&setting.Protected,
		&setting.CreatedAt,
		&setting.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func collectTextID(rows *sql.Rows) ([]*settingsDomain.Setting, error) {
	defer func() {
		_ = rows.Close()
	}()

	settings := make([]*settingsDomain.Setting, 0)
	for rows.Next() {
		setting, err := scanTextID(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan setting")
		}
		settings = append(settings, setting)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate settings")
	}
	return settings, nil
}

func checkAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if affected == 0 {
		return settingsDomain.ErrSettingNotFound
	}
	return nil
}
