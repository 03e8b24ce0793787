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

// MySQLSettingRepository implements Setting persistence for MySQL databases.
// IDs are stored as BINARY(16).
type MySQLSettingRepository struct {
	db *sql.DB
}

// Create inserts a new setting.
func (m *MySQLSettingRepository) Create(ctx context.Context, setting *settingsDomain.Setting) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO settings (id, name, value, protected, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	id, err := setting.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal setting id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (m *MySQLSettingRepository) Update(ctx context.Context, setting *settingsDomain.Setting) error {
	querier := database.GetTx(ctx, m.db)

	id, err := setting.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal setting id")
	}

	query := `UPDATE settings SET value = ?, protected = ?, updated_at = ? WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, setting.Value, setting.Protected, setting.UpdatedAt, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update setting")
	}

	// MySQL reports zero affected rows when the new values equal the old ones,
	// so only a missing row is an error.
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if affected == 0 {
		if _, err := m.GetByName(ctx, setting.Name); err != nil {
			return err
		}
	}
	return nil
}

// GetByName retrieves a setting by its name.
func (m *MySQLSettingRepository) GetByName(ctx context.Context, name string) (*settingsDomain.Setting, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, value, protected, created_at, updated_at
			  FROM settings
			  WHERE name = ?`

	setting, err := scanBinaryID(querier.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, settingsDomain.ErrSettingNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get setting by name")
	}
	return setting, nil
}

// List returns settings ordered by name.
func (m *MySQLSettingRepository) List(ctx context.Context, offset, limit int) ([]*settingsDomain.Setting, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, value, protected, created_at, updated_at
			  FROM settings
			  ORDER BY name ASC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list settings")
	}
	return collectBinaryID(rows)
}

// ListLegacyProtected returns protected settings whose value is non-empty and
// not yet in the encrypted format. The prefix comparison is case-sensitive.
func (m *MySQLSettingRepository) ListLegacyProtected(
	ctx context.Context,
	limit int,
) ([]*settingsDomain.Setting, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, value, protected, created_at, updated_at
			  FROM settings
			  WHERE protected = 1 AND value <> '' AND BINARY SUBSTRING(value, 1, ?) <> BINARY ?
			  ORDER BY name ASC
			  LIMIT ?
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
	return collectBinaryID(rows)
}

// Delete removes a setting by name.
func (m *MySQLSettingRepository) Delete(ctx context.Context, name string) error {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM settings WHERE name = ?`, name)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete setting")
	}
	return checkAffected(result)
}

// NewMySQLSettingRepository creates a new MySQL Setting repository instance.
func NewMySQLSettingRepository(db *sql.DB) *MySQLSettingRepository {
	return &MySQLSettingRepository{db: db}
}

func scanBinaryID(row rowScanner) (*settingsDomain.Setting, error) {
	var setting settingsDomain.Setting
	var id []byte

	err := row.Scan(
		&id,
		&setting.Name,
		&setting.Value,
		&setting.Protected,
		&setting.CreatedAt,
		&setting.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := setting.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal setting id")
	}
	return &setting, nil
}

func collectBinaryID(rows *sql.Rows) ([]*settingsDomain.Setting, error) {
	defer func() {
		_ = rows.Close()
	}()

	settings := make([]*settingsDomain.Setting, 0)
	for rows.Next() {
		setting, err := scanBinaryID(rows)
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
