package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/credguard/internal/database"
	settingsDomain "github.com/allisson/credguard/internal/settings/domain"
)

var settingColumns = []string{"id", "name", "value", "protected", "created_at", "updated_at"}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db, mock
}

func newTestSetting() *settingsDomain.Setting {
	now := time.Now().UTC()
	return &settingsDomain.Setting{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      "openai.api_key",
		Value:     "enc:v1:Zm9vYmFy",
		Protected: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestPostgreSQLSettingRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLSettingRepository(db)
	setting := newTestSetting()

	mock.ExpectExec(`INSERT INTO settings \(id, name, value, protected, created_at, updated_at\)`).
		WithArgs(setting.ID, setting.Name, setting.Value, setting.Protected, setting.CreatedAt, setting.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), setting)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLSettingRepository_Create_Error(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLSettingRepository(db)

	mock.ExpectExec(`INSERT INTO settings`).WillReturnError(assert.AnError)

	err := repo.Create(context.Background(), newTestSetting())

	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "failed to create setting")
}

func TestPostgreSQLSettingRepository_GetByName(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLSettingRepository(db)
		setting := newTestSetting()

		rows := sqlmock.NewRows(settingColumns).AddRow(
			setting.ID.String(), setting.Name, setting.Value, true, setting.CreatedAt, setting.UpdatedAt,
		)
		mock.ExpectQuery(`SELECT id, name, value, protected, created_at, updated_at\s+FROM settings\s+WHERE name = \$1`).
			WithArgs(setting.Name).
			WillReturnRows(rows)

		got, err := repo.GetByName(ctx, setting.Name)

		require.NoError(t, err)
		assert.Equal(t, setting.ID, got.ID)
		assert.Equal(t, setting.Name, got.Name)
		assert.Equal(t, setting.Value, got.Value)
		assert.True(t, got.Protected)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLSettingRepository(db)

		mock.ExpectQuery(`FROM settings`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		got, err := repo.GetByName(ctx, "missing")

		assert.Nil(t, got)
		assert.ErrorIs(t, err, settingsDomain.ErrSettingNotFound)
	})
}

func TestPostgreSQLSettingRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("updated", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLSettingRepository(db)
		setting := newTestSetting()

		mock.ExpectExec(`UPDATE settings SET value = \$1, protected = \$2, updated_at = \$3 WHERE id = \$4`).
			WithArgs(setting.Value, setting.Protected, setting.UpdatedAt, setting.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Update(ctx, setting))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLSettingRepository(db)

		mock.ExpectExec(`UPDATE settings`).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Update(ctx, newTestSetting()), settingsDomain.ErrSettingNotFound)
	})
}

func TestPostgreSQLSettingRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLSettingRepository(db)
	first := newTestSetting()
	second := newTestSetting()
	second.Name = "theme"
	second.Value = "dark"
	second.Protected = false

	rows := sqlmock.NewRows(settingColumns).
		AddRow(first.ID.String(), first.Name, first.Value, true, first.CreatedAt, first.UpdatedAt).
		AddRow(second.ID.String(), second.Name, second.Value, false, second.CreatedAt, second.UpdatedAt)
	mock.ExpectQuery(`ORDER BY name ASC\s+LIMIT \$1 OFFSET \$2`).
		WithArgs(50, 0).
		WillReturnRows(rows)

	settings, err := repo.List(context.Background(), 0, 50)

	require.NoError(t, err)
	require.Len(t, settings, 2)
	assert.Equal(t, "openai.api_key", settings[0].Name)
	assert.Equal(t, "theme", settings[1].Name)
	assert.False(t, settings[1].Protected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLSettingRepository_ListLegacyProtected(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLSettingRepository(db)
	legacy := newTestSetting()
	legacy.Value = "sk-plaintext"

	rows := sqlmock.NewRows(settingColumns).
		AddRow(legacy.ID.String(), legacy.Name, legacy.Value, true, legacy.CreatedAt, legacy.UpdatedAt)
	mock.ExpectQuery(`WHERE protected = TRUE AND value <> '' AND substr\(value, 1, \$1\) <> \$2`).
		WithArgs(len("enc:v1:"), "enc:v1:", 10).
		WillReturnRows(rows)

	settings, err := repo.ListLegacyProtected(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, settings, 1)
	assert.Equal(t, "sk-plaintext", settings[0].Value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLSettingRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deleted", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLSettingRepository(db)

		mock.ExpectExec(`DELETE FROM settings WHERE name = \$1`).
			WithArgs("theme").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(ctx, "theme"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLSettingRepository(db)

		mock.ExpectExec(`DELETE FROM settings`).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, "missing"), settingsDomain.ErrSettingNotFound)
	})
}

func TestPostgreSQLSettingRepository_UsesTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLSettingRepository(db)
	txManager := database.NewTxManager(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM settings`).
		WithArgs("theme").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := txManager.WithTx(context.Background(), func(ctx context.Context) error {
		return repo.Delete(ctx, "theme")
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLSettingRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLSettingRepository(db)
	setting := newTestSetting()
	id, err := setting.ID.MarshalBinary()
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO settings \(id, name, value, protected, created_at, updated_at\)\s+VALUES \(\?, \?, \?, \?, \?, \?\)`).
		WithArgs(id, setting.Name, setting.Value, setting.Protected, setting.CreatedAt, setting.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), setting))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLSettingRepository_GetByName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLSettingRepository(db)
	setting := newTestSetting()
	id, err := setting.ID.MarshalBinary()
	require.NoError(t, err)

	rows := sqlmock.NewRows(settingColumns).
		AddRow(id, setting.Name, setting.Value, true, setting.CreatedAt, setting.UpdatedAt)
	mock.ExpectQuery(`WHERE name = \?`).
		WithArgs(setting.Name).
		WillReturnRows(rows)

	got, err := repo.GetByName(context.Background(), setting.Name)

	require.NoError(t, err)
	assert.Equal(t, setting.ID, got.ID)
	assert.Equal(t, setting.Value, got.Value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLSettingRepository_Update_Unchanged(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLSettingRepository(db)
	setting := newTestSetting()
	id, err := setting.ID.MarshalBinary()
	require.NoError(t, err)

	mock.ExpectExec(`UPDATE settings SET value = \?, protected = \?, updated_at = \? WHERE id = \?`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`WHERE name = \?`).
		WithArgs(setting.Name).
		WillReturnRows(sqlmock.NewRows(settingColumns).
			AddRow(id, setting.Name, setting.Value, true, setting.CreatedAt, setting.UpdatedAt))

	require.NoError(t, repo.Update(context.Background(), setting))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLSettingRepository_ListLegacyProtected(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLSettingRepository(db)

	mock.ExpectQuery(`BINARY SUBSTRING\(value, 1, \?\) <> BINARY \?`).
		WithArgs(len("enc:v1:"), "enc:v1:", 5).
		WillReturnRows(sqlmock.NewRows(settingColumns))

	settings, err := repo.ListLegacyProtected(context.Background(), 5)

	require.NoError(t, err)
	assert.Empty(t, settings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLSettingRepository_GetByName_InvalidID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLSettingRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`WHERE name = \?`).
		WillReturnRows(sqlmock.NewRows(settingColumns).
			AddRow([]byte{1, 2, 3}, "theme", "dark", false, now, now))

	got, err := repo.GetByName(context.Background(), "theme")

	assert.Nil(t, got)
	assert.Error(t, err)
}

func TestSQLiteSettingRepository_Queries(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	repo := NewSQLiteSettingRepository(db)
	setting := newTestSetting()

	mock.ExpectExec(`INSERT INTO settings`).
		WithArgs(setting.ID.String(), setting.Name, setting.Value, setting.Protected, setting.CreatedAt, setting.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`WHERE protected = 1 AND value <> '' AND substr\(value, 1, \?\) <> \?`).
		WithArgs(len("enc:v1:"), "enc:v1:", 100).
		WillReturnRows(sqlmock.NewRows(settingColumns))
	mock.ExpectExec(`DELETE FROM settings WHERE name = \?`).
		WithArgs(setting.Name).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(ctx, setting))
	legacy, err := repo.ListLegacyProtected(ctx, 100)
	require.NoError(t, err)
	assert.Empty(t, legacy)
	require.NoError(t, repo.Delete(ctx, setting.Name))

	assert.NoError(t, mock.ExpectationsWereMet())
}
