// Package domain defines the application settings model and its errors.
package domain

import (
	"github.com/allisson/credguard/internal/errors"
)

// Setting-specific error definitions.
var (
	// ErrSettingNotFound indicates no setting exists with the given name.
	ErrSettingNotFound = errors.Wrap(errors.ErrNotFound, "setting not found")

	// ErrInvalidSettingName indicates the name does not match the allowed pattern.
	ErrInvalidSettingName = errors.Wrap(errors.ErrInvalidInput, "invalid setting name")

	// ErrMigrationIncomplete indicates a protected setting could not be encrypted
	// and was left in plaintext.
	ErrMigrationIncomplete = errors.Wrap(errors.ErrUnavailable, "legacy settings migration incomplete")
)
