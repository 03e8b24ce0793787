// Package dto provides data transfer objects for settings HTTP requests and responses.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/credguard/internal/validation"
)

// MaxValueBytes bounds the size of a stored setting value.
const MaxValueBytes = 64 * 1024

// MaxMigrateBatchSize bounds the batch size accepted by the migrate endpoint.
const MaxMigrateBatchSize = 1000

// ValidateSettingName checks the :name path parameter.
func ValidateSettingName(name string) error {
	return validation.Errors{
		"name": validation.Validate(name, validation.Required, customValidation.SettingName),
	}.Filter()
}

// SaveSettingRequest contains the body of PUT /v1/settings/:name.
// The name is taken from the URL.
type SaveSettingRequest struct {
	Value     string `json:"value"`
	Protected bool   `json:"protected"`
}

// Validate checks if the save setting request is valid.
func (r *SaveSettingRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Value, customValidation.MaxBytes(MaxValueBytes)),
	)
}

// MigrateSettingsRequest contains the optional body of POST /v1/settings/migrate.
type MigrateSettingsRequest struct {
	BatchSize int `json:"batch_size"`
}

// Validate checks if the migrate request is valid. Zero means the configured default.
func (r *MigrateSettingsRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.BatchSize, validation.Min(0), validation.Max(MaxMigrateBatchSize)),
	)
}
