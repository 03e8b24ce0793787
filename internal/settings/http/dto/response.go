package dto

import (
	"time"

	settingsDomain "github.com/allisson/credguard/internal/settings/domain"
)

// SettingResponse represents a setting in API responses.
// Value holds plaintext only in GET /v1/settings/:name responses.
type SettingResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Value        string    `json:"value"`
	Protected    bool      `json:"protected"`
	State        string    `json:"state"`
	NeedsReentry bool      `json:"needs_reentry"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ListSettingsResponse represents a page of settings in API responses.
type ListSettingsResponse struct {
	Data []SettingResponse `json:"data"`
}

// MigrateSettingsResponse reports the outcome of a legacy migration run.
type MigrateSettingsResponse struct {
	Migrated int `json:"migrated"`
}

// MapSettingToResponse converts a domain setting to an API response.
func MapSettingToResponse(setting *settingsDomain.Setting) SettingResponse {
	return SettingResponse{
		ID:           setting.ID.String(),
		Name:         setting.Name,
		Value:        setting.Value,
		Protected:    setting.Protected,
		State:        string(setting.State),
		NeedsReentry: setting.NeedsReentry(),
		CreatedAt:    setting.CreatedAt,
		UpdatedAt:    setting.UpdatedAt,
	}
}

// MapSettingToSaveResponse converts a saved setting to an API response
// without echoing protected values back.
func MapSettingToSaveResponse(setting *settingsDomain.Setting) SettingResponse {
	response := MapSettingToResponse(setting)
	if setting.Protected && setting.Value != "" {
		response.Value = settingsDomain.MaskedValue
	}
	return response
}

// MapSettingsToListResponse converts a slice of domain settings to a list response.
func MapSettingsToListResponse(settings []*settingsDomain.Setting) ListSettingsResponse {
	data := make([]SettingResponse, 0, len(settings))
	for _, setting := range settings {
		data = append(data, MapSettingToResponse(setting))
	}
	return ListSettingsResponse{Data: data}
}
