// Package validation provides custom validation rules for the application.
package validation

import (
	"fmt"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/credguard/internal/errors"
	settingsDomain "github.com/allisson/credguard/internal/settings/domain"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// SettingName validates the setting key format
var SettingName = validation.NewStringRuleWithError(
	func(s string) bool {
		return settingsDomain.ValidateName(s) == nil
	},
	validation.NewError(
		"validation_setting_name",
		"must start with a letter or digit and contain only letters, digits, '.', '_' or '-' (max 128)",
	),
)

// MaxBytes validates that a string is at most n bytes long.
// Length rules count runes; stored values are limited in bytes.
func MaxBytes(n int) validation.Rule {
	return validation.NewStringRuleWithError(
		func(s string) bool {
			return len(s) <= n
		},
		validation.NewError("validation_max_bytes", fmt.Sprintf("must be at most %d bytes", n)),
	)
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
