package domain

import (
	"regexp"
	"time"

	"github.com/google/uuid"

	credentialDomain "github.com/allisson/credguard/internal/credential/domain"
)

// MaskedValue replaces protected values in listings.
const MaskedValue = "********"

var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]{0,127}$`)

// Setting is a named configuration value. Protected settings hold credentials
// (e.g. an API key) and are stored in the encrypted format.
type Setting struct {
	ID   uuid.UUID
	Name string
	// Value is the stored form when read from a repository, and the
	// plaintext once returned from the use case.
	Value     string
	Protected bool
	// State is filled by the use case; repositories leave it empty.
	State     credentialDomain.SecretState
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NeedsReentry reports whether the user has to provide the value again.
func (s *Setting) NeedsReentry() bool {
	return s.State == credentialDomain.SecretCorrupted
}

// ValidateName checks that name can be used as a setting key.
func ValidateName(name string) error {
	if !nameRegex.MatchString(name) {
		return ErrInvalidSettingName
	}
	return nil
}
