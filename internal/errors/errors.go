// Package errors defines the sentinel categories shared by the settings and
// credential layers. HTTP handlers and CLI commands branch on these instead of
// on storage or crypto failures.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means no setting exists under the requested name.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a write collided with an existing row.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput means the caller supplied a malformed name or value.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnavailable means the device key could not be derived or used.
	ErrUnavailable = errors.New("unavailable")
)

// categories is ordered: the first sentinel found in an error chain wins.
var categories = []struct {
	sentinel error
	code     string
}{
	{ErrNotFound, "not_found"},
	{ErrConflict, "conflict"},
	{ErrInvalidInput, "invalid_input"},
	{ErrUnavailable, "unavailable"},
}

// Wrap prefixes err with message and keeps it matchable by Is. A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether target appears anywhere in err's chain.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Code returns the stable machine-readable code for err's category, or
// "internal_error" when err carries none of the sentinels.
func Code(err error) string {
	for _, c := range categories {
		if errors.Is(err, c.sentinel) {
			return c.code
		}
	}
	return "internal_error"
}
