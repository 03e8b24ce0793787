package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// payloadEncoding rejects non-canonical base64 so that altering the unused
// trailing bits of the last character is detected as corruption.
var payloadEncoding = base64.StdEncoding.Strict()

// EncryptedPayload is the persisted representation of an encrypted secret.
//
// It serializes to "enc:v1:<base64(nonce || ciphertext)>". The prefix alone
// determines whether a stored string is encrypted.
type EncryptedPayload struct {
	Version string
	Sealed  []byte
}

// NewEncryptedPayload parses the string representation of an encrypted payload.
//
// Returns ErrInvalidPayloadFormat when the value does not start with the
// current prefix or carries no payload, and ErrInvalidPayloadBase64 when the
// body is not canonical base64.
func NewEncryptedPayload(content string) (EncryptedPayload, error) {
	if !IsEncrypted(content) {
		return EncryptedPayload{}, fmt.Errorf("%w: missing %q prefix", ErrInvalidPayloadFormat, EncryptedPrefix)
	}

	body := strings.TrimPrefix(content, EncryptedPrefix)
	if body == "" {
		return EncryptedPayload{}, fmt.Errorf("%w: empty payload", ErrInvalidPayloadFormat)
	}

	sealed, err := payloadEncoding.DecodeString(body)
	if err != nil {
		return EncryptedPayload{}, fmt.Errorf("%w: %v", ErrInvalidPayloadBase64, err)
	}

	return EncryptedPayload{
		Version: PayloadVersion,
		Sealed:  sealed,
	}, nil
}

// String serializes the payload to "enc:v1:<base64>".
func (p EncryptedPayload) String() string {
	return EncryptedPrefix + payloadEncoding.EncodeToString(p.Sealed)
}

// IsEncrypted reports whether value is in the current encrypted format.
func IsEncrypted(value string) bool {
	return strings.HasPrefix(value, EncryptedPrefix)
}
