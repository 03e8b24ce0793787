package domain

import (
	"github.com/allisson/credguard/internal/errors"
)

// Credential protection error definitions.
//
// Derivation and encryption failures mean the platform primitives could not
// be used; they wrap ErrUnavailable. Decryption and format failures mean the
// stored value cannot be recovered; they wrap ErrInvalidInput.
var (
	// ErrDerivationFailed indicates the key could not be derived from the device fingerprint.
	ErrDerivationFailed = errors.Wrap(errors.ErrUnavailable, "key derivation failed")

	// ErrEncryptionFailed indicates the sealing step failed (nonce generation or cipher setup).
	ErrEncryptionFailed = errors.Wrap(errors.ErrUnavailable, "encryption failed")

	// ErrDecryptionFailed indicates authentication failed or the sealed payload is truncated.
	//
	// A stale key after a device fingerprint change surfaces as this error too;
	// the cause cannot be distinguished from tampering.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrInvalidPayloadFormat indicates the value does not carry the expected prefix or is empty.
	ErrInvalidPayloadFormat = errors.Wrap(errors.ErrInvalidInput, "invalid encrypted payload format")

	// ErrInvalidPayloadBase64 indicates the payload body is not valid base64.
	ErrInvalidPayloadBase64 = errors.Wrap(errors.ErrInvalidInput, "invalid encrypted payload base64")

	// ErrInvalidKeySize indicates the key is not exactly KeySize bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")
)

// Failure kinds reported in logs and metrics.
const (
	FailureDerivation = "derivation"
	FailureEncryption = "encryption"
	FailureDecryption = "decryption"
	FailureFormat     = "format"
	FailureUnknown    = "unknown"
)

// FailureKind classifies err into one of the failure kinds above.
func FailureKind(err error) string {
	switch {
	case errors.Is(err, ErrDerivationFailed):
		return FailureDerivation
	case errors.Is(err, ErrEncryptionFailed):
		return FailureEncryption
	case errors.Is(err, ErrInvalidPayloadFormat), errors.Is(err, ErrInvalidPayloadBase64):
		return FailureFormat
	case errors.Is(err, ErrDecryptionFailed), errors.Is(err, ErrInvalidKeySize):
		return FailureDecryption
	default:
		return FailureUnknown
	}
}
