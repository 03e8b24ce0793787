// Package domain defines the core types of the credential-protection subsystem:
// the versioned wire format for encrypted secrets, secret states, and the
// fixed parameters of key derivation.
package domain

const (
	// PayloadPrefix is the tag shared by every encrypted payload format.
	PayloadPrefix = "enc:"

	// PayloadVersion identifies the current wire format revision.
	//
	// v1 layout: base64(nonce || ciphertext) where the nonce is 12 bytes and the
	// ciphertext carries the 16-byte AES-GCM authentication tag at its end.
	PayloadVersion = "v1"

	// NonceSize is the AES-GCM nonce length in bytes (96 bits).
	NonceSize = 12

	// TagSize is the AES-GCM authentication tag length in bytes.
	TagSize = 16

	// KeySize is the derived key length in bytes (AES-256).
	KeySize = 32

	// MinKDFIterations is the lowest PBKDF2 iteration count accepted by configuration.
	MinKDFIterations = 100000
)

// ApplicationSalt is the fixed PBKDF2 salt. It binds derived keys to this
// application; it is not secret.
var ApplicationSalt = []byte("credguard/local-credential-protection/v1")

// EncryptedPrefix is the full prefix written by the current codec ("enc:v1:").
const EncryptedPrefix = PayloadPrefix + PayloadVersion + ":"
