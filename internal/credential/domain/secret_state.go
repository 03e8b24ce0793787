package domain

// SecretState describes how a stored secret value is held.
type SecretState string

const (
	// SecretEmpty means no value has been stored.
	SecretEmpty SecretState = "empty"
	// SecretPlaintext means the value is a legacy record written before encryption.
	SecretPlaintext SecretState = "plaintext"
	// SecretEncrypted means the value is in the persisted encrypted format.
	SecretEncrypted SecretState = "encrypted"
	// SecretCorrupted means the value is encrypted but can no longer be decrypted.
	// The user has to re-enter it.
	SecretCorrupted SecretState = "corrupted"
)

// ClassifySecret returns the state of a stored value from its shape alone.
// It never returns SecretCorrupted; that requires a decryption attempt.
func ClassifySecret(stored string) SecretState {
	switch {
	case stored == "":
		return SecretEmpty
	case IsEncrypted(stored):
		return SecretEncrypted
	default:
		return SecretPlaintext
	}
}
