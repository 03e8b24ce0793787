package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	credentialService "github.com/allisson/credguard/internal/credential/service"
	settingsUseCase "github.com/allisson/credguard/internal/settings/usecase"
)

// ErrEncryptionUnavailable is returned by encrypt when the protector degraded
// to passthrough.
var ErrEncryptionUnavailable = errors.New("encryption unavailable: value was not encrypted")

// ErrUndecryptable is returned by decrypt when the value cannot be recovered
// on this device.
var ErrUndecryptable = errors.New("value cannot be decrypted on this device and must be re-entered")

// RunEncrypt encrypts a single value read from --value or stdin.
func RunEncrypt(
	ctx context.Context,
	protector settingsUseCase.CredentialProtector,
	logger *slog.Logger,
	io IOTuple,
	value string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	plaintext, err := readValue(io.Reader, value)
	if err != nil {
		return err
	}

	encrypted := protector.Encrypt(ctx, plaintext)
	if plaintext != "" && !protector.IsEncrypted(encrypted) {
		return ErrEncryptionUnavailable
	}

	logger.Debug("value encrypted", slog.Int("length", len(encrypted)))

	if format == "json" {
		return writeJSON(io.Writer, map[string]any{"value": encrypted})
	}
	_, err = fmt.Fprintln(io.Writer, encrypted)
	return err
}

// RunDecrypt decrypts a single value read from --value or stdin. Legacy
// plaintext is printed unchanged.
func RunDecrypt(
	ctx context.Context,
	protector settingsUseCase.CredentialProtector,
	logger *slog.Logger,
	io IOTuple,
	value string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	encoded, err := readValue(io.Reader, value)
	if err != nil {
		return err
	}

	plaintext := protector.Decrypt(ctx, encoded)
	if plaintext == "" && protector.IsEncrypted(encoded) {
		logger.Warn("decryption failed; the device fingerprint may have changed")
		return ErrUndecryptable
	}

	if format == "json" {
		return writeJSON(io.Writer, map[string]any{
			"value":     plaintext,
			"encrypted": protector.IsEncrypted(encoded),
		})
	}
	_, err = fmt.Fprintln(io.Writer, plaintext)
	return err
}

// RunIsEncrypted reports whether a value carries the encrypted prefix.
func RunIsEncrypted(
	protector settingsUseCase.CredentialProtector,
	io IOTuple,
	value string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	v, err := readValue(io.Reader, value)
	if err != nil {
		return err
	}

	encrypted := protector.IsEncrypted(v)
	if format == "json" {
		return writeJSON(io.Writer, map[string]any{"encrypted": encrypted})
	}
	_, err = fmt.Fprintln(io.Writer, encrypted)
	return err
}

// RunFingerprintStatus prints a SHA-256 digest of the current device
// fingerprint and whether a key can be derived from it. The raw fingerprint
// is never printed.
func RunFingerprintStatus(
	ctx context.Context,
	device credentialService.DeviceInfoProvider,
	keys credentialService.KeyProvider,
	io IOTuple,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	sum := sha256.Sum256([]byte(device.Fingerprint()))
	digest := hex.EncodeToString(sum[:])

	derivable := true
	key, err := keys.GetKey(ctx)
	if err != nil {
		derivable = false
	}
	clear(key)

	if format == "json" {
		return writeJSON(io.Writer, map[string]any{
			"fingerprint_sha256": digest,
			"key_derivable":      derivable,
		})
	}

	_, err = fmt.Fprintf(io.Writer, "Fingerprint SHA-256: %s\nKey derivable: %t\n", digest, derivable)
	return err
}
