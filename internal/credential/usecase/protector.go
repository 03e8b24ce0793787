package usecase

import (
	"context"
	"fmt"
	"log/slog"

	credentialDomain "github.com/allisson/credguard/internal/credential/domain"
)

// Protector is the string-in/string-out boundary used by settings persistence.
//
// No error or panic escapes its methods:
//   - Encrypt returns the original plaintext when encryption fails, so the
//     value is never lost. The failure is logged.
//   - Decrypt returns "" when the payload cannot be decoded or authenticated.
//     The secret is unrecoverable and the user has to re-enter it.
type Protector struct {
	useCase CredentialUseCase
	logger  *slog.Logger
}

// NewProtector creates a Protector around useCase.
func NewProtector(useCase CredentialUseCase, logger *slog.Logger) *Protector {
	return &Protector{
		useCase: useCase,
		logger:  logger,
	}
}

// Encrypt returns the encrypted form of plaintext, or plaintext itself on failure.
func (p *Protector) Encrypt(ctx context.Context, plaintext string) (result string) {
	defer p.recoverTo(ctx, "encrypt", &result, plaintext)

	encoded, err := p.useCase.Encrypt(ctx, plaintext)
	if err != nil {
		p.logger.ErrorContext(ctx, "credential encryption failed, keeping plaintext",
			slog.String("failure", credentialDomain.FailureKind(err)),
			slog.Any("error", err),
		)
		return plaintext
	}
	return encoded
}

// Decrypt returns the plaintext of encoded, encoded itself when it is not
// encrypted, or "" when it cannot be recovered.
func (p *Protector) Decrypt(ctx context.Context, encoded string) (result string) {
	defer p.recoverTo(ctx, "decrypt", &result, "")

	plaintext, err := p.useCase.Decrypt(ctx, encoded)
	if err != nil {
		p.logger.WarnContext(ctx, "stored credential is unrecoverable and must be re-entered",
			slog.String("failure", credentialDomain.FailureKind(err)),
			slog.String("hint", "a change of locale, timezone, hardware or platform alters the device fingerprint"),
			slog.Any("error", err),
		)
		return ""
	}
	return plaintext
}

// IsEncrypted reports whether value carries the encrypted prefix.
func (p *Protector) IsEncrypted(value string) bool {
	return p.useCase.IsEncrypted(value)
}

// Migrate upgrades legacy plaintext to the encrypted format. On failure the
// value is returned unchanged, like Encrypt.
func (p *Protector) Migrate(ctx context.Context, value string) (result string) {
	defer p.recoverTo(ctx, "migrate", &result, value)

	migrated, err := p.useCase.Migrate(ctx, value)
	if err != nil {
		p.logger.ErrorContext(ctx, "credential migration failed, keeping plaintext",
			slog.String("failure", credentialDomain.FailureKind(err)),
			slog.Any("error", err),
		)
		return value
	}
	return migrated
}

// recoverTo turns a panic into the operation's fallback value.
func (p *Protector) recoverTo(ctx context.Context, operation string, result *string, fallback string) {
	if r := recover(); r != nil {
		p.logger.ErrorContext(ctx, "credential operation panicked",
			slog.String("operation", operation),
			slog.Any("error", fmt.Errorf("panic: %v", r)),
		)
		*result = fallback
	}
}
