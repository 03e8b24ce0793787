package usecase

import (
	"context"
	"time"

	"github.com/allisson/credguard/internal/metrics"
)

// credentialUseCaseWithMetrics decorates CredentialUseCase with metrics instrumentation.
type credentialUseCaseWithMetrics struct {
	next    CredentialUseCase
	metrics metrics.BusinessMetrics
}

// NewCredentialUseCaseWithMetrics wraps a CredentialUseCase with metrics recording.
func NewCredentialUseCaseWithMetrics(useCase CredentialUseCase, m metrics.BusinessMetrics) CredentialUseCase {
	return &credentialUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Encrypt records metrics for encryption operations.
func (c *credentialUseCaseWithMetrics) Encrypt(ctx context.Context, plaintext string) (string, error) {
	start := time.Now()
	encoded, err := c.next.Encrypt(ctx, plaintext)
	c.record(ctx, "credential_encrypt", start, err)
	return encoded, err
}

// Decrypt records metrics for decryption operations.
func (c *credentialUseCaseWithMetrics) Decrypt(ctx context.Context, encoded string) (string, error) {
	start := time.Now()
	plaintext, err := c.next.Decrypt(ctx, encoded)
	c.record(ctx, "credential_decrypt", start, err)
	return plaintext, err
}

// IsEncrypted is a pure prefix check and is not instrumented.
func (c *credentialUseCaseWithMetrics) IsEncrypted(value string) bool {
	return c.next.IsEncrypted(value)
}

// Migrate records metrics for migration operations.
func (c *credentialUseCaseWithMetrics) Migrate(ctx context.Context, value string) (string, error) {
	start := time.Now()
	migrated, err := c.next.Migrate(ctx, value)
	c.record(ctx, "credential_migrate", start, err)
	return migrated, err
}

func (c *credentialUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "credential", operation, status)
	c.metrics.RecordDuration(ctx, "credential", operation, time.Since(start), status)
}
