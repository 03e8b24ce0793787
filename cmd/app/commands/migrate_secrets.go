package commands

import (
	"context"
	"fmt"
	"log/slog"

	settingsUseCase "github.com/allisson/credguard/internal/settings/usecase"
)

// RunMigrateSecrets encrypts protected settings still stored in plaintext.
// Safe to run repeatedly; a second run migrates nothing.
func RunMigrateSecrets(
	ctx context.Context,
	settingUseCase settingsUseCase.SettingUseCase,
	logger *slog.Logger,
	io IOTuple,
	batchSize int,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if batchSize < 1 {
		return fmt.Errorf("batch size must be a positive number, got: %d", batchSize)
	}

	logger.Info("migrating legacy secrets", slog.Int("batch_size", batchSize))

	migrated, err := settingUseCase.MigrateLegacy(ctx, batchSize)
	if err != nil {
		return fmt.Errorf("failed to migrate legacy secrets after %d row(s): %w", migrated, err)
	}

	logger.Info("legacy secrets migrated", slog.Int("migrated", migrated))

	if format == "json" {
		return writeJSON(io.Writer, map[string]any{"migrated": migrated})
	}
	_, err = fmt.Fprintf(io.Writer, "Successfully migrated %d secret(s)\n", migrated)
	return err
}
