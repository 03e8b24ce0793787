package usecase

import (
	"context"
	"time"

	"github.com/allisson/credguard/internal/metrics"
	settingsDomain "github.com/allisson/credguard/internal/settings/domain"
)

// settingUseCaseWithMetrics decorates SettingUseCase with metrics instrumentation.
type settingUseCaseWithMetrics struct {
	next    SettingUseCase
	metrics metrics.BusinessMetrics
}

// NewSettingUseCaseWithMetrics wraps a SettingUseCase with metrics recording.
func NewSettingUseCaseWithMetrics(useCase SettingUseCase, m metrics.BusinessMetrics) SettingUseCase {
	return &settingUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Save records metrics for save operations.
func (s *settingUseCaseWithMetrics) Save(
	ctx context.Context,
	name, value string,
	protected bool,
) (*settingsDomain.Setting, error) {
	start := time.Now()
	setting, err := s.next.Save(ctx, name, value, protected)
	s.record(ctx, "setting_save", start, err)
	return setting, err
}

// Get records metrics for get operations.
func (s *settingUseCaseWithMetrics) Get(ctx context.Context, name string) (*settingsDomain.Setting, error) {
	start := time.Now()
	setting, err := s.next.Get(ctx, name)
	s.record(ctx, "setting_get", start, err)
	return setting, err
}

// List records metrics for list operations.
func (s *settingUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*settingsDomain.Setting, error) {
	start := time.Now()
	settings, err := s.next.List(ctx, offset, limit)
	s.record(ctx, "setting_list", start, err)
	return settings, err
}

// Delete records metrics for delete operations.
func (s *settingUseCaseWithMetrics) Delete(ctx context.Context, name string) error {
	start := time.Now()
	err := s.next.Delete(ctx, name)
	s.record(ctx, "setting_delete", start, err)
	return err
}

// MigrateLegacy records metrics for legacy migration runs.
func (s *settingUseCaseWithMetrics) MigrateLegacy(ctx context.Context, batchSize int) (int, error) {
	start := time.Now()
	count, err := s.next.MigrateLegacy(ctx, batchSize)
	s.record(ctx, "setting_migrate", start, err)
	return count, err
}

func (s *settingUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "settings", operation, status)
	s.metrics.RecordDuration(ctx, "settings", operation, time.Since(start), status)
}
