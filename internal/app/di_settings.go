package app

import (
	"fmt"

	settingsHTTP "github.com/allisson/credguard/internal/settings/http"
	settingsRepository "github.com/allisson/credguard/internal/settings/repository"
	settingsUseCase "github.com/allisson/credguard/internal/settings/usecase"
)

// SettingRepository returns the settings repository for the configured driver.
func (c *Container) SettingRepository() (settingsUseCase.SettingRepository, error) {
	var err error
	c.settingRepositoryInit.Do(func() {
		c.settingRepository, err = c.initSettingRepository()
		if err != nil {
			c.initErrors["settingRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["settingRepository"]; exists {
		return nil, storedErr
	}
	return c.settingRepository, nil
}

// SettingUseCase returns the settings use case, instrumented when metrics are enabled.
func (c *Container) SettingUseCase() (settingsUseCase.SettingUseCase, error) {
	var err error
	c.settingUseCaseInit.Do(func() {
		c.settingUseCase, err = c.initSettingUseCase()
		if err != nil {
			c.initErrors["settingUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["settingUseCase"]; exists {
		return nil, storedErr
	}
	return c.settingUseCase, nil
}

// SettingHandler returns the settings HTTP handler.
func (c *Container) SettingHandler() (*settingsHTTP.SettingHandler, error) {
	var err error
	c.settingHandlerInit.Do(func() {
		var useCase settingsUseCase.SettingUseCase
		useCase, err = c.SettingUseCase()
		if err != nil {
			err = fmt.Errorf("failed to get setting use case for setting handler: %w", err)
			c.initErrors["settingHandler"] = err
			return
		}
		c.settingHandler = settingsHTTP.NewSettingHandler(useCase, c.config.MigrateBatchSize, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["settingHandler"]; exists {
		return nil, storedErr
	}
	return c.settingHandler, nil
}

func (c *Container) initSettingRepository() (settingsUseCase.SettingRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for setting repository: %w", err)
	}

	switch c.config.DBDriver {
	case "sqlite3":
		return settingsRepository.NewSQLiteSettingRepository(db), nil
	case "postgres":
		return settingsRepository.NewPostgreSQLSettingRepository(db), nil
	case "mysql":
		return settingsRepository.NewMySQLSettingRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initSettingUseCase() (settingsUseCase.SettingUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for setting use case: %w", err)
	}

	settingRepository, err := c.SettingRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get setting repository for setting use case: %w", err)
	}

	protector, err := c.Protector()
	if err != nil {
		return nil, fmt.Errorf("failed to get protector for setting use case: %w", err)
	}

	baseUseCase := settingsUseCase.NewSettingUseCase(txManager, settingRepository, protector)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for setting use case: %w", err)
		}
		return settingsUseCase.NewSettingUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
