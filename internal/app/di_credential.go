package app

import (
	"fmt"

	credentialService "github.com/allisson/credguard/internal/credential/service"
	credentialUseCase "github.com/allisson/credguard/internal/credential/usecase"
)

// DeviceInfo returns the device fingerprint provider.
func (c *Container) DeviceInfo() credentialService.DeviceInfoProvider {
	c.deviceInfoInit.Do(func() {
		if c.deviceInfo == nil {
			c.deviceInfo = credentialService.NewSystemDeviceInfo(c.config.DeviceColorDepth)
		}
	})
	return c.deviceInfo
}

// KeyCache returns the process-wide session key cache.
func (c *Container) KeyCache() *credentialService.KeyCache {
	c.keyCacheInit.Do(func() {
		c.keyCache = credentialService.NewKeyCache(
			c.DeviceInfo(),
			credentialService.NewPBKDF2KeyDeriver(c.config.KDFIterations),
			c.Logger(),
		)
	})
	return c.keyCache
}

// CredentialUseCase returns the credential use case, instrumented when metrics are enabled.
func (c *Container) CredentialUseCase() (credentialUseCase.CredentialUseCase, error) {
	var err error
	c.credentialUseCaseInit.Do(func() {
		c.credentialUseCase, err = c.initCredentialUseCase()
		if err != nil {
			c.initErrors["credentialUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["credentialUseCase"]; exists {
		return nil, storedErr
	}
	return c.credentialUseCase, nil
}

// Protector returns the degrading facade over the credential use case.
func (c *Container) Protector() (*credentialUseCase.Protector, error) {
	var err error
	c.protectorInit.Do(func() {
		var useCase credentialUseCase.CredentialUseCase
		useCase, err = c.CredentialUseCase()
		if err != nil {
			err = fmt.Errorf("failed to get credential use case for protector: %w", err)
			c.initErrors["protector"] = err
			return
		}
		c.protector = credentialUseCase.NewProtector(useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["protector"]; exists {
		return nil, storedErr
	}
	return c.protector, nil
}

func (c *Container) initCredentialUseCase() (credentialUseCase.CredentialUseCase, error) {
	baseUseCase := credentialUseCase.NewCredentialUseCase(c.KeyCache(), credentialService.NewAESGCMFactory())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for credential use case: %w", err)
		}
		return credentialUseCase.NewCredentialUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
