// Package http provides HTTP handlers for settings management.
package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/credguard/internal/httputil"
	"github.com/allisson/credguard/internal/settings/http/dto"
	settingsUseCase "github.com/allisson/credguard/internal/settings/usecase"
	customValidation "github.com/allisson/credguard/internal/validation"
)

// SettingHandler handles HTTP requests for settings.
type SettingHandler struct {
	settingUseCase   settingsUseCase.SettingUseCase
	migrateBatchSize int
	logger           *slog.Logger
}

// NewSettingHandler creates a new setting handler. migrateBatchSize is used
// when a migrate request does not specify one.
func NewSettingHandler(
	settingUseCase settingsUseCase.SettingUseCase,
	migrateBatchSize int,
	logger *slog.Logger,
) *SettingHandler {
	return &SettingHandler{
		settingUseCase:   settingUseCase,
		migrateBatchSize: migrateBatchSize,
		logger:           logger,
	}
}

// SaveHandler creates or replaces a setting.
// PUT /v1/settings/:name
func (h *SettingHandler) SaveHandler(c *gin.Context) {
	name := c.Param("name")
	if err := dto.ValidateSettingName(name); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	var req dto.SaveSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	setting, err := h.settingUseCase.Save(c.Request.Context(), name, req.Value, req.Protected)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSettingToSaveResponse(setting))
}

// GetHandler returns a setting with its plaintext value.
// GET /v1/settings/:name
func (h *SettingHandler) GetHandler(c *gin.Context) {
	setting, err := h.settingUseCase.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSettingToResponse(setting))
}

// ListHandler returns a page of settings with protected values masked.
// GET /v1/settings?offset=0&limit=50
func (h *SettingHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	settings, err := h.settingUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSettingsToListResponse(settings))
}

// DeleteHandler removes a setting.
// DELETE /v1/settings/:name
func (h *SettingHandler) DeleteHandler(c *gin.Context) {
	if err := h.settingUseCase.Delete(c.Request.Context(), c.Param("name")); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// MigrateHandler encrypts protected settings still stored as plaintext.
// POST /v1/settings/migrate
func (h *SettingHandler) MigrateHandler(c *gin.Context) {
	var req dto.MigrateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	batchSize := req.BatchSize
	if batchSize == 0 {
		batchSize = h.migrateBatchSize
	}

	migrated, err := h.settingUseCase.MigrateLegacy(c.Request.Context(), batchSize)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("legacy settings migrated", slog.Int("migrated", migrated))
	c.JSON(http.StatusOK, dto.MigrateSettingsResponse{Migrated: migrated})
}
