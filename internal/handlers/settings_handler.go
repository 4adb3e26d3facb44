package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "uangsaku/internal/errors"
	"uangsaku/internal/services"
)

// SettingsHandler handles settings requests.
type SettingsHandler struct {
	settingsService services.SettingsServicer
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService services.SettingsServicer) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// SetSettingRequest represents the request payload for storing a setting.
type SetSettingRequest struct {
	Value any `json:"value"`
}

// GetSettings handles reading all settings with defaults applied.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetAll()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// GetSetting handles reading one setting; unknown keys yield a null value.
func (h *SettingsHandler) GetSetting(c *gin.Context) {
	value, err := h.settingsService.Get(c.Param("key"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": c.Param("key"), "value": value})
}

// SetSetting handles storing one setting.
func (h *SettingsHandler) SetSetting(c *gin.Context) {
	var req SetSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.settingsService.Set(c.Param("key"), req.Value); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": c.Param("key"), "value": req.Value})
}
