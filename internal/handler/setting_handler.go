package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/havenhq/service-lodging-admin/internal/application"
	"github.com/havenhq/service-lodging-admin/internal/auth"
	"github.com/havenhq/service-lodging-admin/internal/middleware"
)

// SettingHandler handles HTTP requests for the business settings.
type SettingHandler struct {
	service *application.SettingService
}

// NewSettingHandler creates a new SettingHandler.
func NewSettingHandler(service *application.SettingService) *SettingHandler {
	return &SettingHandler{service: service}
}

// RegisterRoutes registers the settings routes on the given router group.
func (h *SettingHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	settings := r.Group("/api/v1/settings")
	settings.Use(middleware.Auth(jwtManager))
	{
		settings.GET("", h.GetSettings)
		settings.PATCH("", h.UpdateSettings)
	}
}

// GetSettings handles GET /api/v1/settings.
func (h *SettingHandler) GetSettings(c *gin.Context) {
	result, err := h.service.GetSettings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, result)
}

// UpdateSettings handles PATCH /api/v1/settings.
func (h *SettingHandler) UpdateSettings(c *gin.Context) {
	var req application.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateSettings(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, result)
}
