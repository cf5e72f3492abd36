package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/havenhq/service-lodging-admin/internal/application"
	"github.com/havenhq/service-lodging-admin/internal/auth"
	"github.com/havenhq/service-lodging-admin/internal/middleware"
)

// GuestHandler handles HTTP requests for guest operations.
type GuestHandler struct {
	service *application.GuestService
}

// NewGuestHandler creates a new GuestHandler.
func NewGuestHandler(service *application.GuestService) *GuestHandler {
	return &GuestHandler{service: service}
}

// RegisterRoutes registers all guest routes on the given router group.
func (h *GuestHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	guests := r.Group("/api/v1/guests")
	guests.Use(middleware.Auth(jwtManager))
	{
		guests.GET("", h.ListGuests)
		guests.GET("/:id", h.GetGuest)
		guests.POST("", h.CreateGuest)
		guests.PUT("/:id", h.UpdateGuest)
		guests.DELETE("/:id", h.DeleteGuest)
	}
}

// ListGuests handles GET /api/v1/guests.
func (h *GuestHandler) ListGuests(c *gin.Context) {
	spec, err := parseSpec(c)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	page, err := h.service.ListGuests(c.Request.Context(), spec)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, page)
}

// GetGuest handles GET /api/v1/guests/:id.
func (h *GuestHandler) GetGuest(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondBadRequest(c, "invalid guest ID")
		return
	}

	result, err := h.service.GetGuest(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, result)
}

// CreateGuest handles POST /api/v1/guests.
func (h *GuestHandler) CreateGuest(c *gin.Context) {
	var req application.GuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateGuest(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, result)
}

// UpdateGuest handles PUT /api/v1/guests/:id.
func (h *GuestHandler) UpdateGuest(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondBadRequest(c, "invalid guest ID")
		return
	}

	var req application.GuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateGuest(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, result)
}

// DeleteGuest handles DELETE /api/v1/guests/:id.
func (h *GuestHandler) DeleteGuest(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondBadRequest(c, "invalid guest ID")
		return
	}

	if err := h.service.DeleteGuest(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, gin.H{"deleted": id})
}
