package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/havenhq/service-lodging-admin/internal/application"
	"github.com/havenhq/service-lodging-admin/internal/auth"
	"github.com/havenhq/service-lodging-admin/internal/middleware"
)

// DashboardHandler serves the reporting reads behind the dashboard.
type DashboardHandler struct {
	service *application.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(service *application.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// RegisterRoutes registers the dashboard routes on the given router group.
func (h *DashboardHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	dashboard := r.Group("/api/v1/dashboard")
	dashboard.Use(middleware.Auth(jwtManager))
	{
		dashboard.GET("/bookings", h.RecentBookings)
		dashboard.GET("/stays", h.RecentStays)
		dashboard.GET("/today-activity", h.TodayActivity)
		dashboard.GET("/status-counts", h.StatusCounts)
	}
}

// RecentBookings handles GET /api/v1/dashboard/bookings?last=7.
func (h *DashboardHandler) RecentBookings(c *gin.Context) {
	last, err := parseLastDays(c)
	if err != nil {
		respondBadRequest(c, "invalid last parameter")
		return
	}

	result, err := h.service.RecentBookings(c.Request.Context(), last)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, result)
}

// RecentStays handles GET /api/v1/dashboard/stays?last=7.
func (h *DashboardHandler) RecentStays(c *gin.Context) {
	last, err := parseLastDays(c)
	if err != nil {
		respondBadRequest(c, "invalid last parameter")
		return
	}

	result, err := h.service.RecentStays(c.Request.Context(), last)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, result)
}

// TodayActivity handles GET /api/v1/dashboard/today-activity.
func (h *DashboardHandler) TodayActivity(c *gin.Context) {
	result, err := h.service.TodayActivity(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, result)
}

// StatusCounts handles GET /api/v1/dashboard/status-counts.
func (h *DashboardHandler) StatusCounts(c *gin.Context) {
	result, err := h.service.StatusCounts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, result)
}

func parseLastDays(c *gin.Context) (int, error) {
	raw := c.DefaultQuery("last", "7")
	last, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if last < 1 {
		return 0, strconv.ErrRange
	}
	return last, nil
}
