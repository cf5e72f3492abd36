package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/havenhq/service-lodging-admin/internal/application"
	"github.com/havenhq/service-lodging-admin/internal/auth"
	"github.com/havenhq/service-lodging-admin/internal/middleware"
	"github.com/havenhq/service-lodging-admin/internal/query"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	bookings := r.Group("/api/v1/bookings")
	bookings.Use(middleware.Auth(jwtManager))
	{
		bookings.GET("", h.ListBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.POST("", h.CreateBooking)
		bookings.PATCH("/:id", h.UpdateBooking)
		bookings.DELETE("/:id", h.DeleteBooking)
		bookings.POST("/:id/checkin", h.CheckIn)
		bookings.POST("/:id/checkout", h.CheckOut)
	}
}

// ListBookings handles GET /api/v1/bookings.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	spec, err := parseSpec(c)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	page, err := h.service.ListBookings(c.Request.Context(), spec)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, page)
}

// GetBooking handles GET /api/v1/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondBadRequest(c, "invalid booking ID")
		return
	}

	result, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, result)
}

// CreateBooking handles POST /api/v1/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, result)
}

// UpdateBooking handles PATCH /api/v1/bookings/:id.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondBadRequest(c, "invalid booking ID")
		return
	}

	var req application.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateBooking(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, result)
}

// DeleteBooking handles DELETE /api/v1/bookings/:id.
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondBadRequest(c, "invalid booking ID")
		return
	}

	if err := h.service.DeleteBooking(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, gin.H{"deleted": id})
}

// CheckIn handles POST /api/v1/bookings/:id/checkin.
func (h *BookingHandler) CheckIn(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondBadRequest(c, "invalid booking ID")
		return
	}

	var breakfast *application.Breakfast
	if c.Request.ContentLength > 0 {
		breakfast = &application.Breakfast{}
		if err := c.ShouldBindJSON(breakfast); err != nil {
			respondBadRequest(c, err.Error())
			return
		}
	}

	result, err := h.service.CheckIn(c.Request.Context(), id, breakfast)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, result)
}

// CheckOut handles POST /api/v1/bookings/:id/checkout.
func (h *BookingHandler) CheckOut(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondBadRequest(c, "invalid booking ID")
		return
	}

	result, err := h.service.CheckOut(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, result)
}

// parseID reads the numeric id path parameter.
func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// parseSpec reads the filter/sort/page query parameters into a QuerySpec.
// Field names are forwarded as given; unknown columns surface as backend
// errors.
func parseSpec(c *gin.Context) (query.Spec, error) {
	var spec query.Spec

	if field := c.Query("filterField"); field != "" {
		spec.Filter = &query.Filter{Field: field, Value: c.Query("filterValue")}
	}
	if field := c.Query("sortField"); field != "" {
		spec.Sort = &query.Sort{
			Field:     field,
			Direction: query.ParseDirection(c.Query("sortDirection")),
		}
	}
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return spec, err
		}
		spec.Page = page
	}
	return spec, spec.Validate()
}
