package handler

import (
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/havenhq/service-lodging-admin/internal/application"
	"github.com/havenhq/service-lodging-admin/internal/auth"
	"github.com/havenhq/service-lodging-admin/internal/middleware"
)

// CabinHandler handles HTTP requests for cabin operations. Create and update
// accept either multipart form data carrying fresh image bytes or JSON
// carrying an existing image reference.
type CabinHandler struct {
	service *application.CabinService
}

// NewCabinHandler creates a new CabinHandler.
func NewCabinHandler(service *application.CabinService) *CabinHandler {
	return &CabinHandler{service: service}
}

// RegisterRoutes registers all cabin routes on the given router group.
func (h *CabinHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	cabins := r.Group("/api/v1/cabins")
	cabins.Use(middleware.Auth(jwtManager))
	{
		cabins.GET("", h.ListCabins)
		cabins.GET("/:id", h.GetCabin)
		cabins.POST("", h.CreateCabin)
		cabins.PUT("/:id", h.UpdateCabin)
		cabins.DELETE("/:id", h.DeleteCabin)
	}
}

// ListCabins handles GET /api/v1/cabins.
func (h *CabinHandler) ListCabins(c *gin.Context) {
	result, err := h.service.ListCabins(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, result)
}

// GetCabin handles GET /api/v1/cabins/:id.
func (h *CabinHandler) GetCabin(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondBadRequest(c, "invalid cabin ID")
		return
	}

	result, err := h.service.GetCabin(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, result)
}

// CreateCabin handles POST /api/v1/cabins.
func (h *CabinHandler) CreateCabin(c *gin.Context) {
	fields, image, err := h.bindCabin(c)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateCabin(c.Request.Context(), fields, image)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, result)
}

// UpdateCabin handles PUT /api/v1/cabins/:id.
func (h *CabinHandler) UpdateCabin(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondBadRequest(c, "invalid cabin ID")
		return
	}

	fields, image, err := h.bindCabin(c)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateCabin(c.Request.Context(), id, fields, image)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, result)
}

// DeleteCabin handles DELETE /api/v1/cabins/:id.
func (h *CabinHandler) DeleteCabin(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondBadRequest(c, "invalid cabin ID")
		return
	}

	if err := h.service.DeleteCabin(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, gin.H{"deleted": id})
}

// cabinJSONRequest is the JSON body shape, used when the image is an
// existing store reference rather than fresh bytes.
type cabinJSONRequest struct {
	application.CabinFields
	Image string `json:"image" binding:"required"`
}

func (h *CabinHandler) bindCabin(c *gin.Context) (application.CabinFields, application.CabinImage, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return h.bindCabinMultipart(c)
	}

	var req cabinJSONRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return application.CabinFields{}, application.CabinImage{}, err
	}
	return req.CabinFields, application.CabinImage{Reference: req.Image}, nil
}

func (h *CabinHandler) bindCabinMultipart(c *gin.Context) (application.CabinFields, application.CabinImage, error) {
	var fields application.CabinFields
	var err error

	fields.Name = c.PostForm("name")
	if fields.MaxCapacity, err = strconv.Atoi(c.PostForm("maxCapacity")); err != nil {
		return fields, application.CabinImage{}, err
	}
	if fields.RegularPrice, err = strconv.ParseInt(c.PostForm("regularPrice"), 10, 64); err != nil {
		return fields, application.CabinImage{}, err
	}
	if raw := c.PostForm("discount"); raw != "" {
		if fields.Discount, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return fields, application.CabinImage{}, err
		}
	}
	fields.Description = c.PostForm("description")

	// The form carries either a file upload or an existing reference.
	if ref := c.PostForm("image"); ref != "" {
		return fields, application.CabinImage{Reference: ref}, nil
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return fields, application.CabinImage{}, err
	}
	file, err := fileHeader.Open()
	if err != nil {
		return fields, application.CabinImage{}, err
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return fields, application.CabinImage{}, err
	}
	return fields, application.CabinImage{Filename: fileHeader.Filename, Data: data}, nil
}
