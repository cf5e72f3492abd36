package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/havenhq/service-lodging-admin/internal/domain"
)

// respond helpers shared by all handlers. Domain errors carry a kind so the
// UI can tell an upload failure from a compensation failure and warn about a
// dangling inconsistent record.

func respondSuccess(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"data": data})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

func respondError(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	status := statusForKind(kind)

	body := gin.H{"error": err.Error()}
	if kind != "" {
		body["kind"] = string(kind)
	}
	c.JSON(status, body)
}

func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindUploadFailure, domain.KindCompensationFailure:
		return http.StatusBadGateway
	case domain.KindLoadFailure, domain.KindWriteFailure:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
