package handler

import (
	"errors"
	"net/http"

	"seodesk/backend/internal/apperrors"
	"seodesk/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// respondError maps domain errors to HTTP statuses. Validation and
// permission failures carry enough detail for the caller to correct the
// input; blocked errors name the complaints that must be resolved
// first.
func (h *Handler) respondError(c *gin.Context, err error) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": validationErr.Message,
			"field": validationErr.Field,
		})
		return
	}

	var permissionErr *apperrors.PermissionError
	if errors.As(err, &permissionErr) {
		c.JSON(http.StatusForbidden, gin.H{"error": permissionErr.Error()})
		return
	}

	var stateErr *apperrors.InvalidStateError
	if errors.As(err, &stateErr) {
		c.JSON(http.StatusConflict, gin.H{"error": stateErr.Error()})
		return
	}

	var blockedErr *apperrors.BlockedError
	if errors.As(err, &blockedErr) {
		c.JSON(http.StatusConflict, gin.H{
			"error":           "optimization is blocked by unresolved complaints",
			"open_complaints": blockedErr.OpenComplaints,
		})
		return
	}

	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	h.Log.Error("unhandled error in request", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
