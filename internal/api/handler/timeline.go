package handler

import (
	"net/http"

	"seodesk/backend/internal/timeline"

	"github.com/gin-gonic/gin"
)

// GetTimeline handles GET /api/optimizations/:id/timeline. An
// optimization with no complaints and no responses yields 204 so the
// dashboard suppresses the timeline component instead of rendering an
// empty shell.
func (h *Handler) GetTimeline(c *gin.Context) {
	optimizationID := c.Param("id")
	if _, err := h.Storage.GetOptimizationByID(optimizationID); err != nil {
		h.respondError(c, err)
		return
	}

	complaints, err := h.Storage.GetComplaintsForOptimization(optimizationID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	responses, err := h.Storage.GetResponsesForOptimization(optimizationID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	events, summary := timeline.Build(complaints, responses)
	if summary == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events, "summary": summary})
}
