package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetOptimization handles GET /api/optimizations/:id. The aggregate
// complaint status and blocked flag are derived from current state on
// every read.
func (h *Handler) GetOptimization(c *gin.Context) {
	detail, err := h.Optimizations.GetDetail(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// CloseOptimization handles POST /api/optimizations/:id/close.
func (h *Handler) CloseOptimization(c *gin.Context) {
	var body struct {
		FinalNote string `json:"final_note"`
	}
	// The body is optional; an empty close request is fine.
	_ = c.ShouldBindJSON(&body)

	closed, err := h.Optimizations.CloseOptimization(currentUser(c), c.Param("id"), body.FinalNote)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, closed)
}
