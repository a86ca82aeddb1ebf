package handler

import (
	"net/http"

	"seodesk/backend/internal/complaint"
	"seodesk/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type createComplaintBody struct {
	Reason           string   `json:"reason"`
	Priority         string   `json:"priority"`
	Category         string   `json:"category"`
	ResponsibleUsers []string `json:"responsible_user_ids"`
	ReportURLs       []string `json:"report_urls"`
}

type addResponseBody struct {
	Note       string   `json:"note"`
	ReportURLs []string `json:"report_urls"`
}

// CreateOptimizationComplaint handles POST /api/optimizations/:id/complaints.
func (h *Handler) CreateOptimizationComplaint(c *gin.Context) {
	h.createComplaint(c, models.ScopeOptimization)
}

// CreateProjectComplaint handles POST /api/networks/:id/complaints.
func (h *Handler) CreateProjectComplaint(c *gin.Context) {
	h.createComplaint(c, models.ScopeProject)
}

func (h *Handler) createComplaint(c *gin.Context, scope string) {
	var body createComplaintBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.Complaints.CreateComplaint(currentUser(c), complaint.CreateComplaintInput{
		Scope:            scope,
		ParentID:         c.Param("id"),
		Reason:           body.Reason,
		Priority:         body.Priority,
		Category:         body.Category,
		ResponsibleUsers: body.ResponsibleUsers,
		ReportURLs:       body.ReportURLs,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// AddOptimizationResponse handles POST /api/optimizations/:id/responses.
func (h *Handler) AddOptimizationResponse(c *gin.Context) {
	h.addResponse(c, models.ScopeOptimization)
}

// AddComplaintResponse handles POST /api/complaints/:id/responses.
func (h *Handler) AddComplaintResponse(c *gin.Context) {
	h.addResponse(c, models.ScopeProject)
}

func (h *Handler) addResponse(c *gin.Context, scope string) {
	var body addResponseBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.Complaints.AddResponse(currentUser(c), complaint.AddResponseInput{
		Scope:      scope,
		ParentID:   c.Param("id"),
		Note:       body.Note,
		ReportURLs: body.ReportURLs,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// StartReview handles POST /api/complaints/:id/review.
func (h *Handler) StartReview(c *gin.Context) {
	updated, err := h.Complaints.StartReview(currentUser(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DismissComplaint handles POST /api/complaints/:id/dismiss.
func (h *Handler) DismissComplaint(c *gin.Context) {
	updated, err := h.Complaints.Dismiss(currentUser(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// ResolveComplaint handles POST /api/complaints/:id/resolve.
func (h *Handler) ResolveComplaint(c *gin.Context) {
	var body struct {
		ResolutionNote           string `json:"resolution_note"`
		MarkOptimizationComplete bool   `json:"mark_optimization_complete"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.Complaints.ResolveComplaint(
		currentUser(c), c.Param("id"), body.ResolutionNote, body.MarkOptimizationComplete)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
