package complaint_test

import (
	"testing"

	"seodesk/backend/internal/complaint"
	"seodesk/backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, models.ComplaintStatusActive, complaint.InitialStatus(models.ScopeOptimization))
	assert.Equal(t, models.ComplaintStatusOpen, complaint.InitialStatus(models.ScopeProject))
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name  string
		scope string
		from  string
		to    string
		want  bool
	}{
		{"project open to under_review", models.ScopeProject, models.ComplaintStatusOpen, models.ComplaintStatusUnderReview, true},
		{"project open to resolved", models.ScopeProject, models.ComplaintStatusOpen, models.ComplaintStatusResolved, true},
		{"project open to dismissed", models.ScopeProject, models.ComplaintStatusOpen, models.ComplaintStatusDismissed, true},
		{"project under_review to resolved", models.ScopeProject, models.ComplaintStatusUnderReview, models.ComplaintStatusResolved, true},
		{"project under_review to dismissed", models.ScopeProject, models.ComplaintStatusUnderReview, models.ComplaintStatusDismissed, true},
		{"project under_review to open", models.ScopeProject, models.ComplaintStatusUnderReview, models.ComplaintStatusOpen, false},
		{"project resolved is terminal", models.ScopeProject, models.ComplaintStatusResolved, models.ComplaintStatusOpen, false},
		{"project dismissed is terminal", models.ScopeProject, models.ComplaintStatusDismissed, models.ComplaintStatusResolved, false},
		{"optimization active to resolved", models.ScopeOptimization, models.ComplaintStatusActive, models.ComplaintStatusResolved, true},
		{"optimization active to dismissed", models.ScopeOptimization, models.ComplaintStatusActive, models.ComplaintStatusDismissed, false},
		{"optimization resolved is terminal", models.ScopeOptimization, models.ComplaintStatusResolved, models.ComplaintStatusActive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, complaint.CanTransition(tt.scope, tt.from, tt.to))
		})
	}
}
