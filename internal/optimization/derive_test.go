package optimization_test

import (
	"testing"
	"time"

	"seodesk/backend/internal/models"
	"seodesk/backend/internal/optimization"

	"github.com/stretchr/testify/assert"
)

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func complaintAt(offset time.Duration, status string) models.Complaint {
	return models.Complaint{
		Scope:     models.ScopeOptimization,
		Status:    status,
		CreatedAt: base.Add(offset),
	}
}

func responseAt(offset time.Duration) models.Response {
	return models.Response{CreatedAt: base.Add(offset)}
}

func TestDeriveComplaintStatus(t *testing.T) {
	tests := []struct {
		name       string
		complaints []models.Complaint
		responses  []models.Response
		want       string
	}{
		{
			name: "no complaints means none",
			want: models.AggregateNone,
		},
		{
			name: "all resolved means resolved",
			complaints: []models.Complaint{
				complaintAt(time.Hour, models.ComplaintStatusResolved),
				complaintAt(0, models.ComplaintStatusResolved),
			},
			want: models.AggregateResolved,
		},
		{
			name: "dismissed counts as terminal",
			complaints: []models.Complaint{
				complaintAt(time.Hour, models.ComplaintStatusDismissed),
				complaintAt(0, models.ComplaintStatusResolved),
			},
			want: models.AggregateResolved,
		},
		{
			name: "open complaint without response means complained",
			complaints: []models.Complaint{
				complaintAt(0, models.ComplaintStatusActive),
			},
			want: models.AggregateComplained,
		},
		{
			name: "response after newest open complaint means under_review",
			complaints: []models.Complaint{
				complaintAt(0, models.ComplaintStatusActive),
			},
			responses: []models.Response{responseAt(time.Minute)},
			want:      models.AggregateUnderReview,
		},
		{
			name: "response predating newest open complaint means complained",
			complaints: []models.Complaint{
				complaintAt(time.Hour, models.ComplaintStatusActive),
				complaintAt(0, models.ComplaintStatusResolved),
			},
			responses: []models.Response{responseAt(time.Minute)},
			want:      models.AggregateComplained,
		},
		{
			name: "newest open complaint decides, resolved ones do not",
			complaints: []models.Complaint{
				complaintAt(2*time.Hour, models.ComplaintStatusResolved),
				complaintAt(time.Hour, models.ComplaintStatusActive),
			},
			responses: []models.Response{responseAt(90 * time.Minute)},
			want:      models.AggregateUnderReview,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := optimization.DeriveComplaintStatus(tt.complaints, tt.responses)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsBlocked(t *testing.T) {
	assert.False(t, optimization.IsBlocked(models.AggregateNone))
	assert.False(t, optimization.IsBlocked(models.AggregateResolved))
	assert.True(t, optimization.IsBlocked(models.AggregateComplained))
	assert.True(t, optimization.IsBlocked(models.AggregateUnderReview))
}

func TestOpenComplaintLabels_PriorityOrderAndOrdinals(t *testing.T) {
	// Stored newest-first: index 0 is the newest complaint (ordinal 3),
	// index 2 the oldest (ordinal 1).
	complaints := []models.Complaint{
		{Status: models.ComplaintStatusActive, Priority: models.PriorityLow, Reason: "minor anchor issue", CreatedAt: base.Add(2 * time.Hour)},
		{Status: models.ComplaintStatusResolved, Priority: models.PriorityHigh, Reason: "already handled", CreatedAt: base.Add(time.Hour)},
		{Status: models.ComplaintStatusActive, Priority: models.PriorityHigh, Reason: "deindexed money page", CreatedAt: base},
	}

	labels := optimization.OpenComplaintLabels(complaints)
	assert.Equal(t, []string{
		"complaint #1 (high priority): deindexed money page",
		"complaint #3 (low priority): minor anchor issue",
	}, labels)
}

func TestBlockedReason(t *testing.T) {
	assert.Empty(t, optimization.BlockedReason(nil))
	assert.Empty(t, optimization.BlockedReason([]models.Complaint{
		complaintAt(0, models.ComplaintStatusResolved),
	}))

	reason := optimization.BlockedReason([]models.Complaint{
		{Status: models.ComplaintStatusActive, Priority: models.PriorityMedium, Reason: "robots.txt blocks the blog", CreatedAt: base},
	})
	assert.Contains(t, reason, "closure blocked by unresolved complaints")
	assert.Contains(t, reason, "robots.txt blocks the blog")
}
