package timeline_test

import (
	"testing"
	"time"

	"seodesk/backend/internal/models"
	"seodesk/backend/internal/timeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

func resolvedComplaint(id string, createdAt, resolvedAt time.Time) models.Complaint {
	c := models.Complaint{
		ID:        id,
		Scope:     models.ScopeOptimization,
		Status:    models.ComplaintStatusActive,
		Reason:    "reason for complaint " + id,
		Priority:  models.PriorityMedium,
		CreatedBy: "u-manager",
		CreatedAt: createdAt,
	}
	c.MarkResolved("u-super", "resolution for "+id, resolvedAt)
	return c
}

func TestBuild_OrdersEventsChronologically(t *testing.T) {
	// Complaint A created at T0, resolved at T2; response B at T1.
	t1 := t0.Add(time.Hour)
	t2 := t0.Add(2 * time.Hour)

	complaints := []models.Complaint{resolvedComplaint("A", t0, t2)}
	responses := []models.Response{{
		ID:        "B",
		Note:      "we are on it, recrawl scheduled",
		CreatedBy: "u-admin",
		CreatedAt: t1,
	}}

	events, summary := timeline.Build(complaints, responses)
	require.NotNil(t, summary)
	require.Len(t, events, 3)

	assert.Equal(t, timeline.EventComplaintCreated, events[0].Type)
	assert.Equal(t, t0, events[0].At)
	assert.Equal(t, timeline.EventTeamResponse, events[1].Type)
	assert.Equal(t, t1, events[1].At)
	assert.Equal(t, timeline.EventComplaintResolved, events[2].Type)
	assert.Equal(t, t2, events[2].At)
}

func TestBuild_CreationBeforeResolutionOnEqualTimestamps(t *testing.T) {
	complaints := []models.Complaint{resolvedComplaint("A", t0, t0)}

	events, _ := timeline.Build(complaints, nil)
	require.Len(t, events, 2)
	assert.Equal(t, timeline.EventComplaintCreated, events[0].Type)
	assert.Equal(t, timeline.EventComplaintResolved, events[1].Type)
}

func TestBuild_OrdinalsNumberOldestFirst(t *testing.T) {
	// Stored newest-first: index 0 is the newest complaint.
	complaints := []models.Complaint{
		{ID: "newest", Status: models.ComplaintStatusActive, CreatedAt: t0.Add(time.Hour), CreatedBy: "u1"},
		{ID: "oldest", Status: models.ComplaintStatusActive, CreatedAt: t0, CreatedBy: "u1"},
	}

	events, summary := timeline.Build(complaints, nil)
	require.Len(t, events, 2)
	assert.Equal(t, 2, summary.TotalComplaints)

	// Chronological order puts the oldest complaint first, numbered 1.
	assert.Equal(t, "oldest", events[0].ComplaintID)
	assert.Equal(t, 1, events[0].Ordinal)
	assert.Equal(t, "newest", events[1].ComplaintID)
	assert.Equal(t, 2, events[1].Ordinal)
}

func TestBuild_AverageResolutionHours(t *testing.T) {
	complaints := []models.Complaint{
		resolvedComplaint("A", t0, t0.Add(2*time.Hour)),
		resolvedComplaint("B", t0, t0.Add(4*time.Hour)),
		{ID: "C", Status: models.ComplaintStatusActive, CreatedAt: t0, CreatedBy: "u1"},
	}

	_, summary := timeline.Build(complaints, nil)
	require.NotNil(t, summary)
	assert.Equal(t, 3, summary.TotalComplaints)
	assert.Equal(t, 2, summary.ResolvedComplaints)
	require.NotNil(t, summary.AvgResolutionTimeHours, "average must ignore the unresolved complaint")
	assert.InDelta(t, 3.0, *summary.AvgResolutionTimeHours, 1e-9)
}

func TestBuild_NoResolvedComplaintsMeansNilAverage(t *testing.T) {
	complaints := []models.Complaint{
		{ID: "A", Status: models.ComplaintStatusActive, CreatedAt: t0, CreatedBy: "u1"},
	}

	_, summary := timeline.Build(complaints, nil)
	require.NotNil(t, summary)
	assert.Nil(t, summary.AvgResolutionTimeHours, "average is nil, not zero, with nothing resolved")
}

func TestBuild_EmptyInputsSuppressTimeline(t *testing.T) {
	events, summary := timeline.Build(nil, nil)
	assert.Nil(t, events)
	assert.Nil(t, summary)
}

func TestBuild_Idempotent(t *testing.T) {
	complaints := []models.Complaint{
		resolvedComplaint("A", t0, t0.Add(3*time.Hour)),
		{ID: "B", Status: models.ComplaintStatusActive, CreatedAt: t0.Add(time.Hour), CreatedBy: "u1"},
	}
	responses := []models.Response{
		{ID: "R1", Note: "first response", CreatedBy: "u2", CreatedAt: t0.Add(30 * time.Minute)},
		{ID: "R2", Note: "second response", CreatedBy: "u2", CreatedAt: t0.Add(2 * time.Hour)},
	}

	firstEvents, firstSummary := timeline.Build(complaints, responses)
	secondEvents, secondSummary := timeline.Build(complaints, responses)

	assert.Equal(t, firstEvents, secondEvents)
	assert.Equal(t, firstSummary, secondSummary)
}

func TestBuild_ResponseOnlyTimeline(t *testing.T) {
	responses := []models.Response{
		{ID: "R1", Note: "proactive note before any complaint", CreatedBy: "u2", CreatedAt: t0},
	}

	events, summary := timeline.Build(nil, responses)
	require.Len(t, events, 1)
	assert.Equal(t, timeline.EventTeamResponse, events[0].Type)
	require.NotNil(t, summary)
	assert.Equal(t, 0, summary.TotalComplaints)
	assert.Equal(t, 1, summary.TotalResponses)
	assert.Nil(t, summary.AvgResolutionTimeHours)
}
