package optimization_test

import (
	"testing"
	"time"

	"seodesk/backend/internal/apperrors"
	"seodesk/backend/internal/logger"
	"seodesk/backend/internal/models"
	"seodesk/backend/internal/optimization"
	"seodesk/backend/internal/storage/storagetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var superAdmin = models.User{ID: "u-super", Name: "Root", Role: "super_admin"}

func newTestService(t *testing.T) (*optimization.Service, *storagetest.Fake) {
	t.Helper()
	fs := storagetest.NewFake()
	svc := optimization.NewService(fs, nil, logger.NewNop())
	return svc, fs
}

func seedOptimization(t *testing.T, fs *storagetest.Fake) *models.Optimization {
	t.Helper()
	opt := &models.Optimization{
		NetworkID: "net-1",
		Title:     "Consolidate duplicate category pages",
		Status:    models.OptimizationStatusInProgress,
		CreatedBy: "u-manager",
		CreatedAt: base,
	}
	require.NoError(t, fs.SaveOptimization(opt))
	return opt
}

func seedComplaint(t *testing.T, fs *storagetest.Fake, optID, status string, createdAt time.Time) *models.Complaint {
	t.Helper()
	c := &models.Complaint{
		Scope:          models.ScopeOptimization,
		OptimizationID: &optID,
		Reason:         "consolidation dropped long-tail rankings",
		Priority:       models.PriorityHigh,
		Status:         status,
		CreatedBy:      "u-manager",
		CreatedAt:      createdAt,
	}
	require.NoError(t, fs.SaveComplaint(c))
	return c
}

func TestGetDetail_DerivesAggregateState(t *testing.T) {
	svc, fs := newTestService(t)
	opt := seedOptimization(t, fs)
	seedComplaint(t, fs, opt.ID, models.ComplaintStatusActive, base.Add(time.Hour))

	detail, err := svc.GetDetail(opt.ID)
	require.NoError(t, err)

	assert.Equal(t, models.AggregateComplained, detail.ComplaintStatus)
	assert.True(t, detail.IsBlocked)
	assert.Contains(t, detail.BlockedReason, "consolidation dropped long-tail rankings")
	assert.Len(t, detail.Complaints, 1)
}

func TestGetDetail_NoComplaints(t *testing.T) {
	svc, fs := newTestService(t)
	opt := seedOptimization(t, fs)

	detail, err := svc.GetDetail(opt.ID)
	require.NoError(t, err)

	assert.Equal(t, models.AggregateNone, detail.ComplaintStatus)
	assert.False(t, detail.IsBlocked)
	assert.Empty(t, detail.BlockedReason)
}

func TestCloseOptimization_BlockedThenAllowed(t *testing.T) {
	svc, fs := newTestService(t)
	opt := seedOptimization(t, fs)
	c := seedComplaint(t, fs, opt.ID, models.ComplaintStatusActive, base.Add(time.Hour))

	// Blocked while the complaint is unresolved.
	_, err := svc.CloseOptimization(superAdmin, opt.ID, "done")
	var blockedErr *apperrors.BlockedError
	require.ErrorAs(t, err, &blockedErr)
	assert.Equal(t, opt.ID, blockedErr.OptimizationID)
	require.Len(t, blockedErr.OpenComplaints, 1)
	assert.Contains(t, blockedErr.OpenComplaints[0], "consolidation dropped long-tail rankings")

	// Resolve the complaint, then the identical call succeeds.
	c.MarkResolved(superAdmin.ID, "rankings recovered after recrawl", base.Add(2*time.Hour))
	require.NoError(t, fs.SaveComplaint(c))

	closed, err := svc.CloseOptimization(superAdmin, opt.ID, "done")
	require.NoError(t, err)
	assert.Equal(t, models.OptimizationStatusCompleted, closed.Status)
	require.NotNil(t, closed.ClosedBy)
	assert.Equal(t, superAdmin.ID, *closed.ClosedBy)
	require.NotNil(t, closed.ClosedAt)
	require.NotNil(t, closed.FinalNote)
	assert.Equal(t, "done", *closed.FinalNote)
}

func TestCloseOptimization_AlreadyCompleted(t *testing.T) {
	svc, fs := newTestService(t)
	opt := seedOptimization(t, fs)

	_, err := svc.CloseOptimization(superAdmin, opt.ID, "")
	require.NoError(t, err)

	_, err = svc.CloseOptimization(superAdmin, opt.ID, "")
	var stateErr *apperrors.InvalidStateError
	require.ErrorAs(t, err, &stateErr)
}

func TestCloseOptimization_RequiresHighestTier(t *testing.T) {
	svc, fs := newTestService(t)
	opt := seedOptimization(t, fs)

	adminUser := models.User{ID: "u-admin", Name: "Ada", Role: "admin"}
	_, err := svc.CloseOptimization(adminUser, opt.ID, "")
	var permissionErr *apperrors.PermissionError
	require.ErrorAs(t, err, &permissionErr)
}

func TestCloseOptimization_PublishesEvent(t *testing.T) {
	svc, fs := newTestService(t)
	opt := seedOptimization(t, fs)

	_, err := svc.CloseOptimization(superAdmin, opt.ID, "")
	require.NoError(t, err)

	require.Len(t, fs.Events, 1)
	assert.Equal(t, models.EventOptimizationClosed, fs.Events[0].Type)
	assert.Equal(t, opt.ID, fs.Events[0].OptimizationID)
}
