package optimization

import (
	"time"

	"seodesk/backend/internal/apperrors"
	"seodesk/backend/internal/models"
	"seodesk/backend/internal/rbac"
)

// Close applies the closure gating rule to a loaded optimization
// aggregate and marks it completed. The caller persists the record.
// Fails with InvalidStateError when already completed and BlockedError
// when any complaint is unresolved; the BlockedError names the open
// complaints.
func Close(opt *models.Optimization, actor models.User, finalNote string, at time.Time) error {
	if err := rbac.Authorize(actor, rbac.ActionClose); err != nil {
		return err
	}
	if opt.IsCompleted() {
		return &apperrors.InvalidStateError{
			Entity:    "optimization",
			ID:        opt.ID,
			Status:    opt.Status,
			Operation: "close",
		}
	}
	if IsBlocked(DeriveComplaintStatus(opt.Complaints, opt.Responses)) {
		return &apperrors.BlockedError{
			OptimizationID: opt.ID,
			OpenComplaints: OpenComplaintLabels(opt.Complaints),
		}
	}
	opt.MarkCompleted(actor.ID, finalNote, at)
	return nil
}
