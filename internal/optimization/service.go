package optimization

import (
	"fmt"
	"time"

	"seodesk/backend/internal/logger"
	"seodesk/backend/internal/models"
	"seodesk/backend/internal/storage"
)

// Notifier delivers fire-and-forget notifications to users. Failures
// are the notifier's problem; they never roll back a mutation.
type Notifier interface {
	NotifyEvent(event models.DomainEvent, recipientIDs []string)
}

// Service handles the optimization side of the workflow: the detail
// view with derived aggregate state, and closure.
type Service struct {
	Storage  storage.Storage
	Notifier Notifier
	Log      *logger.Logger
	Now      func() time.Time
}

func NewService(s storage.Storage, n Notifier, log *logger.Logger) *Service {
	return &Service{Storage: s, Notifier: n, Log: log, Now: time.Now}
}

// Detail is the read model for one optimization: the record, its
// children, and the derived aggregate state.
type Detail struct {
	Optimization models.Optimization `json:"optimization"`
	Complaints   []models.Complaint  `json:"complaints"`
	Responses    []models.Response   `json:"responses"`

	ComplaintStatus string `json:"complaint_status"`
	IsBlocked       bool   `json:"is_blocked"`
	BlockedReason   string `json:"blocked_reason,omitempty"`
}

// GetDetail loads an optimization and derives its aggregate complaint
// status and blocked flag from current state.
func (s *Service) GetDetail(optimizationID string) (*Detail, error) {
	opt, err := s.Storage.GetOptimizationByID(optimizationID)
	if err != nil {
		return nil, err
	}

	aggregate := DeriveComplaintStatus(opt.Complaints, opt.Responses)
	detail := &Detail{
		Optimization:    *opt,
		Complaints:      opt.Complaints,
		Responses:       opt.Responses,
		ComplaintStatus: aggregate,
		IsBlocked:       IsBlocked(aggregate),
	}
	if detail.IsBlocked {
		detail.BlockedReason = BlockedReason(opt.Complaints)
	}
	return detail, nil
}

// CloseOptimization closes an optimization, subject to the blocking
// rule, and publishes the closure event.
func (s *Service) CloseOptimization(actor models.User, optimizationID, finalNote string) (*models.Optimization, error) {
	opt, err := s.Storage.GetOptimizationByID(optimizationID)
	if err != nil {
		return nil, err
	}
	if err := Close(opt, actor, finalNote, s.Now()); err != nil {
		return nil, err
	}
	if err := s.Storage.SaveOptimization(opt); err != nil {
		return nil, err
	}

	event := models.DomainEvent{
		Type:           models.EventOptimizationClosed,
		NetworkID:      opt.NetworkID,
		OptimizationID: opt.ID,
		Actor:          actor.ID,
		Message:        fmt.Sprintf("optimization %q closed by %s", opt.Title, actor.Name),
		OccurredAt:     *opt.ClosedAt,
	}
	if err := s.Storage.PublishEvent(event); err != nil {
		s.Log.Warn("failed to publish closure event", "optimization_id", opt.ID, "error", err)
	}
	if s.Notifier != nil {
		s.Notifier.NotifyEvent(event, []string{opt.CreatedBy})
	}
	return opt, nil
}
