package complaint

import (
	"fmt"
	"strings"
	"time"

	"seodesk/backend/internal/apperrors"
	"seodesk/backend/internal/logger"
	"seodesk/backend/internal/models"
	"seodesk/backend/internal/optimization"
	"seodesk/backend/internal/rbac"
	"seodesk/backend/internal/storage"
)

// Notifier delivers fire-and-forget notifications to users. Failures
// never roll back the mutation that triggered them.
type Notifier interface {
	NotifyEvent(event models.DomainEvent, recipientIDs []string)
}

// Service handles the mutating operations of the complaint lifecycle.
// Each operation authorizes the actor, validates input, applies the
// state machine, persists exactly one record, then publishes an event.
type Service struct {
	Storage  storage.Storage
	Notifier Notifier
	Log      *logger.Logger
	Now      func() time.Time
}

func NewService(s storage.Storage, n Notifier, log *logger.Logger) *Service {
	return &Service{Storage: s, Notifier: n, Log: log, Now: time.Now}
}

// CreateComplaintInput carries the inputs for CreateComplaint. ParentID
// is an optimization ID or a network ID depending on Scope.
type CreateComplaintInput struct {
	Scope            string
	ParentID         string
	Reason           string
	Priority         string
	Category         string
	ResponsibleUsers []string
	ReportURLs       []string
}

// AddResponseInput carries the inputs for AddResponse. ParentID is a
// complaint ID (project scope) or an optimization ID (optimization
// scope).
type AddResponseInput struct {
	Scope      string
	ParentID   string
	Note       string
	ReportURLs []string
}

// CreateComplaint records a new dispute in its initial state.
func (s *Service) CreateComplaint(actor models.User, in CreateComplaintInput) (*models.Complaint, error) {
	if err := rbac.Authorize(actor, rbac.ActionCreateComplaint); err != nil {
		return nil, err
	}
	if in.Scope != models.ScopeOptimization && in.Scope != models.ScopeProject {
		return nil, apperrors.NewValidation("scope", "scope must be optimization or project")
	}
	if err := ValidateReason(in.Reason); err != nil {
		return nil, err
	}
	if err := ValidatePriority(in.Priority); err != nil {
		return nil, err
	}
	if err := ValidateCategory(in.Category); err != nil {
		return nil, err
	}

	complaint := &models.Complaint{
		Scope:            in.Scope,
		Reason:           strings.TrimSpace(in.Reason),
		Priority:         in.Priority,
		Status:           InitialStatus(in.Scope),
		CreatedBy:        actor.ID,
		CreatedAt:        s.Now(),
		ResponsibleUsers: in.ResponsibleUsers,
		ReportURLs:       in.ReportURLs,
	}
	if in.Category != "" {
		category := in.Category
		complaint.Category = &category
	}

	event := models.DomainEvent{
		Type:       models.EventComplaintCreated,
		Actor:      actor.ID,
		OccurredAt: complaint.CreatedAt,
	}

	switch in.Scope {
	case models.ScopeOptimization:
		opt, err := s.Storage.GetOptimizationByID(in.ParentID)
		if err != nil {
			return nil, err
		}
		complaint.OptimizationID = &opt.ID
		event.OptimizationID = opt.ID
		event.NetworkID = opt.NetworkID
		event.Message = fmt.Sprintf("complaint raised against optimization %q: %s", opt.Title, complaint.Reason)
	case models.ScopeProject:
		network, err := s.Storage.GetNetworkByID(in.ParentID)
		if err != nil {
			return nil, err
		}
		complaint.NetworkID = &network.ID
		event.NetworkID = network.ID
		event.Message = fmt.Sprintf("project-level complaint raised against network %q: %s", network.Name, complaint.Reason)
	}

	if err := s.Storage.SaveComplaint(complaint); err != nil {
		return nil, err
	}

	event.ComplaintID = complaint.ID
	s.emit(event, complaint.ResponsibleUsers)
	return complaint, nil
}

// AddResponse appends a team response. Responses are purely additive
// evidence: they never change the lifecycle state of a complaint.
func (s *Service) AddResponse(actor models.User, in AddResponseInput) (*models.Response, error) {
	if err := rbac.Authorize(actor, rbac.ActionRespond); err != nil {
		return nil, err
	}
	if err := ValidateResponseNote(in.Note); err != nil {
		return nil, err
	}

	response := &models.Response{
		Note:       strings.TrimSpace(in.Note),
		ReportURLs: in.ReportURLs,
		CreatedBy:  actor.ID,
		CreatedAt:  s.Now(),
	}

	event := models.DomainEvent{
		Type:       models.EventResponseAdded,
		Actor:      actor.ID,
		OccurredAt: response.CreatedAt,
	}
	var recipients []string

	switch in.Scope {
	case models.ScopeProject:
		target, err := s.Storage.GetComplaintByID(in.ParentID)
		if err != nil {
			return nil, err
		}
		response.ComplaintID = &target.ID
		event.ComplaintID = target.ID
		if target.NetworkID != nil {
			event.NetworkID = *target.NetworkID
		}
		event.Message = "team response added to complaint"
		recipients = append([]string{target.CreatedBy}, target.ResponsibleUsers...)
	case models.ScopeOptimization:
		// Optimization-scoped responses address the optimization as a
		// whole, deliberately not any single complaint.
		opt, err := s.Storage.GetOptimizationByID(in.ParentID)
		if err != nil {
			return nil, err
		}
		response.OptimizationID = &opt.ID
		event.OptimizationID = opt.ID
		event.NetworkID = opt.NetworkID
		event.Message = fmt.Sprintf("team response added to optimization %q", opt.Title)
		recipients = []string{opt.CreatedBy}
	default:
		return nil, apperrors.NewValidation("scope", "scope must be optimization or project")
	}

	if err := s.Storage.SaveResponse(response); err != nil {
		return nil, err
	}

	event.ResponseID = response.ID
	s.emit(event, recipients)
	return response, nil
}

// StartReview moves a project-scoped complaint from open to
// under_review.
func (s *Service) StartReview(actor models.User, complaintID string) (*models.Complaint, error) {
	if err := rbac.Authorize(actor, rbac.ActionStartReview); err != nil {
		return nil, err
	}
	target, err := s.Storage.GetComplaintByID(complaintID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(target.Scope, target.Status, models.ComplaintStatusUnderReview) {
		return nil, &apperrors.InvalidStateError{
			Entity:    "complaint",
			ID:        target.ID,
			Status:    target.Status,
			Operation: "start review of",
		}
	}
	target.Status = models.ComplaintStatusUnderReview
	if err := s.Storage.SaveComplaint(target); err != nil {
		return nil, err
	}

	s.emit(models.DomainEvent{
		Type:        models.EventComplaintReviewed,
		ComplaintID: target.ID,
		Actor:       actor.ID,
		Message:     "complaint moved under review",
		OccurredAt:  s.Now(),
	}, append([]string{target.CreatedBy}, target.ResponsibleUsers...))
	return target, nil
}

// Dismiss moves a project-scoped complaint to dismissed. Dismissal is
// terminal but records no resolution fields; those belong to resolved
// complaints only.
func (s *Service) Dismiss(actor models.User, complaintID string) (*models.Complaint, error) {
	if err := rbac.Authorize(actor, rbac.ActionDismiss); err != nil {
		return nil, err
	}
	target, err := s.Storage.GetComplaintByID(complaintID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(target.Scope, target.Status, models.ComplaintStatusDismissed) {
		return nil, &apperrors.InvalidStateError{
			Entity:    "complaint",
			ID:        target.ID,
			Status:    target.Status,
			Operation: "dismiss",
		}
	}
	target.Status = models.ComplaintStatusDismissed
	if err := s.Storage.SaveComplaint(target); err != nil {
		return nil, err
	}

	s.emit(models.DomainEvent{
		Type:        models.EventComplaintDismissed,
		ComplaintID: target.ID,
		Actor:       actor.ID,
		Message:     "complaint dismissed",
		OccurredAt:  s.Now(),
	}, append([]string{target.CreatedBy}, target.ResponsibleUsers...))
	return target, nil
}

// ResolveComplaint transitions a complaint to resolved, setting all
// resolution fields together. With markOptimizationComplete set on an
// optimization-scoped complaint, closure of the parent is attempted
// afterwards; if other complaints still block it, the resolution stands
// and the closure is skipped.
func (s *Service) ResolveComplaint(actor models.User, complaintID, resolutionNote string, markOptimizationComplete bool) (*models.Complaint, error) {
	if err := rbac.Authorize(actor, rbac.ActionResolve); err != nil {
		return nil, err
	}
	target, err := s.Storage.GetComplaintByID(complaintID)
	if err != nil {
		return nil, err
	}
	if target.IsTerminal() {
		return nil, &apperrors.InvalidStateError{
			Entity:    "complaint",
			ID:        target.ID,
			Status:    target.Status,
			Operation: "resolve",
		}
	}
	if err := ValidateResolutionNote(resolutionNote); err != nil {
		return nil, err
	}

	target.MarkResolved(actor.ID, strings.TrimSpace(resolutionNote), s.Now())
	if err := s.Storage.SaveComplaint(target); err != nil {
		return nil, err
	}

	s.emit(models.DomainEvent{
		Type:        models.EventComplaintResolved,
		ComplaintID: target.ID,
		Actor:       actor.ID,
		Message:     fmt.Sprintf("complaint resolved: %s", *target.ResolutionNote),
		OccurredAt:  *target.ResolvedAt,
	}, append([]string{target.CreatedBy}, target.ResponsibleUsers...))

	if markOptimizationComplete && target.Scope == models.ScopeOptimization && target.OptimizationID != nil {
		if err := s.completeParent(actor, *target.OptimizationID); err != nil {
			s.Log.Warn("optimization closure after resolution skipped",
				"complaint_id", target.ID,
				"optimization_id", *target.OptimizationID,
				"error", err)
		}
	}
	return target, nil
}

// completeParent reloads the parent optimization (so the fresh
// resolution is visible) and runs the closure path under the same
// blocking rule as CloseOptimization.
func (s *Service) completeParent(actor models.User, optimizationID string) error {
	opt, err := s.Storage.GetOptimizationByID(optimizationID)
	if err != nil {
		return err
	}
	if err := optimization.Close(opt, actor, "", s.Now()); err != nil {
		return err
	}
	if err := s.Storage.SaveOptimization(opt); err != nil {
		return err
	}
	s.emit(models.DomainEvent{
		Type:           models.EventOptimizationClosed,
		NetworkID:      opt.NetworkID,
		OptimizationID: opt.ID,
		Actor:          actor.ID,
		Message:        fmt.Sprintf("optimization %q closed by %s", opt.Title, actor.Name),
		OccurredAt:     *opt.ClosedAt,
	}, []string{opt.CreatedBy})
	return nil
}

// emit publishes the event to the hub channel and hands it to the
// notifier. Both are side effects after the mutation committed; errors
// are logged and dropped.
func (s *Service) emit(event models.DomainEvent, recipients []string) {
	if err := s.Storage.PublishEvent(event); err != nil {
		s.Log.Warn("failed to publish domain event", "type", event.Type, "error", err)
	}
	if s.Notifier != nil {
		s.Notifier.NotifyEvent(event, recipients)
	}
}
