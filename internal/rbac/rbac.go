// Package rbac is the single authorization policy for the dashboard.
// Every mutating operation consults Authorize before touching a record,
// instead of scattering role string checks across call sites.
package rbac

import (
	"seodesk/backend/internal/apperrors"
	"seodesk/backend/internal/models"
)

type Role string
type Action string

const (
	RoleViewer     Role = "viewer"
	RoleManager    Role = "manager"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

const (
	ActionView            Action = "view"
	ActionCreateComplaint Action = "create complaint"
	ActionRespond         Action = "add response"
	ActionStartReview     Action = "start review"
	ActionDismiss         Action = "dismiss complaint"
	ActionResolve         Action = "resolve complaint"
	ActionClose           Action = "close optimization"
)

// Can reports whether a role may perform an action. Resolving
// complaints, dismissing them and closing optimizations are reserved
// for the highest tier; responses require admin or above.
func Can(role Role, action Action) bool {
	switch role {
	case RoleSuperAdmin:
		return true
	case RoleAdmin:
		return action == ActionView || action == ActionCreateComplaint ||
			action == ActionRespond || action == ActionStartReview
	case RoleManager:
		return action == ActionView || action == ActionCreateComplaint
	case RoleViewer:
		return action == ActionView
	default:
		return false
	}
}

// Normalize maps an arbitrary role string to a known Role, falling back
// to viewer for anything unrecognized.
func Normalize(role string) Role {
	switch Role(role) {
	case RoleViewer, RoleManager, RoleAdmin, RoleSuperAdmin:
		return Role(role)
	default:
		return RoleViewer
	}
}

// Authorize checks the actor against the policy and returns a
// PermissionError naming the refused operation.
func Authorize(actor models.User, action Action) error {
	if Can(Normalize(actor.Role), action) {
		return nil
	}
	return &apperrors.PermissionError{
		Actor:     actor.ID,
		Role:      actor.Role,
		Operation: string(action),
	}
}
