// Package complaint implements the complaint lifecycle: the per-scope
// state machine, input validation, and the mutating operations of the
// dispute workflow.
package complaint

import "seodesk/backend/internal/models"

// projectTransitions is the four-state machine for project-scoped
// complaints: open -> under_review -> resolved, with dismissal allowed
// from either non-terminal state.
var projectTransitions = map[string][]string{
	models.ComplaintStatusOpen: {
		models.ComplaintStatusUnderReview,
		models.ComplaintStatusResolved,
		models.ComplaintStatusDismissed,
	},
	models.ComplaintStatusUnderReview: {
		models.ComplaintStatusResolved,
		models.ComplaintStatusDismissed,
	},
}

// optimizationTransitions is the two-state reduction used for
// optimization-scoped complaints.
var optimizationTransitions = map[string][]string{
	models.ComplaintStatusActive: {
		models.ComplaintStatusResolved,
	},
}

// InitialStatus returns the state a freshly created complaint starts in
// for the given scope.
func InitialStatus(scope string) string {
	if scope == models.ScopeOptimization {
		return models.ComplaintStatusActive
	}
	return models.ComplaintStatusOpen
}

// CanTransition reports whether the state machine for the given scope
// permits moving from one status to another.
func CanTransition(scope, from, to string) bool {
	transitions := projectTransitions
	if scope == models.ScopeOptimization {
		transitions = optimizationTransitions
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
