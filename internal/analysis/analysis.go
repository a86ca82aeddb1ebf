// Package analysis provides severity weighting for complaints. Weights
// decide the order in which unresolved complaints are listed in blocked
// reasons and notifications: highest severity first.
package analysis

import "seodesk/backend/internal/models"

var priorityWeights = map[string]int{
	models.PriorityLow:    1,
	models.PriorityMedium: 2,
	models.PriorityHigh:   3,
}

// Weight returns the severity weight for a complaint priority.
// Unknown priorities weigh 0 and sort last.
func Weight(priority string) int {
	return priorityWeights[priority]
}
