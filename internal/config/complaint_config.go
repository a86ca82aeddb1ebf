package config

import "seodesk/backend/internal/models"

// Validation limits for complaint workflow input. Lengths are measured
// on the trimmed string. The response note bounds apply to both
// project-scoped and optimization-scoped responses.
const (
	MinReasonLength         = 10
	MinResponseNoteLength   = 20
	MaxResponseNoteLength   = 2000
	MinResolutionNoteLength = 10
)

// Priorities lists the accepted complaint priorities.
var Priorities = []string{
	models.PriorityLow,
	models.PriorityMedium,
	models.PriorityHigh,
}

// Categories lists the accepted complaint categories. Category is
// optional; an empty value is allowed.
var Categories = []string{
	models.CategoryCommunication,
	models.CategoryDeadline,
	models.CategoryQuality,
	models.CategoryProcess,
	models.CategoryOther,
}
