package complaint

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"seodesk/backend/internal/apperrors"
	"seodesk/backend/internal/config"
)

// Lengths are measured on the trimmed string, in runes.

// ValidateReason checks the complaint reason against the minimum
// length. Returns a ValidationError naming the constraint.
func ValidateReason(reason string) error {
	trimmed := strings.TrimSpace(reason)
	if utf8.RuneCountInString(trimmed) < config.MinReasonLength {
		return apperrors.NewValidation("reason",
			fmt.Sprintf("reason must be at least %d characters", config.MinReasonLength))
	}
	return nil
}

// ValidateResponseNote checks a response note against both bounds. The
// same bounds apply to project-scoped and optimization-scoped
// responses.
func ValidateResponseNote(note string) error {
	trimmed := strings.TrimSpace(note)
	n := utf8.RuneCountInString(trimmed)
	if n < config.MinResponseNoteLength {
		return apperrors.NewValidation("note",
			fmt.Sprintf("response note must be at least %d characters", config.MinResponseNoteLength))
	}
	if n > config.MaxResponseNoteLength {
		return apperrors.NewValidation("note",
			fmt.Sprintf("response note must be at most %d characters", config.MaxResponseNoteLength))
	}
	return nil
}

// ValidateResolutionNote checks a resolution note against the minimum
// length.
func ValidateResolutionNote(note string) error {
	trimmed := strings.TrimSpace(note)
	if utf8.RuneCountInString(trimmed) < config.MinResolutionNoteLength {
		return apperrors.NewValidation("resolution_note",
			fmt.Sprintf("resolution note must be at least %d characters", config.MinResolutionNoteLength))
	}
	return nil
}

// ValidatePriority checks the priority against the accepted set.
func ValidatePriority(priority string) error {
	for _, p := range config.Priorities {
		if p == priority {
			return nil
		}
	}
	return apperrors.NewValidation("priority",
		fmt.Sprintf("priority must be one of %s", strings.Join(config.Priorities, ", ")))
}

// ValidateCategory checks the category against the accepted set. An
// empty category is allowed.
func ValidateCategory(category string) error {
	if category == "" {
		return nil
	}
	for _, c := range config.Categories {
		if c == category {
			return nil
		}
	}
	return apperrors.NewValidation("category",
		fmt.Sprintf("category must be one of %s", strings.Join(config.Categories, ", ")))
}
