// Package optimization derives the aggregate complaint status of an
// optimization and gates its closure. All derivations are pure
// functions over the loaded complaint/response lists, recomputed on
// every read; nothing here is cached on the record.
package optimization

import (
	"fmt"
	"sort"

	"seodesk/backend/internal/analysis"
	"seodesk/backend/internal/models"
)

// DeriveComplaintStatus computes the aggregate complaint status from an
// optimization's complaints and its optimization-scoped responses:
//
//   - none: no complaints.
//   - resolved: every complaint reached a terminal state.
//   - under_review: the newest unresolved complaint has received at
//     least one team response since it was raised.
//   - complained: the newest unresolved complaint has no response yet.
func DeriveComplaintStatus(complaints []models.Complaint, responses []models.Response) string {
	if len(complaints) == 0 {
		return models.AggregateNone
	}

	var newestOpen *models.Complaint
	for i := range complaints {
		c := &complaints[i]
		if c.IsTerminal() {
			continue
		}
		if newestOpen == nil || c.CreatedAt.After(newestOpen.CreatedAt) {
			newestOpen = c
		}
	}
	if newestOpen == nil {
		return models.AggregateResolved
	}

	for i := range responses {
		if !responses[i].CreatedAt.Before(newestOpen.CreatedAt) {
			return models.AggregateUnderReview
		}
	}
	return models.AggregateComplained
}

// IsBlocked reports whether the aggregate status forbids closing the
// optimization: any unresolved complaint blocks.
func IsBlocked(aggregateStatus string) bool {
	return aggregateStatus == models.AggregateComplained ||
		aggregateStatus == models.AggregateUnderReview
}

// OpenComplaintLabels renders one human-readable label per unresolved
// complaint, highest priority first, ties oldest first. The complaint
// list must be ordered newest-first so display ordinals line up.
func OpenComplaintLabels(complaints []models.Complaint) []string {
	type open struct {
		ordinal   int
		complaint *models.Complaint
	}
	total := len(complaints)
	var opens []open
	for i := range complaints {
		if complaints[i].IsTerminal() {
			continue
		}
		opens = append(opens, open{ordinal: models.Ordinal(total, i), complaint: &complaints[i]})
	}
	sort.SliceStable(opens, func(a, b int) bool {
		wa := analysis.Weight(opens[a].complaint.Priority)
		wb := analysis.Weight(opens[b].complaint.Priority)
		if wa != wb {
			return wa > wb
		}
		return opens[a].complaint.CreatedAt.Before(opens[b].complaint.CreatedAt)
	})

	labels := make([]string, 0, len(opens))
	for _, o := range opens {
		labels = append(labels, fmt.Sprintf("complaint #%d (%s priority): %s",
			o.ordinal, o.complaint.Priority, o.complaint.Reason))
	}
	return labels
}

// BlockedReason renders the explanation shown when closure is refused,
// or "" when nothing blocks.
func BlockedReason(complaints []models.Complaint) string {
	labels := OpenComplaintLabels(complaints)
	if len(labels) == 0 {
		return ""
	}
	reason := "closure blocked by unresolved complaints: "
	for i, label := range labels {
		if i > 0 {
			reason += "; "
		}
		reason += label
	}
	return reason
}
