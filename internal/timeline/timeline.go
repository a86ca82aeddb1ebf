// Package timeline merges an optimization's complaints and team
// responses into one chronologically ordered audit trail with summary
// statistics. Build is pure and idempotent: the same inputs always
// yield the same ordered output.
package timeline

import (
	"sort"
	"time"

	"seodesk/backend/internal/models"
)

type EventType string

const (
	EventComplaintCreated  EventType = "complaint_created"
	EventComplaintResolved EventType = "complaint_resolved"
	EventTeamResponse      EventType = "team_response"
)

// Event is one entry of the timeline. Fields beyond Type/At/Actor are
// populated per event type.
type Event struct {
	Type EventType `json:"type"`
	At   time.Time `json:"at"`
	// Actor is the user who caused the event: complaint author,
	// response author, or resolver.
	Actor string `json:"actor"`

	// Complaint events carry the display ordinal (oldest complaint = 1).
	ComplaintID string `json:"complaint_id,omitempty"`
	Ordinal     int    `json:"ordinal,omitempty"`

	// complaint_created
	Reason           string   `json:"reason,omitempty"`
	Priority         string   `json:"priority,omitempty"`
	ResponsibleUsers []string `json:"responsible_users,omitempty"`

	// complaint_created and team_response
	ReportURLs []string `json:"report_urls,omitempty"`

	// team_response
	Note string `json:"note,omitempty"`

	// complaint_resolved
	ResolutionNote        string   `json:"resolution_note,omitempty"`
	TimeToResolutionHours *float64 `json:"time_to_resolution_hours,omitempty"`
}

// Summary aggregates over the input complaint list, not the event
// list. AvgResolutionTimeHours is nil, not zero, when nothing has been
// resolved.
type Summary struct {
	TotalComplaints        int      `json:"total_complaints"`
	ResolvedComplaints     int      `json:"resolved_complaints"`
	TotalResponses         int      `json:"total_responses"`
	AvgResolutionTimeHours *float64 `json:"avg_resolution_time_hours,omitempty"`
}

// Build merges complaints (newest-first, as stored) and
// optimization-scoped responses into an ascending timeline. When both
// inputs are empty it returns (nil, nil): the caller suppresses the
// surface entirely instead of rendering an empty shell.
//
// Ties are broken by stable emission order. Events are emitted
// created-then-resolved per complaint, so a complaint created and
// resolved at the same instant keeps creation first.
func Build(complaints []models.Complaint, responses []models.Response) ([]Event, *Summary) {
	if len(complaints) == 0 && len(responses) == 0 {
		return nil, nil
	}

	total := len(complaints)
	events := make([]Event, 0, 2*total+len(responses))

	for i := range complaints {
		c := &complaints[i]
		ordinal := models.Ordinal(total, i)
		events = append(events, Event{
			Type:             EventComplaintCreated,
			At:               c.CreatedAt,
			Actor:            c.CreatedBy,
			ComplaintID:      c.ID,
			Ordinal:          ordinal,
			Reason:           c.Reason,
			Priority:         c.Priority,
			ResponsibleUsers: c.ResponsibleUsers,
			ReportURLs:       c.ReportURLs,
		})
		if c.ResolvedAt != nil {
			resolved := Event{
				Type:        EventComplaintResolved,
				At:          *c.ResolvedAt,
				ComplaintID: c.ID,
				Ordinal:     ordinal,
			}
			if c.ResolvedBy != nil {
				resolved.Actor = *c.ResolvedBy
			}
			if c.ResolutionNote != nil {
				resolved.ResolutionNote = *c.ResolutionNote
			}
			resolved.TimeToResolutionHours = c.TimeToResolutionHours
			events = append(events, resolved)
		}
	}

	for i := range responses {
		r := &responses[i]
		events = append(events, Event{
			Type:       EventTeamResponse,
			At:         r.CreatedAt,
			Actor:      r.CreatedBy,
			Note:       r.Note,
			ReportURLs: r.ReportURLs,
		})
	}

	sort.SliceStable(events, func(a, b int) bool {
		return events[a].At.Before(events[b].At)
	})

	return events, summarize(complaints, responses)
}

func summarize(complaints []models.Complaint, responses []models.Response) *Summary {
	summary := &Summary{
		TotalComplaints: len(complaints),
		TotalResponses:  len(responses),
	}

	var hoursSum float64
	for i := range complaints {
		c := &complaints[i]
		if c.ResolvedAt == nil {
			continue
		}
		summary.ResolvedComplaints++
		if c.TimeToResolutionHours != nil {
			hoursSum += *c.TimeToResolutionHours
		}
	}
	if summary.ResolvedComplaints > 0 {
		avg := hoursSum / float64(summary.ResolvedComplaints)
		summary.AvgResolutionTimeHours = &avg
	}
	return summary
}
