package board

import (
	"sort"
	"time"

	"leadboard-engine/internal/lead"
)

type EventType string

const (
	EventAdded    EventType = "Added"
	EventAction   EventType = "Action"
	EventReminder EventType = "Reminder"
)

type TimelineEvent struct {
	Date    time.Time `json:"date"`
	Company string    `json:"company"`
	Type    EventType `json:"type"`
}

// Timeline flattens leads into dated events, newest first: when each was
// added, when it was last touched, and (for Applied leads) a follow-up
// reminder offset from the application date.
func Timeline(leads []lead.Lead, p Policy) []TimelineEvent {
	var out []TimelineEvent
	for _, l := range leads {
		if l.DateAdded != nil {
			out = append(out, TimelineEvent{Date: *l.DateAdded, Company: l.CompanyName, Type: EventAdded})
		}
		if l.LastAction != nil {
			out = append(out, TimelineEvent{Date: *l.LastAction, Company: l.CompanyName, Type: EventAction})
		}
		if l.Status == string(lead.StatusApplied) && l.DateAdded != nil {
			remind := l.DateAdded.AddDate(0, 0, p.FollowUpOffsetDays)
			out = append(out, TimelineEvent{Date: remind, Company: l.CompanyName, Type: EventReminder})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
