package board

import (
	"time"

	"leadboard-engine/internal/lead"
)

// Policy holds the date thresholds the UI treats as tunable knobs.
type Policy struct {
	// StaleDays: an Applied lead counts as needing follow-up once this
	// many days pass since it was added with no recent action.
	StaleDays int
	// FollowUpOffsetDays: where the timeline places the reminder entry
	// relative to the application date.
	FollowUpOffsetDays int
	// HotLeadsLimit caps the "hot leads" insight list.
	HotLeadsLimit int
}

func DefaultPolicy() Policy {
	return Policy{StaleDays: 5, FollowUpOffsetDays: 7, HotLeadsLimit: 3}
}

func daysSince(now time.Time, t time.Time) int {
	return int(now.Sub(t).Hours() / 24)
}

// NeedsFollowUp reports whether a lead has sat in Applied long enough,
// with no recent action, to warrant outreach. Evaluated per lead with no
// shared state.
func NeedsFollowUp(l lead.Lead, p Policy, now time.Time) bool {
	if l.Status != string(lead.StatusApplied) || l.DateAdded == nil {
		return false
	}
	if daysSince(now, *l.DateAdded) < p.StaleDays {
		return false
	}
	if l.LastAction != nil && daysSince(now, *l.LastAction) < p.StaleDays {
		return false
	}
	return true
}

// FollowUps lists the leads currently needing follow-up, with the days
// elapsed since application, in storage order.
type FollowUp struct {
	Lead      lead.Lead `json:"lead"`
	DaysSince int       `json:"daysSince"`
}

func FollowUps(leads []lead.Lead, p Policy, now time.Time) []FollowUp {
	var out []FollowUp
	for _, l := range leads {
		if NeedsFollowUp(l, p, now) {
			out = append(out, FollowUp{Lead: l, DaysSince: daysSince(now, *l.DateAdded)})
		}
	}
	return out
}
