package board

import (
	"time"

	"leadboard-engine/internal/lead"
)

// Metrics is the counter row across the top of the page. Everything is a
// straight count over the loaded table; an empty table yields all zeros.
type Metrics struct {
	Total        int `json:"total"`
	Applied      int `json:"applied"`
	Interviewing int `json:"interviewing"`
	HighPriority int `json:"highPriority"`
	NeedFollowUp int `json:"needFollowUp"`
}

func ComputeMetrics(leads []lead.Lead, p Policy, now time.Time) Metrics {
	m := Metrics{Total: len(leads)}
	for _, l := range leads {
		switch l.Status {
		case string(lead.StatusApplied):
			m.Applied++
		case string(lead.StatusInterviewing):
			m.Interviewing++
		}
		if l.Priority == string(lead.PriorityHigh) {
			m.HighPriority++
		}
		if NeedsFollowUp(l, p, now) {
			m.NeedFollowUp++
		}
	}
	return m
}

// HotLeads returns up to p.HotLeadsLimit high-priority leads still in the
// research stages, in storage order.
func HotLeads(leads []lead.Lead, p Policy) []lead.Lead {
	limit := p.HotLeadsLimit
	if limit <= 0 {
		limit = 3
	}
	var out []lead.Lead
	for _, l := range leads {
		if l.Priority != string(lead.PriorityHigh) {
			continue
		}
		if l.Status != string(lead.StatusToResearch) && l.Status != string(lead.StatusResearching) {
			continue
		}
		out = append(out, l)
		if len(out) == limit {
			break
		}
	}
	return out
}
