package board_test

import (
	"testing"
	"time"

	"leadboard-engine/internal/board"
	"leadboard-engine/internal/lead"
)

var testNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func daysAgo(n int) *time.Time {
	t := testNow.AddDate(0, 0, -n)
	return &t
}

func mkLead(company, industry, priority, status string) lead.Lead {
	return lead.Lead{
		CompanyName: company,
		Industry:    industry,
		Priority:    priority,
		Status:      status,
	}
}

func TestNeedsFollowUp(t *testing.T) {
	p := board.DefaultPolicy()

	cases := []struct {
		name       string
		status     string
		dateAdded  *time.Time
		lastAction *time.Time
		want       bool
	}{
		{"applied six days ago, untouched", "Applied", daysAgo(6), nil, true},
		{"applied three days ago", "Applied", daysAgo(3), nil, false},
		{"applied ten days ago, actioned yesterday", "Applied", daysAgo(10), daysAgo(1), false},
		{"applied ten days ago, actioned six days ago", "Applied", daysAgo(10), daysAgo(6), true},
		{"exactly at the threshold", "Applied", daysAgo(5), nil, true},
		{"interviewing is never flagged", "Interviewing", daysAgo(30), nil, false},
		{"no application date", "Applied", nil, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := lead.Lead{Status: tc.status, DateAdded: tc.dateAdded, LastAction: tc.lastAction}
			if got := board.NeedsFollowUp(l, p, testNow); got != tc.want {
				t.Errorf("NeedsFollowUp = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFollowUps(t *testing.T) {
	p := board.DefaultPolicy()
	a := mkLead("Stale Co", "SaaS", "High", "Applied")
	a.DateAdded = daysAgo(9)
	b := mkLead("Fresh Co", "SaaS", "High", "Applied")
	b.DateAdded = daysAgo(1)

	got := board.FollowUps([]lead.Lead{a, b}, p, testNow)
	if len(got) != 1 {
		t.Fatalf("got %d follow-ups, want 1", len(got))
	}
	if got[0].Lead.CompanyName != "Stale Co" || got[0].DaysSince != 9 {
		t.Errorf("follow-up = %q after %d days", got[0].Lead.CompanyName, got[0].DaysSince)
	}
}

func TestComputeMetrics_EmptyTable(t *testing.T) {
	m := board.ComputeMetrics(nil, board.DefaultPolicy(), testNow)
	if m != (board.Metrics{}) {
		t.Errorf("empty table metrics = %+v, want all zeros", m)
	}
}

func TestComputeMetrics(t *testing.T) {
	applied := mkLead("A", "SaaS", "High", "Applied")
	applied.DateAdded = daysAgo(8)
	leads := []lead.Lead{
		applied,
		mkLead("B", "FinTech", "High", "Interviewing"),
		mkLead("C", "SaaS", "Low", "Interviewing"),
		mkLead("D", "SaaS", "Medium", "To Research"),
	}
	m := board.ComputeMetrics(leads, board.DefaultPolicy(), testNow)
	want := board.Metrics{Total: 4, Applied: 1, Interviewing: 2, HighPriority: 2, NeedFollowUp: 1}
	if m != want {
		t.Errorf("metrics = %+v, want %+v", m, want)
	}
}

func TestFilter(t *testing.T) {
	leads := []lead.Lead{
		mkLead("A", "SaaS", "High", "Applied"),
		mkLead("B", "FinTech", "High", "Applied"),
		mkLead("C", "SaaS", "Low", "Offer"),
	}

	t.Run("all dimensions open", func(t *testing.T) {
		got := board.Filter(leads, board.FilterOpts{})
		if len(got) != 3 {
			t.Errorf("got %d leads, want 3", len(got))
		}
	})
	t.Run("All sentinel passes", func(t *testing.T) {
		got := board.Filter(leads, board.FilterOpts{Industry: "All", Priority: "All", Status: "All"})
		if len(got) != 3 {
			t.Errorf("got %d leads, want 3", len(got))
		}
	})
	t.Run("dimensions are ANDed", func(t *testing.T) {
		got := board.Filter(leads, board.FilterOpts{Industry: "SaaS", Priority: "High"})
		if len(got) != 1 || got[0].CompanyName != "A" {
			t.Errorf("got %+v, want just A", got)
		}
	})
	t.Run("no matches", func(t *testing.T) {
		got := board.Filter(leads, board.FilterOpts{Industry: "HealthTech"})
		if len(got) != 0 {
			t.Errorf("got %d leads, want 0", len(got))
		}
	})
}

func TestIndustries(t *testing.T) {
	leads := []lead.Lead{
		mkLead("A", "SaaS", "", ""),
		mkLead("B", "FinTech", "", ""),
		mkLead("C", "SaaS", "", ""),
		mkLead("D", "", "", ""),
	}
	got := board.Industries(leads)
	want := []string{"FinTech", "SaaS"}
	if len(got) != len(want) {
		t.Fatalf("industries = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("industries = %v, want %v", got, want)
			break
		}
	}
}

func TestKanban(t *testing.T) {
	leads := []lead.Lead{
		mkLead("A", "", "", "Applied"),
		mkLead("B", "", "", "To Research"),
		mkLead("C", "", "", "Applied"),
		mkLead("D", "", "", "Maybe Later"), // hand-edited cell
	}
	cols := board.Kanban(leads)
	if len(cols) != len(lead.KanbanOrder) {
		t.Fatalf("got %d lanes, want %d", len(cols), len(lead.KanbanOrder))
	}
	byStatus := map[string]board.Column{}
	total := 0
	for _, c := range cols {
		byStatus[c.Status] = c
		total += c.Count
	}
	if c := byStatus["Applied"]; c.Count != 2 {
		t.Errorf("Applied lane count = %d, want 2", c.Count)
	}
	if c := byStatus["To Research"]; c.Count != 1 || c.Cards[0].CompanyName != "B" {
		t.Errorf("To Research lane = %+v", c)
	}
	if total != 3 {
		t.Errorf("unparseable status leaked into a lane: total %d, want 3", total)
	}
	// lanes must come out in the fixed order even when empty
	for i, st := range lead.KanbanOrder {
		if cols[i].Status != string(st) {
			t.Errorf("lane %d = %q, want %q", i, cols[i].Status, st)
		}
		if cols[i].Cards == nil {
			t.Errorf("lane %q has nil cards, want empty slice", cols[i].Status)
		}
	}
}

func TestTimeline(t *testing.T) {
	p := board.DefaultPolicy()
	a := mkLead("Alpha", "", "", "Applied")
	a.DateAdded = daysAgo(10)
	b := mkLead("Beta", "", "", "Researching")
	b.DateAdded = daysAgo(2)
	b.LastAction = daysAgo(1)

	events := board.Timeline([]lead.Lead{a, b}, p)
	// Alpha: added + reminder; Beta: added + action.
	if len(events) != 4 {
		t.Fatalf("got %d events, want 4", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].Date.After(events[i-1].Date) {
			t.Errorf("events out of order at %d: %v after %v", i, events[i].Date, events[i-1].Date)
		}
	}
	var reminder *board.TimelineEvent
	for i := range events {
		if events[i].Type == board.EventReminder {
			reminder = &events[i]
		}
	}
	if reminder == nil {
		t.Fatal("no reminder event for the Applied lead")
	}
	wantDate := a.DateAdded.AddDate(0, 0, p.FollowUpOffsetDays)
	if !reminder.Date.Equal(wantDate) || reminder.Company != "Alpha" {
		t.Errorf("reminder = %+v, want %s on %s", reminder, "Alpha", wantDate)
	}
}

func TestHotLeads(t *testing.T) {
	leads := []lead.Lead{
		mkLead("A", "", "High", "To Research"),
		mkLead("B", "", "High", "Applied"), // past research, excluded
		mkLead("C", "", "Low", "Researching"),
		mkLead("D", "", "High", "Researching"),
		mkLead("E", "", "High", "To Research"),
		mkLead("F", "", "High", "Researching"), // over the cap
	}
	got := board.HotLeads(leads, board.DefaultPolicy())
	if len(got) != 3 {
		t.Fatalf("got %d hot leads, want 3", len(got))
	}
	for i, want := range []string{"A", "D", "E"} {
		if got[i].CompanyName != want {
			t.Errorf("hot lead %d = %q, want %q", i, got[i].CompanyName, want)
		}
	}
}
