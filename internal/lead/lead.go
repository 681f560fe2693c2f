// Package lead defines the tracked job-search lead and the fixed
// worksheet layout it is stored in. One Lead = one spreadsheet row.
package lead

import (
	"fmt"
	"strings"
	"time"
)

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

type Type string

const (
	TypeFullTime  Type = "Full-time"
	TypeFreelance Type = "Freelance"
	TypeBoth      Type = "Both"
)

// Status drives kanban column placement.
type Status string

const (
	StatusToResearch   Status = "To Research"
	StatusResearching  Status = "Researching"
	StatusApplied      Status = "Applied"
	StatusInterviewing Status = "Interviewing"
	StatusOffer        Status = "Offer"
	StatusRejected     Status = "Rejected"
)

// KanbanOrder is the fixed left-to-right board order.
var KanbanOrder = []Status{
	StatusToResearch,
	StatusResearching,
	StatusApplied,
	StatusInterviewing,
	StatusOffer,
	StatusRejected,
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusToResearch, StatusResearching, StatusApplied,
		StatusInterviewing, StatusOffer, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown lead status %q", s)
}

func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p, nil
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

func ParseType(s string) (Type, error) {
	t := Type(s)
	switch t {
	case TypeFullTime, TypeFreelance, TypeBoth:
		return t, nil
	}
	return "", fmt.Errorf("unknown lead type %q", s)
}

// Lead is one tracked opportunity. Row is the zero-based position within
// the loaded sequence; the store fills it in on load. CompanyName is the
// de-facto UI identifier but storage does not enforce uniqueness; a
// duplicate name makes lookups hit the first match.
type Lead struct {
	Row         int        `json:"row"`
	Priority    string     `json:"priority"`
	CompanyName string     `json:"companyName"`
	Industry    string     `json:"industry"`
	Type        string     `json:"type"`
	Location    string     `json:"location"`
	JobLink     string     `json:"jobLink,omitempty"`
	Website     string     `json:"website,omitempty"`
	ContactRole string     `json:"contactRole,omitempty"`
	Status      string     `json:"status"`
	DateAdded   *time.Time `json:"dateAdded,omitempty"`
	LastAction  *time.Time `json:"lastAction,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// DateLayout is the wire format for the two date columns.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

// ParseDate coerces a cell value to a date. Empty or malformed strings
// come back as nil rather than an error; a bad date in the sheet must
// never fail the whole load.
func ParseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// FormatDate renders a date cell; nil becomes the empty cell.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

// FromRow parses one raw sheet row into a Lead. Short rows are treated
// as if the missing trailing cells were empty.
func FromRow(row []any) Lead {
	cell := func(i int) string {
		if i >= len(row) || row[i] == nil {
			return ""
		}
		return strings.TrimSpace(fmt.Sprint(row[i]))
	}
	return Lead{
		Priority:    cell(0),
		CompanyName: cell(1),
		Industry:    cell(2),
		Type:        cell(3),
		Location:    cell(4),
		JobLink:     cell(5),
		Website:     cell(6),
		ContactRole: cell(7),
		Status:      cell(8),
		DateAdded:   ParseDate(cell(9)),
		LastAction:  ParseDate(cell(10)),
		Notes:       cell(11),
	}
}

// Values renders the Lead as one row in column order.
func (l Lead) Values() []any {
	return []any{
		l.Priority,
		l.CompanyName,
		l.Industry,
		l.Type,
		l.Location,
		l.JobLink,
		l.Website,
		l.ContactRole,
		l.Status,
		FormatDate(l.DateAdded),
		FormatDate(l.LastAction),
		l.Notes,
	}
}
