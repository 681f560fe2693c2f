package config

import (
	"fmt"
	"strings"

	"leadboard-engine/internal/lead"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate trims list entries, drops duplicates, and checks
// the knobs the dashboard depends on.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Policy.Industries = trimList(out.Policy.Industries)
	out.Policy.NewStatuses = trimList(out.Policy.NewStatuses)

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if strings.TrimSpace(out.Sheet.SpreadsheetID) == "" {
		res.addWarn("sheet.spreadsheet_id is empty; the engine cannot connect until it is set")
	}
	if strings.TrimSpace(out.Sheet.Worksheet) == "" {
		res.addErr("sheet.worksheet is required")
	}
	if out.Sheet.HeaderRows < 1 {
		res.addErr("sheet.header_rows must be >= 1")
	}

	if out.Cache.TTLSeconds <= 0 {
		res.addErr("cache.ttl_seconds must be > 0")
	}
	if out.Polling.RefreshSeconds <= 0 {
		res.addErr("polling.refresh_seconds must be > 0")
	} else if out.Polling.RefreshSeconds < 30 {
		res.addWarn("polling.refresh_seconds is very low (%d) and may burn the Sheets quota.", out.Polling.RefreshSeconds)
	}

	if out.Policy.StaleDays <= 0 {
		res.addErr("policy.stale_days must be > 0")
	}
	if out.Policy.FollowUpOffsetDays < 0 {
		res.addErr("policy.followup_offset_days must be >= 0")
	}
	if out.Policy.HotLeadsLimit <= 0 {
		res.addErr("policy.hot_leads_limit must be > 0")
	}

	for _, s := range out.Policy.NewStatuses {
		if _, err := lead.ParseStatus(s); err != nil {
			res.addErr("policy.new_statuses contains %q, which is not a lead status", s)
		}
	}
	if len(out.Policy.NewStatuses) == 0 {
		res.addWarn("policy.new_statuses is empty; the add form will have no status choices")
	}

	return out, res
}
