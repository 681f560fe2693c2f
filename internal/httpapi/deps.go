package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"leadboard-engine/internal/config"
	"leadboard-engine/internal/events"
	"leadboard-engine/internal/lead"
)

// LeadStore is the slice of the sheet store the handlers use. It is an
// interface so handler tests can run against a fake with no network.
type LeadStore interface {
	LoadAll(ctx context.Context) ([]lead.Lead, error)
	Reload(ctx context.Context) ([]lead.Lead, error)
	UpdateField(ctx context.Context, rowIndex int, field, value string) error
	AppendRow(ctx context.Context, values []any) error
	Invalidate()
}

type Deps struct {
	// Store is nil when the initial connect failed; read endpoints then
	// serve the local snapshot and mutations report the backend as down.
	Store LeadStore

	// Snapshot is the local sqlite fallback; may be nil in tests.
	Snapshot *sql.DB

	Hub *events.Hub

	// Atomic stores
	CfgVal        *atomic.Value // stores config.Config
	RefreshStatus *atomic.Value // stores poll.RefreshStatus

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
}
