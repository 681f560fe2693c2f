// Package sheetstore mediates all reads and writes against the remote
// lead worksheet. Reads go through a short-lived cache so a chatty
// dashboard doesn't burn the Sheets per-minute quota; any successful
// mutation drops the cache unconditionally.
package sheetstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"leadboard-engine/internal/lead"
)

// Config addresses one worksheet. Credentials are handled by Connect;
// the Store itself never sees them.
type Config struct {
	SpreadsheetID string
	Worksheet     string
	HeaderRows    int
	TTL           time.Duration
}

// ValuesAPI is the narrow slice of the Sheets API the store needs.
// googleValues implements it for real; tests swap in a fake.
type ValuesAPI interface {
	Get(ctx context.Context, rng string) ([][]any, error)
	Update(ctx context.Context, rng string, values [][]any) error
	Append(ctx context.Context, rng string, values [][]any) error
}

type cacheEntry struct {
	leads     []lead.Lead
	fetchedAt time.Time
}

// Store is safe for use from multiple goroutines; the cache is the only
// shared mutable state and sits behind mu.
type Store struct {
	api     ValuesAPI
	cfg     Config
	limiter *rate.Limiter
	now     func() time.Time

	mu    sync.Mutex
	cache *cacheEntry
}

// Sheets quota is 60 read + 60 write requests per minute per user.
const requestsPerSecond = 1.0

func newStore(api ValuesAPI, cfg Config) *Store {
	if cfg.HeaderRows <= 0 {
		cfg.HeaderRows = 1
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 60 * time.Second
	}
	return &Store{
		api:     api,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 4),
		now:     time.Now,
	}
}

func (s *Store) dataRange() string {
	return fmt.Sprintf("%s!A%d:%s", s.cfg.Worksheet, s.cfg.HeaderRows+1, lead.LastColumn)
}

func (s *Store) headerRange() string {
	return fmt.Sprintf("%s!A1:%s1", s.cfg.Worksheet, lead.LastColumn)
}

func (s *Store) cellRange(rowIndex, col int) string {
	letter := lead.A1Column(col)
	return fmt.Sprintf("%s!%s%d", s.cfg.Worksheet, letter, rowIndex+s.cfg.HeaderRows+1)
}

// validateHeader checks the worksheet's actual header row against the
// fixed layout once, at connect time. The positional field→column
// mapping is only trustworthy if the first row still matches.
func (s *Store) validateHeader(ctx context.Context) error {
	rows, err := s.api.Get(ctx, s.headerRange())
	if err != nil {
		return &ConnectionError{Op: "read header", Err: err}
	}
	if len(rows) == 0 {
		return &ConnectionError{Op: "read header", Err: fmt.Errorf("worksheet %q has no header row", s.cfg.Worksheet)}
	}
	header := rows[0]
	for i, want := range lead.Fields {
		got := ""
		if i < len(header) && header[i] != nil {
			got = fmt.Sprint(header[i])
		}
		if got != want {
			return &ConnectionError{
				Op:  "validate header",
				Err: fmt.Errorf("column %d is %q, want %q", i+1, got, want),
			}
		}
	}
	return nil
}

// LoadAll returns every lead in storage order (top to bottom, header
// excluded). A result younger than the TTL is served from cache without
// touching the backend.
func (s *Store) LoadAll(ctx context.Context) ([]lead.Lead, error) {
	s.mu.Lock()
	if c := s.cache; c != nil && s.now().Sub(c.fetchedAt) < s.cfg.TTL {
		out := c.leads
		s.mu.Unlock()
		return out, nil
	}
	s.mu.Unlock()
	return s.Reload(ctx)
}

// Reload always hits the backend and replaces the cache.
func (s *Store) Reload(ctx context.Context) ([]lead.Lead, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, &ConnectionError{Op: "load", Err: err}
	}
	rows, err := s.api.Get(ctx, s.dataRange())
	if err != nil {
		return nil, &ConnectionError{Op: "load", Err: err}
	}
	leads := make([]lead.Lead, 0, len(rows))
	for i, row := range rows {
		l := lead.FromRow(row)
		l.Row = i
		leads = append(leads, l)
	}
	s.mu.Lock()
	s.cache = &cacheEntry{leads: leads, fetchedAt: s.now()}
	s.mu.Unlock()
	return leads, nil
}

// UpdateField writes a single cell addressed by the zero-based row
// position from the last load plus the field's fixed column. If the
// sheet changed underneath the caller since that load, the positional
// address may hit a different logical row — known hazard, not corrected.
func (s *Store) UpdateField(ctx context.Context, rowIndex int, field, value string) error {
	col, ok := lead.ColumnOf(field)
	if !ok {
		return &InvalidFieldError{Field: field}
	}
	if rowIndex < 0 {
		return fmt.Errorf("row index %d out of range", rowIndex)
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return &ConnectionError{Op: "update", Err: err}
	}
	if err := s.api.Update(ctx, s.cellRange(rowIndex, col), [][]any{{value}}); err != nil {
		return &ConnectionError{Op: "update", Err: err}
	}
	s.Invalidate()
	return nil
}

// AppendRow adds one row at the end of the table. The caller owns the
// ordering of the 12 values; the store does no schema validation.
func (s *Store) AppendRow(ctx context.Context, values []any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return &ConnectionError{Op: "append", Err: err}
	}
	if err := s.api.Append(ctx, s.dataRange(), [][]any{values}); err != nil {
		return &ConnectionError{Op: "append", Err: err}
	}
	s.Invalidate()
	return nil
}

// Invalidate drops the read cache so the next LoadAll re-fetches.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.cache = nil
	s.mu.Unlock()
}
