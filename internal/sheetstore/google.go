package sheetstore

import (
	"context"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// Connect authenticates with a service-account key (the same JSON blob a
// GCP console download gives you) and returns a Store bound to one
// worksheet. One attempt only: any failure (bad key, unreachable API,
// missing spreadsheet, header drift) comes back as a ConnectionError
// and the store is unusable until the caller retries Connect.
func Connect(ctx context.Context, cfg Config, credentialsJSON []byte) (*Store, error) {
	jwt, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, &ConnectionError{Op: "parse credentials", Err: err}
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(jwt.Client(ctx)))
	if err != nil {
		return nil, &ConnectionError{Op: "connect", Err: err}
	}

	s := newStore(&googleValues{svc: svc, spreadsheetID: cfg.SpreadsheetID}, cfg)
	if err := s.validateHeader(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// NewWithAPI builds a Store over any ValuesAPI implementation. Tests use
// it with an in-memory fake.
func NewWithAPI(api ValuesAPI, cfg Config) *Store {
	return newStore(api, cfg)
}

// googleValues adapts the generated Sheets client to the ValuesAPI the
// store is written against.
type googleValues struct {
	svc           *sheets.Service
	spreadsheetID string
}

func (g *googleValues) Get(ctx context.Context, rng string) ([][]any, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (g *googleValues) Update(ctx context.Context, rng string, values [][]any) error {
	vr := &sheets.ValueRange{Values: values}
	_, err := g.svc.Spreadsheets.Values.Update(g.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	return err
}

func (g *googleValues) Append(ctx context.Context, rng string, values [][]any) error {
	vr := &sheets.ValueRange{Values: values}
	_, err := g.svc.Spreadsheets.Values.Append(g.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	return err
}
