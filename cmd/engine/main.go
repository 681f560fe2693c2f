package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"

	"leadboard-engine/internal/config"
	"leadboard-engine/internal/events"
	"leadboard-engine/internal/httpapi"
	"leadboard-engine/internal/poll"
	"leadboard-engine/internal/secrets"
	"leadboard-engine/internal/sheetstore"
	"leadboard-engine/internal/store"
)

func main() {
	// Engine data dir: use env if provided, else local folder.
	dataDir := os.Getenv("LEADBOARD_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir; a second instance would fight over the
	// sqlite snapshot and double the Sheets traffic.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("lock data dir: %v", err)
	}
	if !locked {
		log.Fatalf("another engine instance is already running in %s", dataDir)
	}
	defer lock.Unlock()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	_, vr := config.NormalizeAndValidate(cfg)
	for _, warning := range vr.Warnings {
		log.Printf("[config] warning: %s", warning)
	}
	if !vr.OK() {
		log.Fatalf("config invalid (%s): %v", userCfgPath, vr.Errors)
	}
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, "leadboard.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	// Connect to the sheet. A failed connect is not fatal: the engine
	// still serves the last snapshot, and the page shows it as stale.
	sheet := connectSheet(cfg, dataDir)

	hub := events.NewHub()

	var refreshStatus atomic.Value
	refreshStatus.Store(poll.RefreshStatus{})

	deps := httpapi.Deps{
		Snapshot:      db.Pool,
		Hub:           hub,
		CfgVal:        &cfgVal,
		RefreshStatus: &refreshStatus,
		UserCfgPath:   userCfgPath,
		LoadCfg:       loadCfg,
	}
	if sheet != nil {
		// assign only when non-nil; a typed nil in the interface would
		// defeat the Store == nil checks in the handlers
		deps.Store = sheet
	}

	mux := httpapi.NewMux(deps)

	srv := &http.Server{
		ReadHeaderTimeout: 5 * time.Second,
	}

	token, err := randomToken(16)
	if err != nil {
		log.Fatal(err)
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))

	srv.Handler = httpapi.Chain(mux,
		httpapi.Cors,
		httpapi.RequestID,
		httpapi.AccessLog,
		httpapi.Recover,
	)

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://%s (db=%s)", addr, dbPath)
	if err := writePortFile(dataDir, addr, token); err != nil {
		log.Printf("[boot] port file: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	if sheet != nil {
		g.Go(func() error {
			poll.StartRefresher(ctx, cfg.RefreshInterval(), sheet, db.Pool, &refreshStatus, hub)
			return nil
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}

// connectSheet resolves credentials (OS keychain first, file second) and
// performs the single connect attempt.
func connectSheet(cfg config.Config, dataDir string) *sheetstore.Store {
	if cfg.Sheet.SpreadsheetID == "" {
		log.Printf("[boot] sheet.spreadsheet_id not set; running on snapshot only")
		return nil
	}

	creds, err := loadCredentials(cfg, dataDir)
	if err != nil {
		log.Printf("[boot] credentials: %v; running on snapshot only", err)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sheet, err := sheetstore.Connect(ctx, sheetstore.Config{
		SpreadsheetID: cfg.Sheet.SpreadsheetID,
		Worksheet:     cfg.Sheet.Worksheet,
		HeaderRows:    cfg.Sheet.HeaderRows,
		TTL:           cfg.CacheTTL(),
	}, creds)
	if err != nil {
		log.Printf("[boot] sheet connect failed: %v; running on snapshot only", err)
		return nil
	}
	log.Printf("[boot] connected to sheet %s (%s)", cfg.Sheet.SpreadsheetID, cfg.Sheet.Worksheet)
	return sheet
}

func loadCredentials(cfg config.Config, dataDir string) ([]byte, error) {
	account := secrets.KeyringAccount(cfg.Sheet.SpreadsheetID)
	if v, err := secrets.GetServiceAccountJSON(account); err == nil {
		return []byte(v), nil
	}

	path := cfg.Sheet.CredentialsFile
	if path == "" {
		return nil, fmt.Errorf("no credentials in keychain and sheet.credentials_file is empty")
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(dataDir, path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}
