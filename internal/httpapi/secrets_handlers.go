package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"

	"leadboard-engine/internal/config"
	"leadboard-engine/internal/secrets"
)

type SecretsHandler struct {
	CfgVal *atomic.Value // stores config.Config
}

type setCredentialsReq struct {
	CredentialsJSON string `json:"credentialsJson"`
}

// SetSheetsCredentials stores the service-account key in the OS keychain
// so it never has to sit in a file next to the config. Takes effect on
// the next engine start (connect happens once, at boot).
func (h SecretsHandler) SetSheetsCredentials(w http.ResponseWriter, r *http.Request) {
	var req setCredentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if !json.Valid([]byte(req.CredentialsJSON)) {
		WriteError(w, r, http.StatusBadRequest, "invalid_credentials", "credentials must be a JSON service-account key")
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	if strings.TrimSpace(cfg.Sheet.SpreadsheetID) == "" {
		WriteError(w, r, http.StatusBadRequest, "no_spreadsheet", "set sheet.spreadsheet_id first")
		return
	}

	account := secrets.KeyringAccount(cfg.Sheet.SpreadsheetID)
	if err := secrets.SetServiceAccountJSON(account, req.CredentialsJSON); err != nil {
		WriteError(w, r, http.StatusBadRequest, "keychain_failed", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
