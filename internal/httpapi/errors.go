package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"leadboard-engine/internal/sheetstore"
)

type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	WriteJSON(w, status, e)
}

// writeStoreError maps store failures onto the API taxonomy: programmer
// errors are 400s, backend trouble is a 502 the page shows as "backend
// unreachable, data may be stale".
func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErr *sheetstore.InvalidFieldError
	var connErr *sheetstore.ConnectionError
	switch {
	case errors.As(err, &fieldErr):
		WriteError(w, r, http.StatusBadRequest, "invalid_field", fieldErr.Error())
	case errors.As(err, &connErr):
		WriteError(w, r, http.StatusBadGateway, "backend_unreachable", connErr.Error())
	default:
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
