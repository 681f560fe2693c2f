package httpapi

import "net/http"

type HealthHandler struct {
	Connected func() bool
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	connected := false
	if h.Connected != nil {
		connected = h.Connected()
	}
	writeJSON(w, map[string]any{"ok": true, "connected": connected})
}
