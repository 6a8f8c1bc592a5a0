package controllers

import (
	"encoding/json"
	"net/http"
	"time"
)

// EditorConfig is the editor-facing configuration advertised on /api/config.
type EditorConfig struct {
	AutoSaveDelayMS int64 `json:"autosave_delay_ms"`
}

// EditorConfigHandler serves GET /api/config so clients can pick up the
// server's auto-save debounce delay instead of hard-coding their own.
func EditorConfigHandler(autoSaveDelay time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(EditorConfig{AutoSaveDelayMS: autoSaveDelay.Milliseconds()})
	}
}
