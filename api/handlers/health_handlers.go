package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"nis2-copilot/core/drafts"
	"nis2-copilot/core/utils"
)

const selfTestTimeout = 15 * time.Second

type HealthHandler struct {
	ai     drafts.Completer
	logger *utils.Logger
}

func NewHealthHandler(ai drafts.Completer, logger *utils.Logger) *HealthHandler {
	return &HealthHandler{ai: ai, logger: logger}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":   true,
		"time": time.Now().UTC().Format(time.RFC3339),
	})
}

// AISelfTest runs a minimal round trip against the configured model. Failure
// is reported, not hidden: the intake endpoint stays usable either way via the
// deterministic fallback.
func (h *HealthHandler) AISelfTest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), selfTestTimeout)
	defer cancel()

	text, err := h.ai.Complete(ctx,
		`Respond with a single JSON object {"pong": true}. Output ONLY the JSON.`,
		`{"ping": true}`)
	if err != nil {
		h.logger.Errorf("ai selftest: %v", err)
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":    false,
			"error": err.Error(),
		})
		return
	}
	var probe struct {
		Pong bool `json:"pong"`
	}
	if err := json.Unmarshal([]byte(text), &probe); err != nil || !probe.Pong {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":    false,
			"error": "model returned unexpected payload",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
