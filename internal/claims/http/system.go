package http

import (
	"net/http"

	"github.com/pavemint/claimdesk/internal/claims/store"
	"github.com/pavemint/claimdesk/pkg/httpx"
)

type SystemHandler struct {
	Store store.Store
}

// HandleLivez reports process liveness.
func (h *SystemHandler) HandleLivez(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleReadyz reports readiness, which for this service means the claim
// store answers pings.
func (h *SystemHandler) HandleReadyz(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Ping(r.Context()); err != nil {
		httpx.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "store unavailable"})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
