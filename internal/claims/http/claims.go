package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/pavemint/claimdesk/internal/claims/domain"
	"github.com/pavemint/claimdesk/internal/claims/service"
	"github.com/pavemint/claimdesk/internal/claims/store"
	"github.com/pavemint/claimdesk/pkg/httpx"
	"github.com/pavemint/claimdesk/pkg/slogx"
)

type ClaimsHandler struct {
	Reports *service.ReportService
}

// claimJSON is the wire shape for a joined claim. Amount is a decimal
// string, never binary floating point.
type claimJSON struct {
	ID          int64  `json:"id"`
	Employee    string `json:"employee"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Status      string `json:"status"`
}

func toClaimJSON(d domain.ClaimDetail) claimJSON {
	return claimJSON{
		ID:          d.ID,
		Employee:    d.EmployeeName,
		Amount:      d.Amount.String(),
		Description: d.Description,
		Date:        d.IncurredOn.Format(domain.DateLayout),
		Status:      string(d.Status),
	}
}

func toClaimList(details []domain.ClaimDetail) []claimJSON {
	out := make([]claimJSON, 0, len(details))
	for _, d := range details {
		out = append(out, toClaimJSON(d))
	}
	return out
}

func (h *ClaimsHandler) HandlePending(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pending, err := h.Reports.Pending(ctx)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"claims": toClaimList(pending),
		"count":  len(pending),
	})
}

func (h *ClaimsHandler) HandleByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "claim id must be an integer")
		return
	}

	detail, err := h.Reports.ClaimByID(ctx, id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toClaimJSON(detail))
}

// writeStoreError maps the store error taxonomy onto status codes: absent
// entities are 404 (actionable: wrong id), backend failures are 503 (infra).
func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "no such claim")
		return
	}
	slogx.FromContext(r.Context()).Error("store failure", "err", err)
	httpx.WriteError(w, http.StatusServiceUnavailable, "store_unavailable", "claim store unreachable")
}
