package http

import (
	"net/http"
	"time"

	"github.com/pavemint/claimdesk/internal/claims/domain"
	"github.com/pavemint/claimdesk/internal/claims/service"
	"github.com/pavemint/claimdesk/pkg/httpx"
)

type ReportsHandler struct {
	Reports *service.ReportService
}

type reportResponse struct {
	Claims []claimJSON `json:"claims"`
	Count  int         `json:"count"`
	Total  string      `json:"total"`
}

func (h *ReportsHandler) HandleByEmployee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username := r.PathValue("username")
	if username == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "username is required")
		return
	}

	claims, err := h.Reports.ByEmployee(ctx, username)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	h.write(w, claims)
}

func (h *ReportsHandler) HandleByStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status, err := domain.ParseStatus(r.PathValue("status"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "status must be pending, approved or denied")
		return
	}

	claims, err := h.Reports.ByStatus(ctx, status)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	h.write(w, claims)
}

func (h *ReportsHandler) HandleByDateRange(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	start, err := time.Parse(domain.DateLayout, r.URL.Query().Get("start"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "start must be a YYYY-MM-DD date")
		return
	}
	end, err := time.Parse(domain.DateLayout, r.URL.Query().Get("end"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "end must be a YYYY-MM-DD date")
		return
	}
	if end.Before(start) {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "end must not precede start")
		return
	}

	claims, err := h.Reports.ByDateRange(ctx, start, end)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	h.write(w, claims)
}

func (h *ReportsHandler) write(w http.ResponseWriter, claims []domain.ClaimDetail) {
	httpx.WriteJSON(w, http.StatusOK, reportResponse{
		Claims: toClaimList(claims),
		Count:  len(claims),
		Total:  h.Reports.Total(claims).String(),
	})
}
