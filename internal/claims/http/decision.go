package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/pavemint/claimdesk/internal/claims/service"
	"github.com/pavemint/claimdesk/internal/claims/store"
	"github.com/pavemint/claimdesk/pkg/httpx"
	"github.com/pavemint/claimdesk/pkg/slogx"
)

type DecisionHandler struct {
	Workflow *service.WorkflowService
}

type decisionRequest struct {
	Comment string `json:"comment"`
}

func (h *DecisionHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Workflow.Approve)
}

func (h *DecisionHandler) HandleDeny(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Workflow.Deny)
}

func (h *DecisionHandler) decide(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, claimID, reviewerID int64, comment string) error,
) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	claimID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "claim id must be an integer")
		return
	}

	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}

	// The reviewer is whoever the session token says; it is never taken
	// from the request body.
	reviewerID := httpx.UserIDFromCtx(ctx)

	if err := op(ctx, claimID, reviewerID, req.Comment); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			httpx.WriteError(w, http.StatusNotFound, "not_found", "no such claim")
		case errors.Is(err, service.ErrInvalidTransition):
			httpx.WriteError(w, http.StatusConflict, "invalid_transition", "claim already decided")
		default:
			log.Error("decision failed", "claim_id", claimID, "err", err)
			httpx.WriteError(w, http.StatusServiceUnavailable, "store_unavailable", "claim store unreachable")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
