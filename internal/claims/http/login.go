package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/pavemint/claimdesk/internal/claims/service"
	"github.com/pavemint/claimdesk/pkg/httpx"
	"github.com/pavemint/claimdesk/pkg/idx"
	"github.com/pavemint/claimdesk/pkg/jwtx"
	"github.com/pavemint/claimdesk/pkg/slogx"
)

type LoginHandler struct {
	AuthService *service.AuthService
	Signer      jwtx.Signer
	Issuer      string
	SessionTTL  time.Duration
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ServeHTTP authenticates a manager and mints a session token. Bad
// credentials are a 401 negative result; a store failure is a 503 so the
// caller can tell "wrong password" from "infra is down".
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}
	if req.Username == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "username and password are required")
		return
	}

	user, err := h.AuthService.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrBadCredentials) {
			httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials or not a manager account")
			return
		}
		log.Error("login aborted by store failure", "err", err)
		httpx.WriteError(w, http.StatusServiceUnavailable, "store_unavailable", "identity store unreachable")
		return
	}

	ttl := h.SessionTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	claims := jwtx.NewSessionClaims(
		strconv.FormatInt(user.ID, 10),
		idx.New().String(),
		user.Username,
		user.Role,
		h.Issuer,
		ttl,
		time.Now(),
	)

	token, err := h.Signer.Sign(claims)
	if err != nil {
		log.Error("failed to sign session token", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "could not mint session token")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(ttl.Seconds()),
	})
}
