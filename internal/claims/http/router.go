// Package http exposes the approval workflow and reporting engine as a JSON
// API for managers. Handlers stay thin; every decision lives in the service
// layer.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/pavemint/claimdesk/internal/claims/domain"
	"github.com/pavemint/claimdesk/internal/claims/service"
	"github.com/pavemint/claimdesk/internal/claims/store"
	"github.com/pavemint/claimdesk/pkg/httpx"
	"github.com/pavemint/claimdesk/pkg/jwtx"
	"github.com/pavemint/claimdesk/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer     jwtx.Signer
	verifier   jwtx.Verifier
	issuer     string
	sessionTTL time.Duration
	logger     *slog.Logger

	store store.Store

	AuthService     *service.AuthService
	WorkflowService *service.WorkflowService
	ReportService   *service.ReportService
}

func NewRouter(
	signer jwtx.Signer,
	verifier jwtx.Verifier,
	issuer string,
	sessionTTL time.Duration,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:        http.NewServeMux(),
		signer:     signer,
		verifier:   verifier,
		issuer:     issuer,
		sessionTTL: sessionTTL,
		store:      st,
		logger:     logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) ApplyRoutes() {
	authn := httpx.AuthnMiddleware(r.verifier, domain.RoleManager)

	login := &LoginHandler{
		AuthService: r.AuthService,
		Signer:      r.signer,
		Issuer:      r.issuer,
		SessionTTL:  r.sessionTTL,
	}
	r.Mux.Handle("POST /v1/login",
		httpx.Chain(login, httpx.RateLimitByIP(httpx.StrictLimit)))

	claims := &ClaimsHandler{Reports: r.ReportService}
	r.Mux.Handle("GET /v1/claims/pending",
		httpx.Chain(http.HandlerFunc(claims.HandlePending), authn))
	r.Mux.Handle("GET /v1/claims/{id}",
		httpx.Chain(http.HandlerFunc(claims.HandleByID), authn))

	decision := &DecisionHandler{Workflow: r.WorkflowService}
	r.Mux.Handle("POST /v1/claims/{id}/approve",
		httpx.Chain(http.HandlerFunc(decision.HandleApprove),
			authn, httpx.RateLimitByIP(httpx.ModerateLimit)))
	r.Mux.Handle("POST /v1/claims/{id}/deny",
		httpx.Chain(http.HandlerFunc(decision.HandleDeny),
			authn, httpx.RateLimitByIP(httpx.ModerateLimit)))

	reports := &ReportsHandler{Reports: r.ReportService}
	r.Mux.Handle("GET /v1/reports/employee/{username}",
		httpx.Chain(http.HandlerFunc(reports.HandleByEmployee),
			authn, httpx.RateLimitByIP(httpx.LenientLimit)))
	r.Mux.Handle("GET /v1/reports/status/{status}",
		httpx.Chain(http.HandlerFunc(reports.HandleByStatus),
			authn, httpx.RateLimitByIP(httpx.LenientLimit)))
	r.Mux.Handle("GET /v1/reports/range",
		httpx.Chain(http.HandlerFunc(reports.HandleByDateRange),
			authn, httpx.RateLimitByIP(httpx.LenientLimit)))

	system := &SystemHandler{Store: r.store}
	r.Mux.HandleFunc("GET /livez", system.HandleLivez)
	r.Mux.HandleFunc("GET /readyz", system.HandleReadyz)
}
