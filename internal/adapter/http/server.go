// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"log/slog"
	"net/http"

	"weighttracker/internal/app"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// OIDCConfig carries the optional SSO configuration. Enabled is false when
// no issuer is configured; the password login keeps working either way.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config *oauth2.Config
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	ingest  *app.IngestService
	charts  *app.ChartsService
	authSvc *app.AuthService

	oidcConfig  OIDCConfig
	webDir      string
	disableAuth bool
	log         *slog.Logger
}

// New creates a Server wired to the given application services.
func New(ingest *app.IngestService, charts *app.ChartsService, auth *app.AuthService, oidcCfg OIDCConfig, webDir string, log *slog.Logger) *Server {
	return &Server{
		ingest:     ingest,
		charts:     charts,
		authSvc:    auth,
		oidcConfig: oidcCfg,
		webDir:     webDir,
		log:        log,
	}
}

// WithoutAuth disables the auth middleware. For tests only.
func (s *Server) WithoutAuth() *Server {
	s.disableAuth = true
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	api.HandleFunc("/config", s.handleConfig)
	api.HandleFunc("/auth/login", s.handleLogin)
	api.HandleFunc("/auth/logout", s.handleLogout)
	api.HandleFunc("/auth/setup", s.handleSetupUser)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)

	protected := http.NewServeMux()
	protected.HandleFunc("/me", s.handleMe)
	protected.HandleFunc("/people", s.handlePeople)
	protected.HandleFunc("/observations", s.handleObservations)
	protected.HandleFunc("/charts/weights", s.handleChartsWeights)
	api.Handle("/", s.authMiddleware(protected))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/", spaFromDisk(s.webDir))

	return s.loggingMiddleware(withNoCache(root))
}
