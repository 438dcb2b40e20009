package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	adapthttp "weighttracker/internal/adapter/http"
	"weighttracker/internal/adapter/postgres"
	"weighttracker/internal/app"
	"weighttracker/internal/config"
	"weighttracker/internal/logging"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logging.New(cfg.Logging)

	db, err := postgres.Open(cfg.Database.URL)
	if err != nil {
		log.Error("db open", "err", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	if err := db.SeedPeople(ctx, cfg.SeedPeople); err != nil {
		log.Error("seed people", "err", err)
		os.Exit(1)
	}

	chartsSvc := app.NewChartsService(db, db, cfg.ReadCacheTTL, log)
	ingestSvc := app.NewIngestService(db, db, chartsSvc, log)
	authSvc := app.NewAuthService(db, db)

	oidcCfg, err := buildOIDC(ctx, cfg.Auth)
	if err != nil {
		log.Error("oidc setup", "err", err)
		os.Exit(1)
	}

	srv := adapthttp.New(ingestSvc, chartsSvc, authSvc, oidcCfg, cfg.HTTP.WebDir, log)
	if cfg.Auth.Disabled {
		log.Warn("auth disabled")
		srv = srv.WithoutAuth()
	}

	log.Info("listening", "addr", cfg.HTTP.Addr)
	if err := http.ListenAndServe(cfg.HTTP.Addr, srv.Handler()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("serve", "err", err)
		os.Exit(1)
	}
}

func buildOIDC(ctx context.Context, cfg config.AuthConfig) (adapthttp.OIDCConfig, error) {
	if cfg.OIDCIssuer == "" {
		return adapthttp.OIDCConfig{}, nil
	}
	provider, err := oidc.NewProvider(ctx, cfg.OIDCIssuer)
	if err != nil {
		return adapthttp.OIDCConfig{}, err
	}
	return adapthttp.OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: &oauth2.Config{
			ClientID:     cfg.OIDCClientID,
			ClientSecret: cfg.OIDCClientSecret,
			RedirectURL:  cfg.OIDCRedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		},
	}, nil
}
