package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/stowgate/stowgate/internal/audience"
	"github.com/stowgate/stowgate/internal/authz"
	"github.com/stowgate/stowgate/internal/config"
	"github.com/stowgate/stowgate/internal/s3"
	"github.com/stowgate/stowgate/internal/server"
)

func cmdServe() *cobra.Command {
	var listen string

	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if listen != "" {
				cfg.Listen = listen
			}
			return serve(cmd.Context(), cfg)
		},
	}
	c.Flags().StringVar(&listen, "listen", "", "listen address, overrides config")
	return c
}

func serve(ctx context.Context, cfg *config.Config) error {
	est, err := buildEstimator(cfg)
	if err != nil {
		return err
	}
	gate, err := buildGate(cfg)
	if err != nil {
		return err
	}
	store, err := s3.NewAWSClient(ctx, s3.Config{
		Endpoint:     cfg.S3.Endpoint,
		Region:       cfg.S3.Region,
		AccessKey:    cfg.S3.AccessKey,
		SecretKey:    cfg.S3.SecretKey,
		UsePathStyle: cfg.S3.PathStyle,
		Expiry:       cfg.S3.Expiry,
	})
	if err != nil {
		return err
	}

	h := server.BuildRouter(server.Deps{
		Store:     store,
		Estimator: est,
		Gate:      gate,
	}, server.Options{
		AllowOrigins: cfg.CORS.AllowOrigins,
		MaxAge:       cfg.CORS.MaxAge,
		JWTSecret:    []byte(cfg.Authn.JWTSecret),
	})

	srv := &http.Server{
		Addr:    cfg.Listen,
		Handler: h,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	slog.Info("listening", "addr", cfg.Listen)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func buildEstimator(cfg *config.Config) (*audience.Estimator, error) {
	rules := make([]audience.Rule, 0, len(cfg.Audiences))
	for _, r := range cfg.Audiences {
		rules = append(rules, audience.Rule{Pattern: r.Pattern, Audience: r.Audience})
	}
	return audience.NewEstimator(rules)
}

// buildGate resolves the audience → provider map once; it is read-only for
// the process lifetime.
func buildGate(cfg *config.Config) (*authz.Gate, error) {
	providers := make(map[string]authz.Authorizer, len(cfg.Providers))
	for aud, p := range cfg.Providers {
		switch p.Type {
		case "openfga":
			client, err := authz.NewOpenFGA(authz.OpenFGAConfig{
				APIURL:   p.APIURL,
				StoreID:  p.StoreID,
				APIToken: p.APIToken,
				ModelID:  p.ModelID,
			})
			if err != nil {
				return nil, fmt.Errorf("provider %q: %w", aud, err)
			}
			providers[aud] = client
		case "mock":
			providers[aud] = &authz.Mock{AlwaysAllow: true}
		default:
			return nil, errors.New("provider " + aud + ": unknown type " + p.Type)
		}
	}
	return authz.NewGate(providers), nil
}
