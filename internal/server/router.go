package server

import (
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/stowgate/stowgate/internal/audience"
	"github.com/stowgate/stowgate/internal/authn"
	"github.com/stowgate/stowgate/internal/authz"
	"github.com/stowgate/stowgate/internal/handlers"
	mw2 "github.com/stowgate/stowgate/internal/mw"
	"github.com/stowgate/stowgate/internal/s3"
)

type Options struct {
	// AllowOrigins and MaxAge feed the CORS layer; both come from config.
	AllowOrigins []string
	MaxAge       int
	// JWTSecret verifies bearer tokens on the API surface.
	JWTSecret []byte
}

type Deps struct {
	Store     s3.Client
	Estimator *audience.Estimator
	Gate      *authz.Gate
}

func BuildRouter(d Deps, opts Options) http.Handler {
	r := chi.NewRouter()
	if os.Getenv("STOWGATE_ENV") == "local" || os.Getenv("STOWGATE_ENV") == "dev" {
		r.Use(mw2.NoStore)
	}

	// baseline
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowOrigins,
		// GET for the read surface, POST only because signing is offered.
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{
			"Authorization",
			"Content-Type",
			"Cache-Control",
			"If-Match",
			"If-Modified-Since",
			"If-None-Match",
			"If-Unmodified-Since",
			"Range",
		},
		MaxAge: opts.MaxAge,
	}))

	// tracing + logger
	r.Use(mw2.Trace())
	r.Use(mw2.Logger(mw2.LogOpts{
		SkipPaths: []string{"/healthz", "/version"},
	}))

	r.Get("/healthz", handlers.Healthz)
	r.Get("/version", handlers.Version)

	object := handlers.NewObjectHandler(d.Store, d.Estimator, d.Gate)
	set := handlers.NewSetHandler(d.Store, d.Estimator, d.Gate)
	sign := handlers.NewSignHandler(d.Store, d.Estimator, d.Gate)

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(authn.Middleware(opts.JWTSecret))
		api.Get("/buckets/{bucket}/objects/{object}", object.Read)
		api.Get("/buckets/{bucket}/sets/{set}/objects/{object}", set.Read)
		api.Post("/sign", sign.ServeHTTP)
	})

	return r
}
