package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stowgate/stowgate/internal/audience"
	"github.com/stowgate/stowgate/internal/authz"
	"github.com/stowgate/stowgate/internal/s3"
)

// SetHandler serves objects that live inside a named set. The storage key
// is "<set>.<object>"; authorization is checked against the whole set, not
// the individual object.
type SetHandler struct {
	Store     s3.Client
	Estimator *audience.Estimator
	Gate      *authz.Gate
}

func NewSetHandler(store s3.Client, est *audience.Estimator, gate *authz.Gate) *SetHandler {
	return &SetHandler{Store: store, Estimator: est, Gate: gate}
}

func (h *SetHandler) Read(w http.ResponseWriter, r *http.Request) {
	bucket := chi.URLParam(r, "bucket")
	set := chi.URLParam(r, "set")
	object := chi.URLParam(r, "object")
	serveRead(w, r, h.Store, h.Estimator, h.Gate, bucket, set, object)
}
