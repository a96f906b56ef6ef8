package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stowgate/stowgate/internal/audience"
	"github.com/stowgate/stowgate/internal/authz"
	"github.com/stowgate/stowgate/internal/s3"
)

// ObjectHandler redirects authorized readers to a presigned URL for a
// bucket object.
type ObjectHandler struct {
	Store     s3.Client
	Estimator *audience.Estimator
	Gate      *authz.Gate
}

func NewObjectHandler(store s3.Client, est *audience.Estimator, gate *authz.Gate) *ObjectHandler {
	return &ObjectHandler{Store: store, Estimator: est, Gate: gate}
}

func (h *ObjectHandler) Read(w http.ResponseWriter, r *http.Request) {
	bucket := chi.URLParam(r, "bucket")
	object := chi.URLParam(r, "object")
	serveRead(w, r, h.Store, h.Estimator, h.Gate, bucket, "", object)
}
