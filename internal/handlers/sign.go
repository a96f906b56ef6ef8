package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/stowgate/stowgate/internal/audience"
	"github.com/stowgate/stowgate/internal/authn"
	"github.com/stowgate/stowgate/internal/authz"
	"github.com/stowgate/stowgate/internal/httpx"
	"github.com/stowgate/stowgate/internal/resource"
	"github.com/stowgate/stowgate/internal/s3"
	"github.com/stowgate/stowgate/internal/trace"
)

type SignPayload struct {
	Bucket  string            `json:"bucket"`
	Set     string            `json:"set,omitempty"`
	Object  string            `json:"object"`
	Method  string            `json:"method"`
	Headers map[string]string `json:"headers,omitempty"`
}

type SignResponse struct {
	URI string `json:"uri"`
}

// SignHandler turns a (bucket, set, object, method, headers) request into
// a signed storage URI, gated on the caller's authorization.
type SignHandler struct {
	Store     s3.Client
	Estimator *audience.Estimator
	Gate      *authz.Gate
}

func NewSignHandler(store s3.Client, est *audience.Estimator, gate *authz.Gate) *SignHandler {
	return &SignHandler{Store: store, Estimator: est, Gate: gate}
}

func (h *SignHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Anonymous callers are rejected before anything else happens; the
	// storage client is never consulted for them.
	sub := authn.FromContext(r.Context())
	if sub == nil {
		respondError(w, r, fmt.Errorf("%w: anonymous", authz.ErrDenied), "m", r.Method)
		return
	}

	var body SignPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if body.Bucket == "" || body.Object == "" || body.Method == "" {
		httpx.WriteError(w, http.StatusBadRequest, "bucket, object and method are required")
		return
	}

	fields := []any{"bucket", body.Bucket, "set", body.Set, "object", body.Object,
		"m", body.Method, "sub", sub.Account}

	addr := resource.Resolve(body.Bucket, body.Set, body.Object)
	action, err := resource.ActionForMethod(body.Method)
	if err != nil {
		// Short-circuits before any authorization or storage call.
		respondError(w, r, err, fields...)
		return
	}

	aud, err := h.Estimator.Estimate(body.Bucket)
	if err != nil {
		respondError(w, r, err, fields...)
		return
	}
	fields = append(fields, "audience", aud)

	// The URI is materialized before the decision is known. Wasted work on
	// denied paths, but the ordering is deliberate; the URI never leaves
	// the process unless the gate allows.
	builder := s3.NewSignedRequestBuilder().
		Method(body.Method).
		Bucket(body.Bucket).
		Object(addr.Key)
	for name, value := range body.Headers {
		builder = builder.AddHeader(name, value)
	}
	uri, err := builder.Build(r.Context(), h.Store)
	if err != nil {
		respondError(w, r, err, fields...)
		return
	}

	if err := h.Gate.Authorize(r.Context(), aud, sub, addr.AuthzPath, action); err != nil {
		// The built URI is discarded here.
		respondError(w, r, err, fields...)
		return
	}

	slog.Info("sign_allowed", append([]any{"trace", trace.From(r.Context())}, fields...)...)
	httpx.WriteJSON(w, http.StatusOK, SignResponse{URI: uri})
}
