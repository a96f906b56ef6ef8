package handlers

import (
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

// serveRead is the shared pipeline behind the object and set read
// endpoints: resolve, estimate, presign, authorize, redirect. The
// presigned URL is computed before the decision comes back but only leaves
// the process on allow.
func serveRead(w http.ResponseWriter, r *http.Request, store s3.Client, est *audience.Estimator, gate *authz.Gate, bucket, set, object string) {
	sub := authn.FromContext(r.Context())
	addr := resource.Resolve(bucket, set, object)

	fields := []any{"bucket", bucket, "set", set, "object", object, "m", r.Method}
	if sub != nil {
		fields = append(fields, "sub", sub.Account)
	}

	action, err := resource.ActionForMethod(r.Method)
	if err != nil {
		respondError(w, r, err, fields...)
		return
	}

	aud, err := est.Estimate(bucket)
	if err != nil {
		respondError(w, r, err, fields...)
		return
	}
	fields = append(fields, "audience", aud)

	// Presigning is local; the URL must not be exposed before the gate
	// answers.
	location, err := store.PresignedURL(r.Context(), r.Method, bucket, addr.Key)
	if err != nil {
		respondError(w, r, err, fields...)
		return
	}

	if err := gate.Authorize(r.Context(), aud, sub, addr.AuthzPath, action); err != nil {
		respondError(w, r, err, fields...)
		return
	}

	slog.Info("read_allowed", append([]any{"trace", trace.From(r.Context())}, fields...)...)
	httpx.Redirect(w, location)
}
