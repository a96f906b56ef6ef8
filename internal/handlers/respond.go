package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/stowgate/stowgate/internal/audience"
	"github.com/stowgate/stowgate/internal/authz"
	"github.com/stowgate/stowgate/internal/httpx"
	"github.com/stowgate/stowgate/internal/resource"
	"github.com/stowgate/stowgate/internal/s3"
	"github.com/stowgate/stowgate/internal/trace"
)

// respondError flattens the error taxonomy into a client status and an
// audit log line. Denials, estimation failures and provider errors all end
// the request, but each keeps a distinct log event so access reviews can
// tell them apart.
func respondError(w http.ResponseWriter, r *http.Request, err error, fields ...any) {
	fields = append([]any{"trace", trace.From(r.Context())}, fields...)
	fields = append(fields, "err", err)

	var provErr *authz.ProviderError
	var buildErr *s3.BuildError
	switch {
	case errors.Is(err, resource.ErrUnsupportedMethod):
		slog.Warn("unsupported_method", fields...)
		httpx.WriteError(w, http.StatusBadRequest, "unsupported method")
	case errors.Is(err, audience.ErrNoAudience):
		slog.Warn("audience_estimation_failed", fields...)
		httpx.WriteError(w, http.StatusForbidden, "forbidden")
	case errors.As(err, &provErr):
		slog.Error("authz_provider_error", fields...)
		httpx.WriteError(w, http.StatusBadGateway, "authorization unavailable")
	case errors.Is(err, authz.ErrDenied):
		slog.Warn("authz_denied", fields...)
		httpx.WriteError(w, http.StatusForbidden, "forbidden")
	case errors.As(err, &buildErr):
		slog.Warn("signed_request_rejected", fields...)
		httpx.WriteError(w, http.StatusBadRequest, "invalid signing request")
	default:
		slog.Error("request_failed", fields...)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
