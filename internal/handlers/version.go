package handlers

import (
	"net/http"

	"github.com/stowgate/stowgate/internal/httpx"
	"github.com/stowgate/stowgate/internal/version"
)

func Version(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, version.Get())
}

// Healthz is the liveness probe: always 200, empty body, no dependency on
// storage or authorization being reachable.
func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
