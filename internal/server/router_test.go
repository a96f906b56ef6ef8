package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stowgate/stowgate/internal/audience"
	"github.com/stowgate/stowgate/internal/authz"
	"github.com/stowgate/stowgate/internal/s3"
)

type staticStore struct{}

func (staticStore) PresignedURL(ctx context.Context, method, bucket, key string) (string, error) {
	return "https://storage.invalid/" + bucket + "/" + key, nil
}

func (staticStore) Sign(ctx context.Context, spec s3.SignedRequestSpec) (string, error) {
	return "https://storage.invalid/" + spec.Bucket + "/" + spec.Key, nil
}

var testSecret = []byte("router-test-secret")

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	est, err := audience.NewEstimator([]audience.Rule{{Pattern: "*", Audience: "default"}})
	if err != nil {
		t.Fatalf("NewEstimator: %v", err)
	}
	gate := authz.NewGate(map[string]authz.Authorizer{
		"default": &authz.Mock{AlwaysAllow: true},
	})
	return BuildRouter(Deps{
		Store:     staticStore{},
		Estimator: est,
		Gate:      gate,
	}, Options{
		AllowOrigins: []string{"*"},
		MaxAge:       300,
		JWTSecret:    testSecret,
	})
}

func TestHealthz(t *testing.T) {
	h := testRouter(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("body = %q, want empty", rec.Body.String())
	}
}

func TestVersion(t *testing.T) {
	h := testRouter(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/version", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q", ct)
	}
}

func TestObjectRead_EndToEnd(t *testing.T) {
	h := testRouter(t)

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "acct-42",
		Audience:  jwt.ClaimStrings{"default"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/v1/buckets/media/objects/cat.png", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "https://storage.invalid/media/cat.png" {
		t.Fatalf("Location = %q", loc)
	}
}

func TestObjectRead_AnonymousForbidden(t *testing.T) {
	h := testRouter(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/buckets/media/objects/cat.png", nil))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := testRouter(t)
	req := httptest.NewRequest("OPTIONS", "/api/v1/sign", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Fatal("missing Access-Control-Allow-Methods on preflight")
	}
}
