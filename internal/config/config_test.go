package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
listen: ":9090"
cors:
  allow_origins: ["https://app.example.com"]
  max_age: 600
authn:
  jwt_secret: "sekrit"
audiences:
  - pattern: "media-*"
    audience: "media"
  - pattern: "*"
    audience: "default"
providers:
  media:
    type: openfga
    api_url: "http://fga.internal:8080"
    store_id: "store-1"
  default:
    type: mock
s3:
  endpoint: "https://storage.internal:9000"
  region: "eu-west-1"
  access_key: "AK"
  secret_key: "SK"
  path_style: true
  expiry: 30m
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Listen != ":9090" {
		t.Fatalf("Listen = %q", c.Listen)
	}
	if len(c.CORS.AllowOrigins) != 1 || c.CORS.AllowOrigins[0] != "https://app.example.com" {
		t.Fatalf("AllowOrigins = %v", c.CORS.AllowOrigins)
	}
	if c.CORS.MaxAge != 600 {
		t.Fatalf("MaxAge = %d", c.CORS.MaxAge)
	}
	if c.Authn.JWTSecret != "sekrit" {
		t.Fatalf("JWTSecret = %q", c.Authn.JWTSecret)
	}
	if len(c.Audiences) != 2 || c.Audiences[0].Pattern != "media-*" || c.Audiences[0].Audience != "media" {
		t.Fatalf("Audiences = %+v", c.Audiences)
	}
	p, ok := c.Providers["media"]
	if !ok || p.Type != "openfga" || p.APIURL != "http://fga.internal:8080" || p.StoreID != "store-1" {
		t.Fatalf("Providers[media] = %+v", p)
	}
	if c.S3.Region != "eu-west-1" || !c.S3.PathStyle || c.S3.Expiry != 30*time.Minute {
		t.Fatalf("S3 = %+v", c.S3)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Listen != ":8080" {
		t.Fatalf("Listen default = %q", c.Listen)
	}
	if c.CORS.MaxAge != 300 {
		t.Fatalf("MaxAge default = %d", c.CORS.MaxAge)
	}
	if c.S3.Expiry != 15*time.Minute {
		t.Fatalf("Expiry default = %v", c.S3.Expiry)
	}
}
