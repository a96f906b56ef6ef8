package s3

import (
	"context"
	"fmt"
)

// SignedRequestSpec is a fully parameterized storage request. Owned by one
// request; consumed once by Sign, never retained.
type SignedRequestSpec struct {
	Method  string
	Bucket  string
	Key     string
	Headers map[string]string
}

// Client is the storage collaborator. Implementations must be safe for
// concurrent use by many in-flight requests.
type Client interface {
	// PresignedURL returns a time-limited URL for a read against an object.
	PresignedURL(ctx context.Context, method, bucket, key string) (string, error)
	// Sign converts a spec into a single authenticated URI. Fails with
	// *BuildError on specs the client cannot sign.
	Sign(ctx context.Context, spec SignedRequestSpec) (string, error)
}

// BuildError reports a spec the storage client refused to sign.
type BuildError struct {
	Method string
	Err    error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("signed request build (%s): %v", e.Method, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }
