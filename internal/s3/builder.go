package s3

import "context"

// SignedRequestBuilder accumulates a signed-request spec. It performs no
// authorization of its own; gating the resulting URI is the caller's job.
type SignedRequestBuilder struct {
	spec SignedRequestSpec
}

func NewSignedRequestBuilder() *SignedRequestBuilder {
	return &SignedRequestBuilder{spec: SignedRequestSpec{Headers: map[string]string{}}}
}

func (b *SignedRequestBuilder) Method(m string) *SignedRequestBuilder {
	b.spec.Method = m
	return b
}

func (b *SignedRequestBuilder) Bucket(bucket string) *SignedRequestBuilder {
	b.spec.Bucket = bucket
	return b
}

func (b *SignedRequestBuilder) Object(key string) *SignedRequestBuilder {
	b.spec.Key = key
	return b
}

func (b *SignedRequestBuilder) AddHeader(name, value string) *SignedRequestBuilder {
	b.spec.Headers[name] = value
	return b
}

// Build materializes the signed URI through the storage client.
func (b *SignedRequestBuilder) Build(ctx context.Context, c Client) (string, error) {
	return c.Sign(ctx, b.spec)
}
