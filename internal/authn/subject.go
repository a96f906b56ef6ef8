package authn

import "context"

// Subject is the authenticated caller. Constructed by the middleware from
// a verified credential, read-only afterwards, one per request.
type Subject struct {
	// Account is the caller's account identifier (JWT "sub").
	Account string
	// Audience is the trust domain claimed by the credential (JWT "aud").
	Audience string
}

type ctxKey int

const subjectKey ctxKey = 1

// WithSubject returns a context carrying sub.
func WithSubject(ctx context.Context, sub *Subject) context.Context {
	return context.WithValue(ctx, subjectKey, sub)
}

// FromContext returns the request subject, or nil for anonymous requests.
func FromContext(ctx context.Context) *Subject {
	if v := ctx.Value(subjectKey); v != nil {
		if s, ok := v.(*Subject); ok {
			return s
		}
	}
	return nil
}
