package authz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stowgate/stowgate/internal/authn"
	"github.com/stowgate/stowgate/internal/resource"
)

// ErrDenied covers every non-allow outcome that is the caller's fault: the
// provider said no, the caller is anonymous, or the audience has no
// provider configured.
var ErrDenied = errors.New("authorization denied")

// ProviderError marks transport or provider failures. Never treated as an
// allow.
type ProviderError struct {
	Audience string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("authorization provider %q: %v", e.Audience, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Gate routes authorization checks to the provider governing an audience.
// The provider map is resolved once at startup and read-only afterwards.
type Gate struct {
	providers map[string]Authorizer
}

func NewGate(providers map[string]Authorizer) *Gate {
	return &Gate{providers: providers}
}

// Authorize asks the audience's provider whether sub may perform action on
// the resource path. Exactly one provider call per invocation, no retries.
func (g *Gate) Authorize(ctx context.Context, aud string, sub *authn.Subject, path []string, action resource.Action) error {
	if sub == nil {
		return fmt.Errorf("%w: anonymous", ErrDenied)
	}
	provider, ok := g.providers[aud]
	if !ok {
		return fmt.Errorf("%w: no provider for audience %q", ErrDenied, aud)
	}

	dec, err := provider.Check(ctx, Request{
		Subject:  "user:" + sub.Account,
		Relation: string(action),
		// Segment order is the provider's policy schema contract; the join
		// preserves it verbatim.
		Object: "bucket:" + strings.Join(path, "/"),
	})
	if err != nil {
		return &ProviderError{Audience: aud, Err: err}
	}
	if !dec.Allowed {
		return fmt.Errorf("%w: %s", ErrDenied, dec.Reason)
	}
	return nil
}
