package audience

import (
	"fmt"
	"path"
)

// ErrNoAudience is returned when no configured rule matches a bucket.
var ErrNoAudience = fmt.Errorf("no audience rule matches bucket")

// Rule maps a bucket-name glob to a trust-domain identifier. Patterns use
// path.Match syntax ("media-*", "?", "[ab]*").
type Rule struct {
	Pattern  string
	Audience string
}

// Estimator resolves the trust domain a bucket belongs to. Rules are
// evaluated in order, first match wins. The rule set is read-only after
// construction; Estimate is safe for concurrent use.
type Estimator struct {
	rules []Rule
}

// NewEstimator validates every pattern up front so a malformed rule fails
// at startup rather than per request.
func NewEstimator(rules []Rule) (*Estimator, error) {
	for _, r := range rules {
		if r.Audience == "" {
			return nil, fmt.Errorf("audience rule %q: empty audience", r.Pattern)
		}
		if _, err := path.Match(r.Pattern, "probe"); err != nil {
			return nil, fmt.Errorf("audience rule %q: %w", r.Pattern, err)
		}
	}
	return &Estimator{rules: rules}, nil
}

// Estimate returns the audience for bucket, or ErrNoAudience when no rule
// matches. Deterministic: same bucket, same rule set, same answer.
func (e *Estimator) Estimate(bucket string) (string, error) {
	for _, r := range e.rules {
		// Patterns were validated in NewEstimator; Match cannot fail here.
		if ok, _ := path.Match(r.Pattern, bucket); ok {
			return r.Audience, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNoAudience, bucket)
}
