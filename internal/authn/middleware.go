package authn

import (
	"log/slog"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stowgate/stowgate/internal/httpx"
)

// Middleware verifies bearer JWTs and installs the resulting Subject in
// the request context. A missing or invalid token leaves the request
// anonymous; handlers decide whether anonymity is fatal.
func Middleware(secret []byte) func(http.Handler) http.Handler {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := httpx.ExtractBearerToken(r.Header.Get("Authorization"))
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			sub, err := subjectFromToken(parser, token, secret)
			if err != nil {
				slog.Debug("authn_token_rejected", "path", r.URL.Path, "err", err)
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSubject(r.Context(), sub)))
		})
	}
}

func subjectFromToken(parser *jwt.Parser, token string, secret []byte) (*Subject, error) {
	claims := jwt.RegisteredClaims{}
	_, err := parser.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, jwt.ErrTokenRequiredClaimMissing
	}
	sub := &Subject{Account: claims.Subject}
	if len(claims.Audience) > 0 {
		sub.Audience = claims.Audience[0]
	}
	return sub, nil
}
