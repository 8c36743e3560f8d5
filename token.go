package sessionkit

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpired reports whether a stored access token is definitively past
// its exp claim, widened by skew. Unparseable tokens and tokens without exp
// return false: only the server can reject those, and bootstrap must not
// second-guess it.
func tokenExpired(raw string, now time.Time, skew time.Duration) bool {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Time.Before(now.Add(skew))
}
