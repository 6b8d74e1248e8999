package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry reports the "exp" claim of token when it is a JWT. The
// signature is not verified: the console cannot, and the result is only
// shown to the user. Opaque tokens report ok=false.
func TokenExpiry(token string) (exp time.Time, ok bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	e, err := claims.GetExpirationTime()
	if err != nil || e == nil {
		return time.Time{}, false
	}
	return e.Time, true
}
