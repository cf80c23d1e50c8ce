package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobintake/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// CheckToken refuses a JWT whose exp claim lies before now. The signature
// is not verified; that is the server's job. Tokens that are not JWTs are
// passed through untouched.
func CheckToken(token string, now time.Time) error {
	token = strings.TrimSpace(token)
	if token == "" || strings.Count(token, ".") != 2 {
		return nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if exp != nil && !exp.After(now) {
		return common.ErrTokenExpired
	}
	return nil
}
