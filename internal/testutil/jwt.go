package testutil

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// GenerateJWTHS256 returns a signed token for userID. Permissions are only
// put in the token when given; otherwise the role defaults apply.
func GenerateJWTHS256(t *testing.T, secret, userID, name, role string, permissions ...string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  userID,
		"name": name,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	if len(permissions) > 0 {
		claims["permissions"] = permissions
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}
