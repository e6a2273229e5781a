package auth

import (
	"errors"
	"fmt"
	"strings"

	"warehouse/internal/core/domain/model/kernel"

	jwt "github.com/golang-jwt/jwt/v5"
)

var ErrUnauthorized = errors.New("unauthorized")

// Claims is the token payload: sub is the user UUID, permissions are
// optional and fall back to the role's default set when absent.
type Claims struct {
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

// TokenParser validates HS256 tokens signed with a shared secret.
type TokenParser struct {
	secret []byte
}

func NewTokenParser(secret string) (*TokenParser, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	return &TokenParser{secret: []byte(secret)}, nil
}

// Parse validates tokenStr and returns the caller. Every failure wraps
// ErrUnauthorized.
func (p *TokenParser) Parse(tokenStr string) (*Principal, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if !tok.Valid {
		return nil, fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}

	userID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid subject: %v", ErrUnauthorized, err)
	}
	if strings.TrimSpace(claims.Role) == "" {
		return nil, fmt.Errorf("%w: missing role", ErrUnauthorized)
	}

	role := strings.ToLower(strings.TrimSpace(claims.Role))
	permissions := DefaultPermissions(role)
	if claims.Permissions != nil {
		permissions = make([]Permission, 0, len(claims.Permissions))
		for _, perm := range claims.Permissions {
			permissions = append(permissions, Permission(perm))
		}
	}
	return NewPrincipal(userID, claims.Name, role, permissions), nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
