// Package auth turns bearer tokens into principals carrying permissions.
package auth

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
)

// Principal represents the authenticated caller.
type Principal struct {
	UserID      kernel.UUID
	Name        string
	Role        string
	permissions map[Permission]struct{}
}

func NewPrincipal(userID kernel.UUID, name, role string, permissions []Permission) *Principal {
	set := make(map[Permission]struct{}, len(permissions))
	for _, p := range permissions {
		set[p] = struct{}{}
	}
	return &Principal{UserID: userID, Name: name, Role: role, permissions: set}
}

// Has reports whether the principal was granted permission.
func (p *Principal) Has(permission Permission) bool {
	if p == nil {
		return false
	}
	_, ok := p.permissions[permission]
	return ok
}

type principalKey struct{}

// WithPrincipal stores the principal in context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext retrieves the principal from context (if any).
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}
