// Package actor carries the authenticated caller through a request context.
package actor

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/fleetledger/internal/apperr"
)

type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

type Actor struct {
	Subject string
	Role    Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

type ctxKey struct{}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// FromContext returns the actor attached to ctx. Anonymous callers get the
// zero Actor.
func FromContext(ctx context.Context) Actor {
	a, _ := ctx.Value(ctxKey{}).(Actor)
	return a
}

// RequireAdmin fails with apperr.ErrPermission unless the caller is an admin.
func RequireAdmin(ctx context.Context, action string) error {
	if FromContext(ctx).IsAdmin() {
		return nil
	}

	return fmt.Errorf("%w: %s requires the %s role", apperr.ErrPermission, action, RoleAdmin)
}
