// Package authctx carries the authenticated principal through a request's
// context. The binding is request-scoped by construction — each request has
// its own context, so concurrent requests can never observe or overwrite each
// other's principal.
package authctx

import (
	"context"

	"github.com/skillsenselab/authd/auth"
)

// contextKey is an unexported type to prevent collisions with other packages.
type contextKey struct{}

var principalKey = contextKey{}

// Set binds the principal to the context. The request authenticator calls
// this exactly once per successfully authenticated request.
func Set(ctx context.Context, p *auth.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// Principal returns the bound principal, or false if the request is
// unauthenticated.
func Principal(ctx context.Context) (*auth.Principal, bool) {
	p, ok := ctx.Value(principalKey).(*auth.Principal)
	return p, ok && p != nil
}

// MustPrincipal returns the bound principal and panics if none is bound. Use
// only in handlers behind a policy that guarantees authentication.
func MustPrincipal(ctx context.Context) *auth.Principal {
	p, ok := Principal(ctx)
	if !ok {
		panic("authctx: no principal bound to context")
	}
	return p
}
