// Package authz maps request paths to access requirements and decides
// allow/deny against the principal bound to the request. Rejection happens
// here, not in the request authenticator — the authenticator only binds
// identity and leaves enforcement to the policy.
package authz

import (
	"strings"

	"github.com/skillsenselab/authd/auth"
	apperrors "github.com/skillsenselab/authd/errors"
	"github.com/skillsenselab/authd/user"
)

// Access is the requirement a matched path imposes.
type Access int

const (
	// Public paths bypass authentication entirely.
	Public Access = iota
	// Authenticated paths require any bound principal, role irrelevant.
	Authenticated
	// RequireUser paths require a principal with role USER.
	RequireUser
	// RequireAdmin paths require a principal with role ADMIN.
	RequireAdmin
)

// Rule binds a path prefix to an access requirement. A prefix matches the
// exact path and any path below it ("/api/v1/auth" matches
// "/api/v1/auth/signin" but not "/api/v1/authx").
type Rule struct {
	Prefix string
	Access Access
}

func (r Rule) matches(path string) bool {
	return path == r.Prefix || strings.HasPrefix(path, r.Prefix+"/")
}

// Policy is an ordered rule list evaluated first-match-wins. Paths matching
// no rule require any authenticated principal.
type Policy struct {
	rules []Rule
}

// NewPolicy creates a policy from ordered rules.
func NewPolicy(rules ...Rule) *Policy {
	return &Policy{rules: rules}
}

// Default returns the service's access table: the auth namespace is public,
// admin and user namespaces are role-gated, everything else needs a principal.
func Default() *Policy {
	return NewPolicy(
		Rule{Prefix: "/api/v1/auth", Access: Public},
		Rule{Prefix: "/api/v1/admin", Access: RequireAdmin},
		Rule{Prefix: "/api/v1/user", Access: RequireUser},
		Rule{Prefix: "/health", Access: Public},
	)
}

// Evaluate returns the access requirement for path.
func (p *Policy) Evaluate(path string) Access {
	for _, r := range p.rules {
		if r.matches(path) {
			return r.Access
		}
	}
	return Authenticated
}

// Check decides whether principal (nil when unauthenticated) satisfies the
// requirement. It returns nil on allow, or the AppError to respond with.
func Check(access Access, principal *auth.Principal) error {
	if access == Public {
		return nil
	}
	if principal == nil {
		return apperrors.Unauthorized("")
	}
	switch access {
	case RequireAdmin:
		if !principal.HasRole(user.RoleAdmin) {
			return apperrors.Forbidden("")
		}
	case RequireUser:
		if !principal.HasRole(user.RoleUser) {
			return apperrors.Forbidden("")
		}
	}
	return nil
}
