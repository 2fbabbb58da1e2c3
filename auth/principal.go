package auth

import "github.com/skillsenselab/authd/user"

// Principal is the authenticated identity bound to a single request. It is
// created by the request authenticator (or directly by sign-in), lives in the
// request context, and is never shared across requests.
type Principal struct {
	Email     string
	FirstName string
	LastName  string
	Role      user.Role
}

// Name returns the display name.
func (p *Principal) Name() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// HasRole reports whether the principal carries the given role.
func (p *Principal) HasRole(role user.Role) bool {
	return p != nil && p.Role == role
}

// PrincipalOf builds the principal view of a stored account.
func PrincipalOf(acct *user.Account) *Principal {
	return &Principal{
		Email:     acct.Email,
		FirstName: acct.FirstName,
		LastName:  acct.LastName,
		Role:      acct.Role,
	}
}
