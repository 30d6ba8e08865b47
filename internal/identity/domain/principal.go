// Package domain defines the identity records the authorization engine
// evaluates: users, groups, services, API tokens and the roles that carry
// their scope grants.
package domain

import (
	"github.com/allisson/hubgate/internal/errors"
)

// PrincipalKind discriminates the entity whose permissions are evaluated.
type PrincipalKind string

const (
	// PrincipalUser is a human user.
	PrincipalUser PrincipalKind = "user"

	// PrincipalService is a machine service.
	PrincipalService PrincipalKind = "service"

	// PrincipalToken is a delegated API token acting on behalf of its owner.
	PrincipalToken PrincipalKind = "token"
)

// ParsePrincipalKind converts a textual kind into a PrincipalKind. Only user
// and service are accepted; token principals are created by authentication,
// never named directly.
func ParsePrincipalKind(s string) (PrincipalKind, error) {
	switch PrincipalKind(s) {
	case PrincipalUser:
		return PrincipalUser, nil
	case PrincipalService:
		return PrincipalService, nil
	default:
		return "", errors.Wrap(errors.ErrInvalidInput, "principal kind must be user or service")
	}
}

// Principal identifies the entity a request acts as. A token principal carries
// a reference to its owner (a user or service); the reference is only used to
// cap the token's effective scopes to what the owner independently holds.
type Principal struct {
	Kind PrincipalKind
	Name string

	// Owner is set for token principals only.
	Owner *Principal
}

// UserPrincipal returns a principal for the named user.
func UserPrincipal(name string) Principal {
	return Principal{Kind: PrincipalUser, Name: name}
}

// ServicePrincipal returns a principal for the named service.
func ServicePrincipal(name string) Principal {
	return Principal{Kind: PrincipalService, Name: name}
}

// TokenPrincipal returns a principal for a token identified by name (its ID)
// owned by the given user or service.
func TokenPrincipal(name string, owner Principal) Principal {
	return Principal{Kind: PrincipalToken, Name: name, Owner: &owner}
}

// IsToken reports whether the principal is a delegated token with a resolvable
// owner.
func (p Principal) IsToken() bool {
	return p.Kind == PrincipalToken && p.Owner != nil
}
