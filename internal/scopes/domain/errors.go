package domain

import (
	"fmt"
	"strings"

	"github.com/allisson/hubgate/internal/errors"
)

// Scope evaluation errors.
var (
	// ErrScopeNotHeld indicates the principal does not hold the required scope
	// in any form. It is a plain per-scope denial; the enforcement layer
	// aggregates it across the required-scope disjunction.
	ErrScopeNotHeld = errors.Wrap(errors.ErrForbidden, "scope not held")

	// ErrResourceNotFound indicates a per-resource check exhausted every filter
	// rule without a match, or the target of a group expansion could not be
	// resolved. It is deliberately indistinguishable from the resource not
	// existing so an unauthorized caller cannot probe for resource names.
	ErrResourceNotFound = errors.Wrap(errors.ErrNotFound, "no access to resources or resources not found")
)

// DeniedError is returned by the enforcement layer when no required scope
// grants access at all. Unlike ErrResourceNotFound it is an explicit
// insufficient-privilege failure and names the scopes that would have
// sufficed.
type DeniedError struct {
	// RequiredScopes lists the scope names any one of which would have
	// authorized the call.
	RequiredScopes []string
}

// Error implements the error interface.
func (e *DeniedError) Error() string {
	return fmt.Sprintf(
		"action is not authorized with current scopes; requires any of [%s]",
		strings.Join(e.RequiredScopes, ", "),
	)
}

// Unwrap makes DeniedError match errors.ErrForbidden.
func (e *DeniedError) Unwrap() error {
	return errors.ErrForbidden
}
