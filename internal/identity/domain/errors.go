package domain

import (
	"github.com/allisson/hubgate/internal/errors"
)

// Identity lookup and authentication errors.
var (
	// ErrUserNotFound indicates a user with the specified name was not found.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrGroupNotFound indicates a group with the specified name was not found.
	ErrGroupNotFound = errors.Wrap(errors.ErrNotFound, "group not found")

	// ErrServiceNotFound indicates a service with the specified name was not found.
	ErrServiceNotFound = errors.Wrap(errors.ErrNotFound, "service not found")

	// ErrTokenNotFound indicates a token with the specified hash was not found.
	ErrTokenNotFound = errors.Wrap(errors.ErrNotFound, "token not found")

	// ErrRoleNotFound indicates a role with the specified name was not found.
	ErrRoleNotFound = errors.Wrap(errors.ErrNotFound, "role not found")

	// ErrUserAlreadyExists indicates a user with the same name already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrGroupAlreadyExists indicates a group with the same name already exists.
	ErrGroupAlreadyExists = errors.Wrap(errors.ErrConflict, "group already exists")

	// ErrServiceAlreadyExists indicates a service with the same name already exists.
	ErrServiceAlreadyExists = errors.Wrap(errors.ErrConflict, "service already exists")

	// ErrRoleAlreadyExists indicates a role with the same name already exists.
	ErrRoleAlreadyExists = errors.Wrap(errors.ErrConflict, "role already exists")

	// ErrInvalidCredentials indicates the presented token is unknown, expired
	// or revoked. Kept generic to prevent token enumeration.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")
)
