// Package usecase implements business logic orchestration for identity
// operations: user/group/service lookup, token issuance and authentication,
// and the role-backed scope accessor the authorization engine consumes.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/hubgate/internal/identity/domain"
)

// UserRepository persists users and their group memberships.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByName(ctx context.Context, name string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]*domain.User, error)
}

// GroupRepository persists groups.
type GroupRepository interface {
	Create(ctx context.Context, group *domain.Group) error
	GetByName(ctx context.Context, name string) (*domain.Group, error)
	AddMember(ctx context.Context, groupID, userID uuid.UUID) error
}

// ServiceRepository persists services.
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.Service) error
	GetByName(ctx context.Context, name string) (*domain.Service, error)
}

// TokenRepository persists API tokens.
type TokenRepository interface {
	Create(ctx context.Context, token *domain.Token) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Token, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

// RoleRepository persists roles and their assignments to principals.
type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role) error
	GetByName(ctx context.Context, name string) (*domain.Role, error)
	Assign(ctx context.Context, roleID uuid.UUID, kind domain.PrincipalKind, principalName string) error

	// ScopesForPrincipal flattens the scope grant strings of every role
	// assigned to the principal. A principal with no assignments yields an
	// empty slice.
	ScopesForPrincipal(ctx context.Context, kind domain.PrincipalKind, principalName string) ([]string, error)
}

// UserUseCase exposes user lookup, including the group-membership accessor the
// authorization engine's group expansion depends on.
type UserUseCase interface {
	Create(ctx context.Context, user *domain.User) error
	FindUser(ctx context.Context, name string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]*domain.User, error)

	// GroupsFor returns the group names the named user belongs to. Returns
	// domain.ErrUserNotFound when the user does not exist.
	GroupsFor(ctx context.Context, userName string) ([]string, error)
}

// GroupUseCase exposes group creation, lookup and membership management.
type GroupUseCase interface {
	Create(ctx context.Context, group *domain.Group) error
	FindGroup(ctx context.Context, name string) (*domain.Group, error)

	// AddMember records the named user's membership in the named group.
	AddMember(ctx context.Context, groupName, userName string) error
}

// ServiceUseCase exposes service creation and lookup.
type ServiceUseCase interface {
	Create(ctx context.Context, service *domain.Service) error
	FindService(ctx context.Context, name string) (*domain.Service, error)
}

// RoleUseCase exposes role creation and assignment to principals.
type RoleUseCase interface {
	Create(ctx context.Context, role *domain.Role) error
	FindRole(ctx context.Context, name string) (*domain.Role, error)

	// Assign attaches the named role to a principal. The principal must exist
	// for user and service kinds.
	Assign(ctx context.Context, roleName string, kind domain.PrincipalKind, principalName string) error
}

// TokenUseCase manages API token issuance and authentication.
type TokenUseCase interface {
	// Issue generates a token for the given owner and returns the plain token
	// (only shown once).
	Issue(ctx context.Context, input *domain.IssueTokenInput) (*domain.IssueTokenOutput, error)

	// Authenticate validates a token hash and returns the token principal,
	// with its owner reference resolved.
	Authenticate(ctx context.Context, tokenHash string) (domain.Principal, error)

	// DeleteExpired removes tokens whose expiration has passed and returns
	// how many were deleted.
	DeleteExpired(ctx context.Context) (int64, error)
}
