package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/hubgate/internal/database"
	"github.com/allisson/hubgate/internal/identity/domain"
)

// roleUseCase implements RoleUseCase.
type roleUseCase struct {
	txManager   database.TxManager
	roleRepo    RoleRepository
	userRepo    UserRepository
	serviceRepo ServiceRepository
}

// NewRoleUseCase creates a new RoleUseCase with the provided dependencies.
func NewRoleUseCase(
	txManager database.TxManager,
	roleRepo RoleRepository,
	userRepo UserRepository,
	serviceRepo ServiceRepository,
) RoleUseCase {
	return &roleUseCase{
		txManager:   txManager,
		roleRepo:    roleRepo,
		userRepo:    userRepo,
		serviceRepo: serviceRepo,
	}
}

// Create persists a new role.
func (r *roleUseCase) Create(ctx context.Context, role *domain.Role) error {
	role.ID = uuid.Must(uuid.NewV7())
	return r.roleRepo.Create(ctx, role)
}

// FindRole retrieves a role by name.
func (r *roleUseCase) FindRole(ctx context.Context, name string) (*domain.Role, error) {
	return r.roleRepo.GetByName(ctx, name)
}

// Assign attaches the named role to a principal after checking both exist.
// The lookups and the insert run in a single transaction so the assignment
// cannot race a concurrent role or principal deletion. Token principals are
// assigned by token ID and are not existence-checked; a stale assignment is
// harmless since the token can no longer authenticate.
func (r *roleUseCase) Assign(
	ctx context.Context,
	roleName string,
	kind domain.PrincipalKind,
	principalName string,
) error {
	return r.txManager.WithTx(ctx, func(ctx context.Context) error {
		role, err := r.roleRepo.GetByName(ctx, roleName)
		if err != nil {
			return err
		}

		switch kind {
		case domain.PrincipalUser:
			if _, err := r.userRepo.GetByName(ctx, principalName); err != nil {
				return err
			}
		case domain.PrincipalService:
			if _, err := r.serviceRepo.GetByName(ctx, principalName); err != nil {
				return err
			}
		case domain.PrincipalToken:
			// Assigned by token ID.
		}

		return r.roleRepo.Assign(ctx, role.ID, kind, principalName)
	})
}
