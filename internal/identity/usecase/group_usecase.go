package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/hubgate/internal/database"
	"github.com/allisson/hubgate/internal/identity/domain"
)

// groupUseCase implements GroupUseCase.
type groupUseCase struct {
	txManager database.TxManager
	groupRepo GroupRepository
	userRepo  UserRepository
}

// NewGroupUseCase creates a new GroupUseCase with the provided dependencies.
func NewGroupUseCase(
	txManager database.TxManager,
	groupRepo GroupRepository,
	userRepo UserRepository,
) GroupUseCase {
	return &groupUseCase{
		txManager: txManager,
		groupRepo: groupRepo,
		userRepo:  userRepo,
	}
}

// Create persists a new group.
func (g *groupUseCase) Create(ctx context.Context, group *domain.Group) error {
	group.ID = uuid.Must(uuid.NewV7())
	return g.groupRepo.Create(ctx, group)
}

// FindGroup retrieves a group by name.
func (g *groupUseCase) FindGroup(ctx context.Context, name string) (*domain.Group, error) {
	return g.groupRepo.GetByName(ctx, name)
}

// AddMember resolves both names and records the membership in a single
// transaction, so the insert cannot race a concurrent group or user deletion.
// Adding an existing member is a no-op.
func (g *groupUseCase) AddMember(ctx context.Context, groupName, userName string) error {
	return g.txManager.WithTx(ctx, func(ctx context.Context) error {
		group, err := g.groupRepo.GetByName(ctx, groupName)
		if err != nil {
			return err
		}

		user, err := g.userRepo.GetByName(ctx, userName)
		if err != nil {
			return err
		}

		return g.groupRepo.AddMember(ctx, group.ID, user.ID)
	})
}
