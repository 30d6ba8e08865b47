package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/hubgate/internal/identity/domain"
)

// userUseCase implements UserUseCase.
type userUseCase struct {
	userRepo UserRepository
}

// NewUserUseCase creates a new UserUseCase with the provided repository.
func NewUserUseCase(userRepo UserRepository) UserUseCase {
	return &userUseCase{userRepo: userRepo}
}

// Create persists a new user.
func (u *userUseCase) Create(ctx context.Context, user *domain.User) error {
	user.ID = uuid.Must(uuid.NewV7())
	return u.userRepo.Create(ctx, user)
}

// FindUser retrieves a user by name, with group memberships loaded.
func (u *userUseCase) FindUser(ctx context.Context, name string) (*domain.User, error) {
	return u.userRepo.GetByName(ctx, name)
}

// List returns users ordered by name with offset/limit pagination.
func (u *userUseCase) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	return u.userRepo.List(ctx, offset, limit)
}

// GroupsFor returns the group names the named user belongs to. This is the
// membership accessor the authorizer's group expansion consults; it propagates
// domain.ErrUserNotFound unchanged so the expansion can report an unverifiable
// target.
func (u *userUseCase) GroupsFor(ctx context.Context, userName string) ([]string, error) {
	user, err := u.userRepo.GetByName(ctx, userName)
	if err != nil {
		return nil, err
	}
	return user.Groups, nil
}
