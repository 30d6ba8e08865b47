package usecase

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/hubgate/internal/database"
	"github.com/allisson/hubgate/internal/identity/domain"
)

// mockGroupRepository is a mock implementation of GroupRepository for testing.
type mockGroupRepository struct {
	mock.Mock
}

func (m *mockGroupRepository) Create(ctx context.Context, group *domain.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *mockGroupRepository) GetByName(ctx context.Context, name string) (*domain.Group, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *mockGroupRepository) AddMember(ctx context.Context, groupID, userID uuid.UUID) error {
	args := m.Called(ctx, groupID, userID)
	return args.Error(0)
}

// newTxManager returns a TxManager over a sqlmock database so the tests can
// assert begin/commit/rollback without a live database.
func newTxManager(t *testing.T) (database.TxManager, sqlmock.Sqlmock) {
	t.Helper()
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return database.NewTxManager(db), sqlMock
}

func TestGroupUseCase_AddMember(t *testing.T) {
	ctx := context.Background()
	groupID := uuid.Must(uuid.NewV7())
	userID := uuid.Must(uuid.NewV7())

	t.Run("Success_RunsInTransaction", func(t *testing.T) {
		txManager, sqlMock := newTxManager(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		groupRepo := &mockGroupRepository{}
		userRepo := &mockUserRepository{}
		useCase := NewGroupUseCase(txManager, groupRepo, userRepo)

		groupRepo.On("GetByName", mock.Anything, "research").
			Return(&domain.Group{ID: groupID, Name: "research"}, nil).
			Once()
		userRepo.On("GetByName", mock.Anything, "alice").
			Return(&domain.User{ID: userID, Name: "alice"}, nil).
			Once()
		groupRepo.On("AddMember", mock.Anything, groupID, userID).
			Return(nil).
			Once()

		err := useCase.AddMember(ctx, "research", "alice")

		require.NoError(t, err)
		groupRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("Error_UnknownUserRollsBack", func(t *testing.T) {
		txManager, sqlMock := newTxManager(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		groupRepo := &mockGroupRepository{}
		userRepo := &mockUserRepository{}
		useCase := NewGroupUseCase(txManager, groupRepo, userRepo)

		groupRepo.On("GetByName", mock.Anything, "research").
			Return(&domain.Group{ID: groupID, Name: "research"}, nil).
			Once()
		userRepo.On("GetByName", mock.Anything, "ghost").
			Return(nil, domain.ErrUserNotFound).
			Once()

		err := useCase.AddMember(ctx, "research", "ghost")

		require.ErrorIs(t, err, domain.ErrUserNotFound)
		groupRepo.AssertNotCalled(t, "AddMember", mock.Anything, mock.Anything, mock.Anything)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("Error_UnknownGroupRollsBack", func(t *testing.T) {
		txManager, sqlMock := newTxManager(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		groupRepo := &mockGroupRepository{}
		userRepo := &mockUserRepository{}
		useCase := NewGroupUseCase(txManager, groupRepo, userRepo)

		groupRepo.On("GetByName", mock.Anything, "ghost").
			Return(nil, domain.ErrGroupNotFound).
			Once()

		err := useCase.AddMember(ctx, "ghost", "alice")

		require.ErrorIs(t, err, domain.ErrGroupNotFound)
		userRepo.AssertNotCalled(t, "GetByName", mock.Anything, mock.Anything)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}
