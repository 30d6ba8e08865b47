package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	identityDomain "github.com/allisson/hubgate/internal/identity/domain"
)

// mockRoleUseCase is a mock implementation of RoleUseCase for testing.
type mockRoleUseCase struct {
	mock.Mock
}

func (m *mockRoleUseCase) Create(ctx context.Context, role *identityDomain.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *mockRoleUseCase) FindRole(ctx context.Context, name string) (*identityDomain.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.Role), args.Error(1)
}

func (m *mockRoleUseCase) Assign(
	ctx context.Context,
	roleName string,
	kind identityDomain.PrincipalKind,
	principalName string,
) error {
	args := m.Called(ctx, roleName, kind, principalName)
	return args.Error(0)
}

func TestRunCreateRole(t *testing.T) {
	ctx := context.Background()

	t.Run("parses-scope-list", func(t *testing.T) {
		mockUseCase := &mockRoleUseCase{}
		mockUseCase.On("Create", ctx, mock.MatchedBy(func(role *identityDomain.Role) bool {
			return role.Name == "reader" &&
				len(role.Scopes) == 2 &&
				role.Scopes[0] == "read:users" &&
				role.Scopes[1] == "users:servers!group=research"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*identityDomain.Role).ID = uuid.Must(uuid.NewV7())
		}).Return(nil)

		var out bytes.Buffer
		err := RunCreateRole(
			ctx, mockUseCase, testLogger, &out,
			"reader", "read:users, users:servers!group=research", "text",
		)

		require.NoError(t, err)
		require.Contains(t, out.String(), "Role created successfully")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("rejects-empty-scope-list", func(t *testing.T) {
		mockUseCase := &mockRoleUseCase{}

		var out bytes.Buffer
		err := RunCreateRole(ctx, mockUseCase, testLogger, &out, "reader", " , ", "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "at least one scope grant is required")
		mockUseCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects-malformed-grant", func(t *testing.T) {
		mockUseCase := &mockRoleUseCase{}

		var out bytes.Buffer
		err := RunCreateRole(ctx, mockUseCase, testLogger, &out, "reader", "!user=alice", "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid scope grant")
		mockUseCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestRunAssignRole(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns-to-user", func(t *testing.T) {
		mockUseCase := &mockRoleUseCase{}
		mockUseCase.On("Assign", ctx, "reader", identityDomain.PrincipalUser, "alice").Return(nil)

		var out bytes.Buffer
		err := RunAssignRole(ctx, mockUseCase, testLogger, &out, "reader", "user", "alice")

		require.NoError(t, err)
		require.Contains(t, out.String(), `Role "reader" assigned to user "alice"`)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("rejects-token-kind", func(t *testing.T) {
		mockUseCase := &mockRoleUseCase{}

		var out bytes.Buffer
		err := RunAssignRole(ctx, mockUseCase, testLogger, &out, "reader", "token", "abc")

		require.Error(t, err)
		mockUseCase.AssertNotCalled(t, "Assign", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
