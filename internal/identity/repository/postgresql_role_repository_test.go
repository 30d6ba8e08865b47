package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/hubgate/internal/identity/domain"
)

func newRoleSQLMock(t *testing.T) (*PostgreSQLRoleRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgreSQLRoleRepository(db), dbMock
}

func TestPostgreSQLRoleRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, dbMock := newRoleSQLMock(t)

		role := &domain.Role{
			ID:     uuid.Must(uuid.NewV7()),
			Name:   "group-reader",
			Scopes: []string{"read:groups!group=ops"},
		}
		dbMock.ExpectExec(regexp.QuoteMeta(`INSERT INTO roles`)).
			WithArgs(role.ID, role.Name, []byte(`["read:groups!group=ops"]`)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(ctx, role)
		assert.NoError(t, err)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("Error_DuplicateName", func(t *testing.T) {
		repo, dbMock := newRoleSQLMock(t)

		role := &domain.Role{ID: uuid.Must(uuid.NewV7()), Name: "group-reader", Scopes: []string{}}
		dbMock.ExpectExec(regexp.QuoteMeta(`INSERT INTO roles`)).
			WithArgs(role.ID, role.Name, []byte(`[]`)).
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "roles_name_key"`))

		err := repo.Create(ctx, role)
		assert.ErrorIs(t, err, domain.ErrRoleAlreadyExists)
	})
}

func TestPostgreSQLRoleRepository_GetByName(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, dbMock := newRoleSQLMock(t)

		roleID := uuid.Must(uuid.NewV7())
		dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, scopes, created_at`)).
			WithArgs("server-admin").
			WillReturnRows(
				sqlmock.NewRows([]string{"id", "name", "scopes", "created_at"}).
					AddRow(roleID, "server-admin", []byte(`["users:servers","read:users"]`), time.Now().UTC()),
			)

		role, err := repo.GetByName(ctx, "server-admin")
		require.NoError(t, err)
		assert.Equal(t, roleID, role.ID)
		assert.Equal(t, []string{"users:servers", "read:users"}, role.Scopes)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		repo, dbMock := newRoleSQLMock(t)

		dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, scopes, created_at`)).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "scopes", "created_at"}))

		role, err := repo.GetByName(ctx, "missing")
		assert.Nil(t, role)
		assert.ErrorIs(t, err, domain.ErrRoleNotFound)
	})
}

func TestPostgreSQLRoleRepository_ScopesForPrincipal(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_FlattensRoles", func(t *testing.T) {
		repo, dbMock := newRoleSQLMock(t)

		dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT r.scopes`)).
			WithArgs("user", "alice").
			WillReturnRows(
				sqlmock.NewRows([]string{"scopes"}).
					AddRow([]byte(`["read:users!user=alice"]`)).
					AddRow([]byte(`["users:servers","read:groups!group=ops"]`)),
			)

		scopes, err := repo.ScopesForPrincipal(ctx, domain.PrincipalUser, "alice")
		require.NoError(t, err)
		assert.Equal(t, []string{"read:users!user=alice", "users:servers", "read:groups!group=ops"}, scopes)
	})

	t.Run("Success_NoAssignments", func(t *testing.T) {
		repo, dbMock := newRoleSQLMock(t)

		dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT r.scopes`)).
			WithArgs("service", "announcer").
			WillReturnRows(sqlmock.NewRows([]string{"scopes"}))

		scopes, err := repo.ScopesForPrincipal(ctx, domain.PrincipalService, "announcer")
		require.NoError(t, err)
		assert.Empty(t, scopes)
	})
}

func TestPostgreSQLRoleRepository_Assign(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, dbMock := newRoleSQLMock(t)

		roleID := uuid.Must(uuid.NewV7())
		dbMock.ExpectExec(regexp.QuoteMeta(`INSERT INTO role_assignments`)).
			WithArgs(roleID, "user", "alice").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Assign(ctx, roleID, domain.PrincipalUser, "alice")
		assert.NoError(t, err)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}
