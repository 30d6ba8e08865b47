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

func newSQLMock(t *testing.T) (*PostgreSQLUserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgreSQLUserRepository(db), dbMock
}

func TestPostgreSQLUserRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, dbMock := newSQLMock(t)

		user := &domain.User{ID: uuid.Must(uuid.NewV7()), Name: "alice", Admin: false}
		dbMock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
			WithArgs(user.ID, user.Name, user.Admin).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(ctx, user)
		assert.NoError(t, err)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("Error_DuplicateName", func(t *testing.T) {
		repo, dbMock := newSQLMock(t)

		user := &domain.User{ID: uuid.Must(uuid.NewV7()), Name: "alice"}
		dbMock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
			WithArgs(user.ID, user.Name, user.Admin).
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "users_name_key"`))

		err := repo.Create(ctx, user)
		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
	})
}

func TestPostgreSQLUserRepository_GetByName(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_WithGroups", func(t *testing.T) {
		repo, dbMock := newSQLMock(t)

		userID := uuid.Must(uuid.NewV7())
		dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, admin, created_at`)).
			WithArgs("alice").
			WillReturnRows(
				sqlmock.NewRows([]string{"id", "name", "admin", "created_at"}).
					AddRow(userID, "alice", true, time.Now().UTC()),
			)
		dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT g.name`)).
			WithArgs(userID).
			WillReturnRows(
				sqlmock.NewRows([]string{"name"}).
					AddRow("teamA").
					AddRow("teamB"),
			)

		user, err := repo.GetByName(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.True(t, user.Admin)
		assert.Equal(t, []string{"teamA", "teamB"}, user.Groups)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		repo, dbMock := newSQLMock(t)

		dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, admin, created_at`)).
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "admin", "created_at"}))

		user, err := repo.GetByName(ctx, "ghost")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestPostgreSQLUserRepository_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, dbMock := newSQLMock(t)

		dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, admin, created_at`)).
			WithArgs(50, 0).
			WillReturnRows(
				sqlmock.NewRows([]string{"id", "name", "admin", "created_at"}).
					AddRow(uuid.Must(uuid.NewV7()), "alice", false, time.Now().UTC()).
					AddRow(uuid.Must(uuid.NewV7()), "bob", true, time.Now().UTC()),
			)

		users, err := repo.List(ctx, 0, 50)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "alice", users[0].Name)
		assert.Equal(t, "bob", users[1].Name)
	})

	t.Run("Success_Empty", func(t *testing.T) {
		repo, dbMock := newSQLMock(t)

		dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, admin, created_at`)).
			WithArgs(50, 0).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "admin", "created_at"}))

		users, err := repo.List(ctx, 0, 50)
		require.NoError(t, err)
		assert.Empty(t, users)
	})
}
