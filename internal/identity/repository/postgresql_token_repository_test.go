package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/hubgate/internal/identity/domain"
)

func newTokenSQLMock(t *testing.T) (*PostgreSQLTokenRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgreSQLTokenRepository(db), dbMock
}

func TestPostgreSQLTokenRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, dbMock := newTokenSQLMock(t)

		token := &domain.Token{
			ID:        uuid.Must(uuid.NewV7()),
			TokenHash: "token-hash",
			OwnerKind: domain.PrincipalUser,
			OwnerName: "alice",
			ExpiresAt: time.Now().UTC().Add(time.Hour),
			CreatedAt: time.Now().UTC(),
		}
		dbMock.ExpectExec(regexp.QuoteMeta(`INSERT INTO tokens`)).
			WithArgs(
				token.ID,
				token.TokenHash,
				"user",
				token.OwnerName,
				token.ExpiresAt,
				nil,
				token.CreatedAt,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(ctx, token)
		assert.NoError(t, err)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestPostgreSQLTokenRepository_GetByTokenHash(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, dbMock := newTokenSQLMock(t)

		tokenID := uuid.Must(uuid.NewV7())
		expiresAt := time.Now().UTC().Add(time.Hour)
		dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT id, token_hash, owner_kind, owner_name, expires_at, revoked_at, created_at`)).
			WithArgs("token-hash").
			WillReturnRows(
				sqlmock.NewRows([]string{
					"id", "token_hash", "owner_kind", "owner_name", "expires_at", "revoked_at", "created_at",
				}).AddRow(tokenID, "token-hash", "service", "announcer", expiresAt, nil, time.Now().UTC()),
			)

		token, err := repo.GetByTokenHash(ctx, "token-hash")
		require.NoError(t, err)
		assert.Equal(t, tokenID, token.ID)
		assert.Equal(t, domain.PrincipalService, token.OwnerKind)
		assert.Equal(t, "announcer", token.OwnerName)
		assert.Nil(t, token.RevokedAt)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		repo, dbMock := newTokenSQLMock(t)

		dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT id, token_hash, owner_kind, owner_name, expires_at, revoked_at, created_at`)).
			WithArgs("bad-hash").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "token_hash", "owner_kind", "owner_name", "expires_at", "revoked_at", "created_at",
			}))

		token, err := repo.GetByTokenHash(ctx, "bad-hash")
		assert.Nil(t, token)
		assert.ErrorIs(t, err, domain.ErrTokenNotFound)
	})
}

func TestPostgreSQLTokenRepository_DeleteExpired(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, dbMock := newTokenSQLMock(t)

		dbMock.ExpectExec(regexp.QuoteMeta(`DELETE FROM tokens`)).
			WillReturnResult(sqlmock.NewResult(0, 3))

		deleted, err := repo.DeleteExpired(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), deleted)
	})
}
