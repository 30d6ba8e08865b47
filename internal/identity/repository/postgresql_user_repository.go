// Package repository provides data persistence implementations for identity
// entities: users, groups, services, tokens and roles.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/allisson/hubgate/internal/database"
	"github.com/allisson/hubgate/internal/identity/domain"

	apperrors "github.com/allisson/hubgate/internal/errors"
)

// PostgreSQLUserRepository handles user persistence for PostgreSQL
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQLUserRepository
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{
		db: db,
	}
}

// Create inserts a new user
func (r *PostgreSQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, name, admin, created_at)
			  VALUES ($1, $2, $3, NOW())`

	_, err := querier.ExecContext(ctx, query, user.ID, user.Name, user.Admin)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByName retrieves a user by name with its group memberships loaded.
func (r *PostgreSQLUserRepository) GetByName(ctx context.Context, name string) (*domain.User, error) {
	var user domain.User
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, admin, created_at
			  FROM users WHERE name = $1`

	err := querier.QueryRowContext(ctx, query, name).Scan(
		&user.ID, &user.Name, &user.Admin, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by name")
	}

	groupsQuery := `SELECT g.name
					FROM groups g
					JOIN group_memberships gm ON gm.group_id = g.id
					WHERE gm.user_id = $1
					ORDER BY g.name`

	rows, err := querier.QueryContext(ctx, groupsQuery, user.ID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get user groups")
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var groupName string
		if err := rows.Scan(&groupName); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan user group")
		}
		user.Groups = append(user.Groups, groupName)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate user groups")
	}

	return &user, nil
}

// List retrieves users ordered by name with offset/limit pagination. Group
// memberships are not loaded for listings.
func (r *PostgreSQLUserRepository) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, admin, created_at
			  FROM users ORDER BY name LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	defer func() { _ = rows.Close() }()

	users := []*domain.User{}
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Admin, &user.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan user")
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate users")
	}

	return users, nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint" or "pq: duplicate key"
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
