package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/hubgate/internal/database"
	"github.com/allisson/hubgate/internal/identity/domain"

	apperrors "github.com/allisson/hubgate/internal/errors"
)

// PostgreSQLGroupRepository handles group persistence for PostgreSQL
type PostgreSQLGroupRepository struct {
	db *sql.DB
}

// NewPostgreSQLGroupRepository creates a new PostgreSQLGroupRepository
func NewPostgreSQLGroupRepository(db *sql.DB) *PostgreSQLGroupRepository {
	return &PostgreSQLGroupRepository{
		db: db,
	}
}

// Create inserts a new group
func (r *PostgreSQLGroupRepository) Create(ctx context.Context, group *domain.Group) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO groups (id, name, created_at)
			  VALUES ($1, $2, NOW())`

	_, err := querier.ExecContext(ctx, query, group.ID, group.Name)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrGroupAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create group")
	}
	return nil
}

// GetByName retrieves a group by name
func (r *PostgreSQLGroupRepository) GetByName(ctx context.Context, name string) (*domain.Group, error) {
	var group domain.Group
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, created_at
			  FROM groups WHERE name = $1`

	err := querier.QueryRowContext(ctx, query, name).Scan(
		&group.ID, &group.Name, &group.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGroupNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get group by name")
	}

	return &group, nil
}

// AddMember records a user's membership in a group. Adding an existing member
// is a no-op.
func (r *PostgreSQLGroupRepository) AddMember(ctx context.Context, groupID, userID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO group_memberships (group_id, user_id)
			  VALUES ($1, $2)
			  ON CONFLICT (group_id, user_id) DO NOTHING`

	_, err := querier.ExecContext(ctx, query, groupID, userID)
	if err != nil {
		return apperrors.Wrap(err, "failed to add group member")
	}
	return nil
}
