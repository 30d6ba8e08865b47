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

// MySQLGroupRepository handles group persistence for MySQL
type MySQLGroupRepository struct {
	db *sql.DB
}

// NewMySQLGroupRepository creates a new MySQLGroupRepository
func NewMySQLGroupRepository(db *sql.DB) *MySQLGroupRepository {
	return &MySQLGroupRepository{
		db: db,
	}
}

// Create inserts a new group
func (r *MySQLGroupRepository) Create(ctx context.Context, group *domain.Group) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO groups (id, name, created_at)
			  VALUES (?, ?, NOW())`

	uuidBytes, err := group.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query, uuidBytes, group.Name)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrGroupAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create group")
	}
	return nil
}

// GetByName retrieves a group by name
func (r *MySQLGroupRepository) GetByName(ctx context.Context, name string) (*domain.Group, error) {
	var group domain.Group
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, created_at
			  FROM groups WHERE name = ?`

	var idBytes []byte
	err := querier.QueryRowContext(ctx, query, name).Scan(
		&idBytes, &group.Name, &group.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGroupNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get group by name")
	}

	if err := group.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	return &group, nil
}

// AddMember records a user's membership in a group. Adding an existing member
// is a no-op.
func (r *MySQLGroupRepository) AddMember(ctx context.Context, groupID, userID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT IGNORE INTO group_memberships (group_id, user_id)
			  VALUES (?, ?)`

	groupBytes, err := groupID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	userBytes, err := userID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query, groupBytes, userBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to add group member")
	}
	return nil
}
