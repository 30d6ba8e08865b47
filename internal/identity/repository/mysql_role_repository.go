package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/hubgate/internal/database"
	"github.com/allisson/hubgate/internal/identity/domain"

	apperrors "github.com/allisson/hubgate/internal/errors"
)

// MySQLRoleRepository handles role persistence for MySQL. Scope grant lists
// are stored as JSON text.
type MySQLRoleRepository struct {
	db *sql.DB
}

// NewMySQLRoleRepository creates a new MySQLRoleRepository
func NewMySQLRoleRepository(db *sql.DB) *MySQLRoleRepository {
	return &MySQLRoleRepository{
		db: db,
	}
}

// Create inserts a new role
func (r *MySQLRoleRepository) Create(ctx context.Context, role *domain.Role) error {
	querier := database.GetTx(ctx, r.db)

	scopesJSON, err := json.Marshal(role.Scopes)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal role scopes")
	}

	query := `INSERT INTO roles (id, name, scopes, created_at)
			  VALUES (?, ?, ?, NOW())`

	uuidBytes, err := role.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query, uuidBytes, role.Name, scopesJSON)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrRoleAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create role")
	}
	return nil
}

// GetByName retrieves a role by name
func (r *MySQLRoleRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	var role domain.Role
	var scopesJSON []byte
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, scopes, created_at
			  FROM roles WHERE name = ?`

	var idBytes []byte
	err := querier.QueryRowContext(ctx, query, name).Scan(
		&idBytes, &role.Name, &scopesJSON, &role.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get role by name")
	}

	if err := role.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	if err := json.Unmarshal(scopesJSON, &role.Scopes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal role scopes")
	}

	return &role, nil
}

// Assign records a role assignment for a principal. Assigning an already
// assigned role is a no-op.
func (r *MySQLRoleRepository) Assign(
	ctx context.Context,
	roleID uuid.UUID,
	kind domain.PrincipalKind,
	principalName string,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT IGNORE INTO role_assignments (role_id, principal_kind, principal_name)
			  VALUES (?, ?, ?)`

	uuidBytes, err := roleID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query, uuidBytes, kind, principalName)
	if err != nil {
		return apperrors.Wrap(err, "failed to assign role")
	}
	return nil
}

// ScopesForPrincipal flattens the scope grant strings of every role assigned
// to the principal, in role name order. A principal with no assignments yields
// an empty slice.
func (r *MySQLRoleRepository) ScopesForPrincipal(
	ctx context.Context,
	kind domain.PrincipalKind,
	principalName string,
) ([]string, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT r.scopes
			  FROM roles r
			  JOIN role_assignments ra ON ra.role_id = r.id
			  WHERE ra.principal_kind = ? AND ra.principal_name = ?
			  ORDER BY r.name`

	rows, err := querier.QueryContext(ctx, query, kind, principalName)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get scopes for principal")
	}
	defer func() { _ = rows.Close() }()

	scopes := []string{}
	for rows.Next() {
		var scopesJSON []byte
		if err := rows.Scan(&scopesJSON); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan role scopes")
		}
		var roleScopes []string
		if err := json.Unmarshal(scopesJSON, &roleScopes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal role scopes")
		}
		scopes = append(scopes, roleScopes...)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate role scopes")
	}

	return scopes, nil
}
