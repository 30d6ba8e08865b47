package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/hubgate/internal/database"
	"github.com/allisson/hubgate/internal/identity/domain"

	apperrors "github.com/allisson/hubgate/internal/errors"
)

// PostgreSQLServiceRepository handles service persistence for PostgreSQL
type PostgreSQLServiceRepository struct {
	db *sql.DB
}

// NewPostgreSQLServiceRepository creates a new PostgreSQLServiceRepository
func NewPostgreSQLServiceRepository(db *sql.DB) *PostgreSQLServiceRepository {
	return &PostgreSQLServiceRepository{
		db: db,
	}
}

// Create inserts a new service
func (r *PostgreSQLServiceRepository) Create(ctx context.Context, service *domain.Service) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO services (id, name, admin, created_at)
			  VALUES ($1, $2, $3, NOW())`

	_, err := querier.ExecContext(ctx, query, service.ID, service.Name, service.Admin)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrServiceAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create service")
	}
	return nil
}

// GetByName retrieves a service by name
func (r *PostgreSQLServiceRepository) GetByName(ctx context.Context, name string) (*domain.Service, error) {
	var service domain.Service
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, admin, created_at
			  FROM services WHERE name = $1`

	err := querier.QueryRowContext(ctx, query, name).Scan(
		&service.ID, &service.Name, &service.Admin, &service.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get service by name")
	}

	return &service, nil
}
