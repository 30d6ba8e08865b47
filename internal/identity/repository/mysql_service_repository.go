package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/hubgate/internal/database"
	"github.com/allisson/hubgate/internal/identity/domain"

	apperrors "github.com/allisson/hubgate/internal/errors"
)

// MySQLServiceRepository handles service persistence for MySQL
type MySQLServiceRepository struct {
	db *sql.DB
}

// NewMySQLServiceRepository creates a new MySQLServiceRepository
func NewMySQLServiceRepository(db *sql.DB) *MySQLServiceRepository {
	return &MySQLServiceRepository{
		db: db,
	}
}

// Create inserts a new service
func (r *MySQLServiceRepository) Create(ctx context.Context, service *domain.Service) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO services (id, name, admin, created_at)
			  VALUES (?, ?, ?, NOW())`

	uuidBytes, err := service.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query, uuidBytes, service.Name, service.Admin)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrServiceAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create service")
	}
	return nil
}

// GetByName retrieves a service by name
func (r *MySQLServiceRepository) GetByName(ctx context.Context, name string) (*domain.Service, error) {
	var service domain.Service
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, admin, created_at
			  FROM services WHERE name = ?`

	var idBytes []byte
	err := querier.QueryRowContext(ctx, query, name).Scan(
		&idBytes, &service.Name, &service.Admin, &service.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get service by name")
	}

	if err := service.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	return &service, nil
}
