package repository

import (
	"context"

	"github.com/edumetrics/assess-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegistrationRepository handles test-taker account data access.
type RegistrationRepository struct {
	pool *pgxpool.Pool
}

// NewRegistrationRepository creates a new RegistrationRepository.
func NewRegistrationRepository(pool *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{pool: pool}
}

// GetByEmail retrieves a registration by its unique email.
func (r *RegistrationRepository) GetByEmail(ctx context.Context, email string) (*model.Registration, error) {
	reg := &model.Registration{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, name, phone, picture_url, password_hash, created_at, updated_at
		 FROM registrations WHERE email = $1`, email,
	).Scan(&reg.ID, &reg.Email, &reg.Name, &reg.Phone, &reg.PictureURL,
		&reg.PasswordHash, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// Create inserts a new registration.
func (r *RegistrationRepository) Create(ctx context.Context, reg *model.Registration) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO registrations (email, name, phone, picture_url, password_hash)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		reg.Email, reg.Name, reg.Phone, reg.PictureURL, reg.PasswordHash,
	).Scan(&reg.ID, &reg.CreatedAt, &reg.UpdatedAt)
}
