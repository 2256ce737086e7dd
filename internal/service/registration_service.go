package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/edumetrics/assess-backend/internal/model"
	"github.com/edumetrics/assess-backend/internal/repository"
	"github.com/jackc/pgx/v5"
)

// ErrEmailTaken is returned when registering an email that already
// has an account.
var ErrEmailTaken = errors.New("email already registered")

// RegistrationService creates test-taker accounts.
type RegistrationService struct {
	repo *repository.RegistrationRepository
	auth *AuthService
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(repo *repository.RegistrationRepository, auth *AuthService) *RegistrationService {
	return &RegistrationService{repo: repo, auth: auth}
}

// Register creates an account with a hashed password and returns the
// resulting identity.
func (s *RegistrationService) Register(ctx context.Context, req *model.RegisterRequest) (*model.Identity, error) {
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	reg := &model.Registration{
		Email:        req.Email,
		Name:         req.Name,
		Phone:        req.Phone,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, reg); err != nil {
		return nil, fmt.Errorf("create registration: %w", err)
	}

	return &model.Identity{
		ID:           reg.ID,
		Email:        reg.Email,
		Name:         reg.Name,
		IsRegistered: true,
	}, nil
}
