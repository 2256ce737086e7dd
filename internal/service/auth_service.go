package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/edumetrics/assess-backend/internal/config"
	"github.com/edumetrics/assess-backend/internal/model"
	"github.com/edumetrics/assess-backend/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for a wrong email/password pair.
var ErrInvalidCredentials = errors.New("invalid credentials")

// TokenType distinguishes test-taker vs admin tokens.
type TokenType string

const (
	TokenTypeUser  TokenType = "user"
	TokenTypeAdmin TokenType = "admin"
)

// Claims extends JWT standard claims with the identity fields the
// platform consumes. The test core only ever reads Email.
type Claims struct {
	jwt.RegisteredClaims
	TokenType    TokenType `json:"token_type"`
	UserID       int       `json:"user_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PictureURL   string    `json:"picture_url,omitempty"`
	IsRegistered bool      `json:"is_registered,omitempty"`
}

// Identity converts the claims into the core's identity value.
func (c *Claims) Identity() *model.Identity {
	if c == nil {
		return nil
	}
	return &model.Identity{
		ID:           c.UserID,
		Email:        c.Email,
		Name:         c.Name,
		PictureURL:   c.PictureURL,
		IsRegistered: c.IsRegistered,
	}
}

// AuthService handles password hashing, login and JWT issuance. It is
// the identity collaborator: everything downstream consumes only the
// Identity it yields.
type AuthService struct {
	cfg       *config.Config
	regRepo   *repository.RegistrationRepository
	adminRepo *repository.AdminRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, regRepo *repository.RegistrationRepository, adminRepo *repository.AdminRepository) *AuthService {
	return &AuthService{cfg: cfg, regRepo: regRepo, adminRepo: adminRepo}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// LoginUser authenticates a registered test taker and issues a token.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (string, *model.Identity, error) {
	reg, err := s.regRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := s.CheckPassword(reg.PasswordHash, password); err != nil {
		return "", nil, err
	}

	identity := &model.Identity{
		ID:           reg.ID,
		Email:        reg.Email,
		Name:         reg.Name,
		PictureURL:   reg.PictureURL,
		IsRegistered: true,
	}
	token, err := s.generateToken(TokenTypeUser, identity)
	if err != nil {
		return "", nil, err
	}
	return token, identity, nil
}

// LoginAdmin authenticates an administrator and issues a token.
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (string, *model.Identity, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := s.CheckPassword(admin.PasswordHash, password); err != nil {
		return "", nil, err
	}

	identity := &model.Identity{ID: admin.ID, Email: admin.Email, Name: admin.Name}
	token, err := s.generateToken(TokenTypeAdmin, identity)
	if err != nil {
		return "", nil, err
	}
	return token, identity, nil
}

// ValidateToken parses and verifies a JWT, returning its claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

func (s *AuthService) generateToken(tokenType TokenType, identity *model.Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   strconv.Itoa(identity.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		TokenType:    tokenType,
		UserID:       identity.ID,
		Email:        identity.Email,
		Name:         identity.Name,
		PictureURL:   identity.PictureURL,
		IsRegistered: identity.IsRegistered,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
