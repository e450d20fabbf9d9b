package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// TxBeginner starts transactions; satisfied by *pgxpool.Pool.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// RegisterInput carries a signup payload. ServiceArea is required for the
// support role only.
type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	Role        string
	ServiceArea string
}

// SupportAnalyst bundles a support user with their registrations and
// assigned services for the listing endpoints.
type SupportAnalyst struct {
	User     domain.User
	Areas    []domain.SupportArea
	Services []domain.Service
}

// AuthService coordinates registration, login and support listings.
type AuthService struct {
	users      repository.UserRepository
	areas      repository.SupportAreaRepository
	services   repository.ServiceRepository
	txs        TxBeginner
	tokenMgr   *auth.TokenManager
	blacklist  auth.TokenBlacklist
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo        repository.UserRepository
	SupportAreaRepo repository.SupportAreaRepository
	ServiceRepo     repository.ServiceRepository
	TxBeginner      TxBeginner
	Blacklist       auth.TokenBlacklist
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		areas:      deps.SupportAreaRepo,
		services:   deps.ServiceRepo,
		txs:        deps.TxBeginner,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		blacklist:  deps.Blacklist,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new account. A support signup also records the analyst's
// service area; the two inserts share a transaction and roll back together.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	fields := map[string]any{}
	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "required"
	}
	if strings.TrimSpace(input.Email) == "" {
		fields["email"] = "required"
	}
	if strings.TrimSpace(input.Password) == "" {
		fields["password"] = "required"
	}
	if len(fields) > 0 {
		return nil, apperrors.NewValidationError("Validation error", fields)
	}
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, apperrors.NewBadRequest(err.Error())
	}
	if role == domain.RoleSupport && strings.TrimSpace(input.ServiceArea) == "" {
		return nil, apperrors.NewBadRequest("service_area is required for support users")
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewBadRequest("email already registered")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
	}

	if role != domain.RoleSupport {
		if err := s.users.Create(ctx, user); err != nil {
			return nil, apperrors.MapError(err)
		}
		return user, nil
	}

	tx, err := s.txs.Begin(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := repository.NewUserRepository(tx).Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	area := &domain.SupportArea{
		UserID:      user.ID,
		ServiceArea: input.ServiceArea,
	}
	if err := repository.NewSupportAreaRepository(tx).Create(ctx, area); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Login authenticates an account and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("Invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("Invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, exp, nil
}

// Logout revokes the presented token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if s.blacklist == nil || tokenID == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if err := s.blacklist.Revoke(ctx, tokenID, ttl); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// FindAllSupport lists every support analyst with their registrations and
// assigned services.
func (s *AuthService) FindAllSupport(ctx context.Context) ([]SupportAnalyst, error) {
	users, err := s.users.ListByRole(ctx, domain.RoleSupport)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.expandAnalysts(ctx, users)
}

// FindAvailableSupport lists support analysts with no open assigned service.
func (s *AuthService) FindAvailableSupport(ctx context.Context) ([]SupportAnalyst, error) {
	users, err := s.users.ListAvailableSupport(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.expandAnalysts(ctx, users)
}

func (s *AuthService) expandAnalysts(ctx context.Context, users []domain.User) ([]SupportAnalyst, error) {
	analysts := make([]SupportAnalyst, 0, len(users))
	for _, user := range users {
		areas, err := s.areas.ListByUser(ctx, user.ID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		services, err := s.services.ListBySupport(ctx, user.ID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		analysts = append(analysts, SupportAnalyst{User: user, Areas: areas, Services: services})
	}
	return analysts, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
