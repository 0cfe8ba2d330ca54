package service

import (
	"context"
	"fmt"

	"github.com/alexedwards/argon2id"

	"github.com/afroforma/roommaster/internal/domain"
	"github.com/afroforma/roommaster/internal/repo/postgres"
	"github.com/afroforma/roommaster/pkg/auth"
	"github.com/afroforma/roommaster/pkg/config"
	"github.com/afroforma/roommaster/pkg/logger"
	"github.com/afroforma/roommaster/pkg/observability"
)

type AuthService interface {
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error)
}

type authService struct {
	tenantRepo postgres.TenantRepository
	userRepo   postgres.UserRepository
	config     *config.Config
}

func NewAuthService(tenantRepo postgres.TenantRepository, userRepo postgres.UserRepository, config *config.Config) AuthService {
	return &authService{
		tenantRepo: tenantRepo,
		userRepo:   userRepo,
		config:     config,
	}
}

// Login resolves the tenant (id first, slug as fallback), checks the
// credentials inside that tenant, and issues a signed access token. The
// "no such user" and "wrong password" cases share one error so the response
// never reveals which part failed. Issuance is stateless.
func (s *authService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	req.Normalize()

	tenant, err := s.resolveTenant(ctx, req.Tenant)
	if err != nil {
		observability.LoginsTotal.WithLabelValues("unknown_tenant").Inc()
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, tenant.ID, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil || user.TenantID != tenant.ID || !user.IsActive {
		observability.LoginsTotal.WithLabelValues("rejected").Inc()
		return nil, domain.Unauthenticated("invalid credentials")
	}

	valid, err := argon2id.ComparePasswordAndHash(req.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		logger.WarnContext(ctx, "login rejected", "tenant", tenant.ID, "email", req.Email)
		observability.LoginsTotal.WithLabelValues("rejected").Inc()
		return nil, domain.Unauthenticated("invalid credentials")
	}

	accessToken, err := auth.NewAccessToken(
		user.ID,
		user.Email,
		user.TenantID,
		user.Role,
		s.config.Auth.JWTSecret,
		s.config.Auth.AccessTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	observability.LoginsTotal.WithLabelValues("success").Inc()

	return &domain.LoginResponse{
		AccessToken: accessToken,
		ExpiresIn:   int64(s.config.Auth.AccessTokenTTL.Seconds()),
		User:        user.ToUserInfo(),
	}, nil
}

func (s *authService) resolveTenant(ctx context.Context, hint string) (*domain.Tenant, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, hint)
	if err == nil && tenant != nil {
		return tenant, nil
	}
	// A non-uuid hint makes FindByID error on some backends; the slug
	// lookup is the authoritative fallback either way.
	tenant, err = s.tenantRepo.FindBySlug(ctx, hint)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tenant: %w", err)
	}
	if tenant == nil {
		return nil, domain.Unauthenticated("unknown tenant")
	}
	return tenant, nil
}
