package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/afroforma/roommaster/internal/domain"
	"github.com/afroforma/roommaster/internal/mailer"
	"github.com/afroforma/roommaster/internal/repo/postgres"
	"github.com/afroforma/roommaster/pkg/events"
	"github.com/afroforma/roommaster/pkg/logger"
)

type UserService interface {
	Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
	Deactivate(ctx context.Context, id string) error
}

type userService struct {
	userRepo   postgres.UserRepository
	tenantRepo postgres.TenantRepository
	mailer     mailer.Service
	eventBus   events.Publisher
}

func NewUserService(userRepo postgres.UserRepository, tenantRepo postgres.TenantRepository, mailer mailer.Service, eventBus events.Publisher) UserService {
	return &userService{
		userRepo:   userRepo,
		tenantRepo: tenantRepo,
		mailer:     mailer,
		eventBus:   eventBus,
	}
}

func (s *userService) Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	tid, err := tenantID(ctx)
	if err != nil {
		return nil, err
	}

	req.Normalize()
	if !domain.IsValidRole(req.Role) {
		return nil, domain.Validation("invalid role")
	}

	passwordHash, err := argon2id.CreateHash(req.Password, argon2id.DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, tid, req, passwordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, domain.Conflict("user with this email already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	tenantName := ""
	if tenant, err := s.tenantRepo.FindByID(ctx, tid); err == nil && tenant != nil {
		tenantName = tenant.Name
	}
	if err := s.mailer.SendWelcomeEmail(user.Email, user.Name, tenantName); err != nil {
		// User creation stands even when the email fails.
		logger.ErrorContext(ctx, "failed to send welcome email", "error", err, "user_id", user.ID)
	}

	if s.eventBus != nil {
		err := s.eventBus.Publish(ctx, events.UserCreated, events.UserCreatedEvent{
			TenantID:  tid,
			UserID:    user.ID,
			Email:     user.Email,
			Role:      user.Role,
			CreatedAt: time.Now(),
		})
		if err != nil {
			logger.WarnContext(ctx, "failed to publish user created event", "error", err)
		}
	}

	return user, nil
}

func (s *userService) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	tid, err := tenantID(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.List(ctx, tid, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Deactivate flips the active flag; users are never deleted.
func (s *userService) Deactivate(ctx context.Context, id string) error {
	tid, err := tenantID(ctx)
	if err != nil {
		return err
	}

	ok, err := s.userRepo.Deactivate(ctx, tid, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	if !ok {
		return domain.NotFound("user not found")
	}
	return nil
}
