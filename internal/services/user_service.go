package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abosaleg/enrollment-service/internal/cache"
	"github.com/abosaleg/enrollment-service/internal/events"
	"github.com/abosaleg/enrollment-service/internal/models"
	"github.com/abosaleg/enrollment-service/internal/repositories"
	"github.com/abosaleg/enrollment-service/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	validator *validator.Validator
	publisher events.Publisher
	stats     *cache.CacheHelper
	logger    *slog.Logger
}

func NewUserService(repo repositories.Repository, v *validator.Validator, publisher events.Publisher, stats *cache.CacheHelper, logger *slog.Logger) UserService {
	return &userService{
		repo:      repo,
		validator: v,
		publisher: publisher,
		stats:     stats,
		logger:    logger,
	}
}

// CreateStudent is the administrative creation path. Like registration it can
// only produce student accounts.
func (s *userService) CreateStudent(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	req.Normalize()
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	user := &models.User{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Role:  models.RoleStudent,
	}
	if err := s.repo.User().Create(ctx, user, req.Password); err != nil {
		return nil, err
	}

	events.SafePublish(ctx, s.publisher, s.logger, events.TopicUserRegistered, events.UserEvent{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	})
	cache.InvalidateDashboardStats(ctx, s.stats)

	s.logger.Info("student created", "user_id", user.ID)
	return user, nil
}

func (s *userService) Get(ctx context.Context, id uint) (*models.User, error) {
	return s.repo.User().GetByID(ctx, id)
}

func (s *userService) List(ctx context.Context, role *models.Role) ([]*models.User, error) {
	return s.repo.User().List(ctx, repositories.UserFilters{Role: role})
}

func (s *userService) UpdateProfile(ctx context.Context, id uint, req *ProfileUpdateRequest, avatarPath *string) (*models.User, error) {
	req.Normalize()
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	// Friendly pre-checks; the unique indexes still arbitrate races.
	if taken, err := s.repo.User().EmailExists(ctx, req.Email, id); err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	} else if taken {
		return nil, repositories.ErrDuplicateEmail
	}
	if taken, err := s.repo.User().PhoneExists(ctx, req.Phone, id); err != nil {
		return nil, fmt.Errorf("check phone: %w", err)
	} else if taken {
		return nil, repositories.ErrDuplicatePhone
	}

	if err := s.repo.User().Update(ctx, id, req.Name, req.Email, req.Phone, avatarPath); err != nil {
		return nil, err
	}
	return s.repo.User().GetByID(ctx, id)
}

func (s *userService) ChangePassword(ctx context.Context, id uint, req *ChangePasswordRequest) error {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return errs
	}
	return s.repo.User().UpdatePassword(ctx, id, req.Password)
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.User().Delete(ctx, id); err != nil {
		return err
	}

	events.SafePublish(ctx, s.publisher, s.logger, events.TopicUserDeleted, events.UserEvent{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	})
	cache.InvalidateDashboardStats(ctx, s.stats)

	s.logger.Info("user deleted", "user_id", id)
	return nil
}
