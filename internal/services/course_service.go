package services

import (
	"context"
	"log/slog"

	"github.com/abosaleg/enrollment-service/internal/cache"
	"github.com/abosaleg/enrollment-service/internal/events"
	"github.com/abosaleg/enrollment-service/internal/models"
	"github.com/abosaleg/enrollment-service/internal/repositories"
	"github.com/abosaleg/enrollment-service/internal/validator"
)

type courseService struct {
	repo      repositories.Repository
	validator *validator.Validator
	publisher events.Publisher
	stats     *cache.CacheHelper
	logger    *slog.Logger
}

func NewCourseService(repo repositories.Repository, v *validator.Validator, publisher events.Publisher, stats *cache.CacheHelper, logger *slog.Logger) CourseService {
	return &courseService{
		repo:      repo,
		validator: v,
		publisher: publisher,
		stats:     stats,
		logger:    logger,
	}
}

func (s *courseService) Create(ctx context.Context, req *CourseCreateRequest) (*models.Course, error) {
	req.Normalize()
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	course := &models.Course{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.CourseActive,
	}
	if err := s.repo.Course().Create(ctx, course); err != nil {
		return nil, err
	}

	events.SafePublish(ctx, s.publisher, s.logger, events.TopicCourseCreated, events.CourseEvent{
		ID:     course.ID,
		Title:  course.Title,
		Status: course.Status,
	})
	cache.InvalidateDashboardStats(ctx, s.stats)

	s.logger.Info("course created", "course_id", course.ID)
	return course, nil
}

func (s *courseService) Get(ctx context.Context, id uint) (*models.Course, error) {
	return s.repo.Course().GetByID(ctx, id)
}

func (s *courseService) List(ctx context.Context, status *models.CourseStatus) ([]*models.Course, error) {
	return s.repo.Course().List(ctx, repositories.CourseFilters{Status: status})
}

func (s *courseService) Update(ctx context.Context, id uint, req *CourseUpdateRequest) (*models.Course, error) {
	req.Normalize()
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	if err := s.repo.Course().Update(ctx, id, req.Title, req.Description, req.Status); err != nil {
		return nil, err
	}

	course, err := s.repo.Course().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	events.SafePublish(ctx, s.publisher, s.logger, events.TopicCourseUpdated, events.CourseEvent{
		ID:     course.ID,
		Title:  course.Title,
		Status: course.Status,
	})
	cache.InvalidateDashboardStats(ctx, s.stats)

	return course, nil
}

func (s *courseService) Delete(ctx context.Context, id uint) error {
	course, err := s.repo.Course().GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Course().Delete(ctx, id); err != nil {
		return err
	}

	events.SafePublish(ctx, s.publisher, s.logger, events.TopicCourseDeleted, events.CourseEvent{
		ID:     course.ID,
		Title:  course.Title,
		Status: course.Status,
	})
	cache.InvalidateDashboardStats(ctx, s.stats)

	s.logger.Info("course deleted", "course_id", id)
	return nil
}

func (s *courseService) Catalog(ctx context.Context, userID uint) ([]*repositories.CourseWithEnrollment, error) {
	return s.repo.Course().ListWithEnrollmentFlag(ctx, userID)
}
