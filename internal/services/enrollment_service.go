package services

import (
	"context"
	"log/slog"

	"github.com/abosaleg/enrollment-service/internal/cache"
	"github.com/abosaleg/enrollment-service/internal/events"
	"github.com/abosaleg/enrollment-service/internal/models"
	"github.com/abosaleg/enrollment-service/internal/repositories"
)

type enrollmentService struct {
	repo      repositories.Repository
	publisher events.Publisher
	stats     *cache.CacheHelper
	logger    *slog.Logger
}

func NewEnrollmentService(repo repositories.Repository, publisher events.Publisher, stats *cache.CacheHelper, logger *slog.Logger) EnrollmentService {
	return &enrollmentService{
		repo:      repo,
		publisher: publisher,
		stats:     stats,
		logger:    logger,
	}
}

// Enroll enrolls the student in an active course. The unique constraint on
// the pair makes a concurrent double submission fail with ErrAlreadyEnrolled
// instead of inserting twice.
func (s *enrollmentService) Enroll(ctx context.Context, userID, courseID uint) (*models.Enrollment, error) {
	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.Status != models.CourseActive {
		return nil, repositories.ErrCourseNotFound
	}

	enrollment, err := s.repo.Enrollment().Enroll(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	events.SafePublish(ctx, s.publisher, s.logger, events.TopicEnrollmentCreated, events.EnrollmentEvent{
		ID:       enrollment.ID,
		UserID:   userID,
		CourseID: courseID,
	})
	cache.InvalidateDashboardStats(ctx, s.stats)

	s.logger.Info("student enrolled", "user_id", userID, "course_id", courseID)
	return enrollment, nil
}

func (s *enrollmentService) Unenroll(ctx context.Context, userID, courseID uint) error {
	if err := s.repo.Enrollment().Unenroll(ctx, userID, courseID); err != nil {
		return err
	}

	events.SafePublish(ctx, s.publisher, s.logger, events.TopicEnrollmentRemoved, events.EnrollmentEvent{
		UserID:   userID,
		CourseID: courseID,
	})
	cache.InvalidateDashboardStats(ctx, s.stats)

	s.logger.Info("student unenrolled", "user_id", userID, "course_id", courseID)
	return nil
}

func (s *enrollmentService) IsEnrolled(ctx context.Context, userID, courseID uint) (bool, error) {
	return s.repo.Enrollment().IsEnrolled(ctx, userID, courseID)
}

func (s *enrollmentService) ListForUser(ctx context.Context, userID uint) ([]*repositories.EnrollmentWithCourse, error) {
	return s.repo.Enrollment().ListForUser(ctx, userID)
}

func (s *enrollmentService) ListWithDetails(ctx context.Context, filters repositories.EnrollmentFilters) ([]*repositories.EnrollmentDetails, error) {
	return s.repo.Enrollment().ListWithDetails(ctx, filters)
}

// Remove is the admin path for deleting a single enrollment row.
func (s *enrollmentService) Remove(ctx context.Context, id uint) error {
	if err := s.repo.Enrollment().DeleteByID(ctx, id); err != nil {
		return err
	}

	events.SafePublish(ctx, s.publisher, s.logger, events.TopicEnrollmentRemoved, events.EnrollmentEvent{ID: id})
	cache.InvalidateDashboardStats(ctx, s.stats)

	s.logger.Info("enrollment removed", "enrollment_id", id)
	return nil
}
