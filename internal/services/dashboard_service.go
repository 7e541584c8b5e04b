package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abosaleg/enrollment-service/internal/cache"
	"github.com/abosaleg/enrollment-service/internal/repositories"
)

const dashboardCacheKey = "dashboard"

type dashboardService struct {
	repo   repositories.Repository
	stats  *cache.CacheHelper
	logger *slog.Logger
}

func NewDashboardService(repo repositories.Repository, stats *cache.CacheHelper, logger *slog.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		stats:  stats,
		logger: logger,
	}
}

// Stats returns the student/course/enrollment counters, served from cache
// when fresh.
func (s *dashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	var cached DashboardStats
	err := s.stats.Get(ctx, dashboardCacheKey, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheNotFound) && !errors.Is(err, cache.ErrCacheNotAvailable) {
		s.logger.WarnContext(ctx, "dashboard cache read failed", "error", err)
	}

	students, err := s.repo.User().CountStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("count students: %w", err)
	}
	courses, err := s.repo.Course().CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("count active courses: %w", err)
	}
	enrollments, err := s.repo.Enrollment().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count enrollments: %w", err)
	}

	result := &DashboardStats{
		Students:      students,
		ActiveCourses: courses,
		Enrollments:   enrollments,
	}

	if err := s.stats.Set(ctx, dashboardCacheKey, result, cache.StatsCacheConfig.TTL); err != nil {
		s.logger.WarnContext(ctx, "dashboard cache write failed", "error", err)
	}
	return result, nil
}
