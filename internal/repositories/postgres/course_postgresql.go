package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/abosaleg/enrollment-service/internal/models"
	"github.com/abosaleg/enrollment-service/internal/repositories"
)

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) repositories.CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.Status == "" {
		course.Status = models.CourseActive
	}
	if err := r.db.WithContext(ctx).Create(course).Error; err != nil {
		return translateError(err, "create course", repositories.ErrCourseNotFound)
	}
	return nil
}

func (r *courseRepository) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).First(&course, id).Error; err != nil {
		return nil, translateError(err, "get course by id", repositories.ErrCourseNotFound)
	}
	return &course, nil
}

func (r *courseRepository) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, error) {
	var courses []*models.Course

	query := r.db.WithContext(ctx).Model(&models.Course{})
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	if err := byRecency(query).Find(&courses).Error; err != nil {
		return nil, translateError(err, "list courses", repositories.ErrCourseNotFound)
	}
	return courses, nil
}

func (r *courseRepository) Update(ctx context.Context, id uint, title, description string, status models.CourseStatus) error {
	result := r.db.WithContext(ctx).Model(&models.Course{}).Where("id = ?", id).Updates(map[string]any{
		"title":       title,
		"description": description,
		"status":      status,
	})
	if result.Error != nil {
		return translateError(result.Error, "update course", repositories.ErrCourseNotFound)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrCourseNotFound
	}
	return nil
}

func (r *courseRepository) Delete(ctx context.Context, id uint) error {
	// Enrollments referencing the course are removed by ON DELETE CASCADE.
	result := r.db.WithContext(ctx).Delete(&models.Course{}, id)
	if result.Error != nil {
		return translateError(result.Error, "delete course", repositories.ErrCourseNotFound)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrCourseNotFound
	}
	return nil
}

func (r *courseRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Course{}).
		Where("status = ?", models.CourseActive).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count active courses: %w", err)
	}
	return count, nil
}

// ListWithEnrollmentFlag is the student catalog view: every active course with
// a flag for whether the given user already holds an enrollment. One left-join
// query, so the course list and the flags come from a single consistent read.
func (r *courseRepository) ListWithEnrollmentFlag(ctx context.Context, userID uint) ([]*repositories.CourseWithEnrollment, error) {
	var rows []*repositories.CourseWithEnrollment

	err := r.db.WithContext(ctx).
		Table("courses c").
		Select("c.id, c.title, c.description, c.status, c.created_at, e.id IS NOT NULL AS is_enrolled").
		Joins("LEFT JOIN enrollments e ON e.course_id = c.id AND e.user_id = ?", userID).
		Where("c.status = ?", models.CourseActive).
		Order("c.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list courses with enrollment flag: %w", err)
	}
	return rows, nil
}
