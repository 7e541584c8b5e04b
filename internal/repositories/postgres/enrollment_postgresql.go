package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/abosaleg/enrollment-service/internal/models"
	"github.com/abosaleg/enrollment-service/internal/repositories"
)

type enrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) repositories.EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

// Enroll inserts the (user, course) pair and lets the unique index arbitrate
// concurrent double submissions: the loser gets ErrAlreadyEnrolled, never a
// second row.
func (r *enrollmentRepository) Enroll(ctx context.Context, userID, courseID uint) (*models.Enrollment, error) {
	enrollment := &models.Enrollment{
		UserID:   userID,
		CourseID: courseID,
	}
	if err := r.db.WithContext(ctx).Create(enrollment).Error; err != nil {
		return nil, translateError(err, "enroll", repositories.ErrEnrollmentNotFound)
	}
	return enrollment, nil
}

func (r *enrollmentRepository) Unenroll(ctx context.Context, userID, courseID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&models.Enrollment{})
	if result.Error != nil {
		return translateError(result.Error, "unenroll", repositories.ErrNotEnrolled)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotEnrolled
	}
	return nil
}

func (r *enrollmentRepository) IsEnrolled(ctx context.Context, userID, courseID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return count > 0, nil
}

func (r *enrollmentRepository) ListForUser(ctx context.Context, userID uint) ([]*repositories.EnrollmentWithCourse, error) {
	var rows []*repositories.EnrollmentWithCourse

	err := r.db.WithContext(ctx).
		Table("enrollments e").
		Select("e.id, e.user_id, e.course_id, e.created_at, c.title, c.description, c.status").
		Joins("JOIN courses c ON c.id = e.course_id").
		Where("e.user_id = ?", userID).
		Order("e.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list enrollments for user: %w", err)
	}
	return rows, nil
}

func (r *enrollmentRepository) ListWithDetails(ctx context.Context, filters repositories.EnrollmentFilters) ([]*repositories.EnrollmentDetails, error) {
	var rows []*repositories.EnrollmentDetails

	query := r.db.WithContext(ctx).
		Table("enrollments e").
		Select("e.id, e.user_id, e.course_id, e.created_at, u.name AS user_name, u.email AS user_email, c.title AS course_title").
		Joins("JOIN users u ON u.id = e.user_id").
		Joins("JOIN courses c ON c.id = e.course_id")

	if filters.UserID != nil {
		query = query.Where("e.user_id = ?", *filters.UserID)
	}
	if filters.CourseID != nil {
		query = query.Where("e.course_id = ?", *filters.CourseID)
	}

	if err := query.Order("e.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list enrollments with details: %w", err)
	}
	return rows, nil
}

func (r *enrollmentRepository) DeleteByID(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Enrollment{}, id)
	if result.Error != nil {
		return translateError(result.Error, "delete enrollment", repositories.ErrEnrollmentNotFound)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrEnrollmentNotFound
	}
	return nil
}

func (r *enrollmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Enrollment{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count enrollments: %w", err)
	}
	return count, nil
}
