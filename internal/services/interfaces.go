package services

import (
	"context"

	"github.com/xuri/excelize/v2"

	"github.com/abosaleg/enrollment-service/internal/models"
	"github.com/abosaleg/enrollment-service/internal/repositories"
	"github.com/abosaleg/enrollment-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use validator request types
type RegisterRequest = validator.RegisterRequest
type ProfileUpdateRequest = validator.ProfileUpdateRequest
type ChangePasswordRequest = validator.ChangePasswordRequest
type CourseCreateRequest = validator.CourseCreateRequest
type CourseUpdateRequest = validator.CourseUpdateRequest

// DashboardStats are the admin landing-page counters.
type DashboardStats struct {
	Students      int64 `json:"students"`
	ActiveCourses int64 `json:"active_courses"`
	Enrollments   int64 `json:"enrollments"`
}

// ===== SERVICE INTERFACES =====

// UserService covers the admin student-management operations plus the
// student's own profile mutations.
type UserService interface {
	CreateStudent(ctx context.Context, req *RegisterRequest) (*models.User, error)
	Get(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context, role *models.Role) ([]*models.User, error)
	// UpdateProfile applies name/email/phone; a nil avatarPath keeps the
	// stored avatar.
	UpdateProfile(ctx context.Context, id uint, req *ProfileUpdateRequest, avatarPath *string) (*models.User, error)
	ChangePassword(ctx context.Context, id uint, req *ChangePasswordRequest) error
	Delete(ctx context.Context, id uint) error
}

type CourseService interface {
	Create(ctx context.Context, req *CourseCreateRequest) (*models.Course, error)
	Get(ctx context.Context, id uint) (*models.Course, error)
	List(ctx context.Context, status *models.CourseStatus) ([]*models.Course, error)
	Update(ctx context.Context, id uint, req *CourseUpdateRequest) (*models.Course, error)
	Delete(ctx context.Context, id uint) error
	// Catalog is the student-facing list of active courses with the
	// is_enrolled flag for the given student.
	Catalog(ctx context.Context, userID uint) ([]*repositories.CourseWithEnrollment, error)
}

type EnrollmentService interface {
	Enroll(ctx context.Context, userID, courseID uint) (*models.Enrollment, error)
	Unenroll(ctx context.Context, userID, courseID uint) error
	IsEnrolled(ctx context.Context, userID, courseID uint) (bool, error)
	ListForUser(ctx context.Context, userID uint) ([]*repositories.EnrollmentWithCourse, error)
	ListWithDetails(ctx context.Context, filters repositories.EnrollmentFilters) ([]*repositories.EnrollmentDetails, error)
	Remove(ctx context.Context, id uint) error
}

type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
}

// ReportService builds the admin XLSX exports.
type ReportService interface {
	EnrollmentsWorkbook(ctx context.Context, filters repositories.EnrollmentFilters) (*excelize.File, error)
	StudentsWorkbook(ctx context.Context) (*excelize.File, error)
}

// ServiceManager wires and exposes all services.
type ServiceManager interface {
	User() UserService
	Course() CourseService
	Enrollment() EnrollmentService
	Dashboard() DashboardService
	Report() ReportService
}
