package repositories

import (
	"context"
	"time"

	"github.com/abosaleg/enrollment-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type UserFilters struct {
	Role *models.Role `json:"role"`
}

type CourseFilters struct {
	Status *models.CourseStatus `json:"status"`
}

type EnrollmentFilters struct {
	UserID   *uint `json:"user_id"`
	CourseID *uint `json:"course_id"`
}

// ===== JOINED ROW TYPES =====

// CourseWithEnrollment is one row of the student-facing catalog: an active
// course plus whether the requesting student already holds an enrollment.
type CourseWithEnrollment struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.CourseStatus `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	IsEnrolled  bool                `json:"is_enrolled"`
}

// EnrollmentWithCourse is an enrollment row joined with its course fields.
type EnrollmentWithCourse struct {
	ID          uint                `json:"id"`
	UserID      uint                `json:"user_id"`
	CourseID    uint                `json:"course_id"`
	CreatedAt   time.Time           `json:"created_at"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.CourseStatus `json:"status"`
}

// EnrollmentDetails is an enrollment row joined with user and course display
// fields, used by the admin enrollment views.
type EnrollmentDetails struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	CourseID    uint      `json:"course_id"`
	CreatedAt   time.Time `json:"created_at"`
	UserName    string    `json:"user_name"`
	UserEmail   string    `json:"user_email"`
	CourseTitle string    `json:"course_title"`
}

// ===== REPOSITORY INTERFACES =====

// UserRepository owns user records and password hashing. Uniqueness of email
// and phone is enforced by the storage layer's unique indexes; conflicts come
// back as ErrDuplicateEmail / ErrDuplicatePhone.
type UserRepository interface {
	// Create hashes the plaintext password and persists the user. The
	// plaintext is never stored.
	Create(ctx context.Context, user *models.User, password string) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context, filters UserFilters) ([]*models.User, error)
	// Update applies name/email/phone; a nil avatarPath leaves the stored
	// avatar untouched.
	Update(ctx context.Context, id uint, name, email, phone string, avatarPath *string) error
	UpdatePassword(ctx context.Context, id uint, password string) error
	// Delete removes the user; enrollment rows go with it via the cascading
	// constraint.
	Delete(ctx context.Context, id uint) error
	EmailExists(ctx context.Context, email string, excludeID uint) (bool, error)
	PhoneExists(ctx context.Context, phone string, excludeID uint) (bool, error)
	CountStudents(ctx context.Context) (int64, error)
}

// CourseRepository owns course records.
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id uint) (*models.Course, error)
	List(ctx context.Context, filters CourseFilters) ([]*models.Course, error)
	Update(ctx context.Context, id uint, title, description string, status models.CourseStatus) error
	Delete(ctx context.Context, id uint) error
	CountActive(ctx context.Context) (int64, error)
	// ListWithEnrollmentFlag returns active courses with the is_enrolled flag
	// for the given user, computed in a single left-join query.
	ListWithEnrollmentFlag(ctx context.Context, userID uint) ([]*CourseWithEnrollment, error)
}

// EnrollmentRepository owns the user-course relation.
type EnrollmentRepository interface {
	// Enroll inserts the pair; a duplicate submission surfaces as
	// ErrAlreadyEnrolled from the unique constraint, never as a second row.
	Enroll(ctx context.Context, userID, courseID uint) (*models.Enrollment, error)
	Unenroll(ctx context.Context, userID, courseID uint) error
	IsEnrolled(ctx context.Context, userID, courseID uint) (bool, error)
	ListForUser(ctx context.Context, userID uint) ([]*EnrollmentWithCourse, error)
	ListWithDetails(ctx context.Context, filters EnrollmentFilters) ([]*EnrollmentDetails, error)
	DeleteByID(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

// Repository aggregates the entity repositories.
type Repository interface {
	User() UserRepository
	Course() CourseRepository
	Enrollment() EnrollmentRepository

	// WithTransaction runs fn against a repository bound to one transaction.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}
