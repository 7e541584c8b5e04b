package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/abosaleg/enrollment-service/internal/repositories"
)

// Postgres error codes we classify into typed repository errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateError maps storage-level failures onto the repository error
// taxonomy. Unique-index violations become the matching conflict error, so
// uniqueness never depends on a check-then-insert sequence; record-not-found
// becomes the entity's not-found sentinel; anything else is wrapped.
func translateError(err error, op string, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	if classified := classifyConstraint(err); classified != nil {
		return classified
	}
	return fmt.Errorf("%s: %w", op, err)
}

// classifyConstraint inspects a Postgres constraint violation and returns the
// typed error for the constraint that fired, or nil when err is not one.
func classifyConstraint(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		switch pgErr.ConstraintName {
		case "idx_users_email":
			return repositories.ErrDuplicateEmail
		case "idx_users_phone":
			return repositories.ErrDuplicatePhone
		case "idx_enrollments_user_course":
			return repositories.ErrAlreadyEnrolled
		}
	case pgForeignKeyViolation:
		switch pgErr.ConstraintName {
		case "fk_users_enrollments":
			return repositories.ErrUserNotFound
		case "fk_courses_enrollments":
			return repositories.ErrCourseNotFound
		}
	}
	return nil
}

// byRecency orders list queries newest-first, matching every listing the
// admin and student views expose.
func byRecency(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}
