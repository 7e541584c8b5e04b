package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/abosaleg/enrollment-service/internal/repositories"
)

func pgError(code, constraint string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "nil passes through", err: nil, want: nil},
		{
			name: "record not found becomes sentinel",
			err:  gorm.ErrRecordNotFound,
			want: repositories.ErrUserNotFound,
		},
		{
			name: "email unique violation",
			err:  pgError(pgUniqueViolation, "idx_users_email"),
			want: repositories.ErrDuplicateEmail,
		},
		{
			name: "phone unique violation",
			err:  pgError(pgUniqueViolation, "idx_users_phone"),
			want: repositories.ErrDuplicatePhone,
		},
		{
			name: "enrollment pair unique violation",
			err:  pgError(pgUniqueViolation, "idx_enrollments_user_course"),
			want: repositories.ErrAlreadyEnrolled,
		},
		{
			name: "enrollment user fk violation",
			err:  pgError(pgForeignKeyViolation, "fk_users_enrollments"),
			want: repositories.ErrUserNotFound,
		},
		{
			name: "enrollment course fk violation",
			err:  pgError(pgForeignKeyViolation, "fk_courses_enrollments"),
			want: repositories.ErrCourseNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.err, "create user", repositories.ErrUserNotFound)
			if !errors.Is(got, tt.want) {
				t.Errorf("translateError = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTranslateErrorWrapsUnknown(t *testing.T) {
	cause := errors.New("connection reset")
	got := translateError(cause, "list courses", repositories.ErrCourseNotFound)

	if !errors.Is(got, cause) {
		t.Errorf("wrapped error lost its cause: %v", got)
	}
	if repositories.IsNotFoundError(got) || repositories.IsConflictError(got) {
		t.Errorf("unknown error misclassified: %v", got)
	}
}

func TestTranslateErrorWrappedConstraint(t *testing.T) {
	// Constraint violations still classify when something wrapped them on the
	// way up.
	wrapped := fmt.Errorf("insert enrollment: %w", pgError(pgUniqueViolation, "idx_enrollments_user_course"))
	got := translateError(wrapped, "enroll", repositories.ErrEnrollmentNotFound)

	if !errors.Is(got, repositories.ErrAlreadyEnrolled) {
		t.Errorf("translateError = %v, want ErrAlreadyEnrolled", got)
	}
}

func TestClassifyConstraintUnknownConstraint(t *testing.T) {
	// A violation on a constraint we do not own is not classified; it surfaces
	// wrapped instead of being mislabeled as a known conflict.
	if got := classifyConstraint(pgError(pgUniqueViolation, "idx_something_else")); got != nil {
		t.Errorf("classifyConstraint = %v, want nil", got)
	}
	if got := classifyConstraint(errors.New("plain error")); got != nil {
		t.Errorf("classifyConstraint = %v, want nil", got)
	}
}
