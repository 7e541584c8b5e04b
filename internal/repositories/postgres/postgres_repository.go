package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/abosaleg/enrollment-service/internal/auth"
	"github.com/abosaleg/enrollment-service/internal/repositories"
)

// PostgresRepository implements the aggregate Repository interface over one
// gorm connection.
type PostgresRepository struct {
	db     *gorm.DB
	hasher auth.PasswordHasher

	user       repositories.UserRepository
	course     repositories.CourseRepository
	enrollment repositories.EnrollmentRepository
}

func NewPostgresRepository(db *gorm.DB, hasher auth.PasswordHasher) repositories.Repository {
	return &PostgresRepository{
		db:         db,
		hasher:     hasher,
		user:       NewUserRepository(db, hasher),
		course:     NewCourseRepository(db),
		enrollment: NewEnrollmentRepository(db),
	}
}

func (r *PostgresRepository) User() repositories.UserRepository {
	return r.user
}

func (r *PostgresRepository) Course() repositories.CourseRepository {
	return r.course
}

func (r *PostgresRepository) Enrollment() repositories.EnrollmentRepository {
	return r.enrollment
}

// WithTransaction runs fn against a repository whose sub-repositories all
// share one transaction. fn returning an error rolls everything back.
func (r *PostgresRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewPostgresRepository(tx, r.hasher))
	})
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *PostgresRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
