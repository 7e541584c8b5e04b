package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/abosaleg/enrollment-service/internal/models"
	"github.com/abosaleg/enrollment-service/internal/repositories"
)

// mockRepository is an in-memory repositories.Repository. It mirrors the
// storage layer's behavior where the services depend on it: duplicate
// conflicts, cascading deletes and recency ordering.
type mockRepository struct {
	users       *mockUserRepo
	courses     *mockCourseRepo
	enrollments *mockEnrollmentRepo
}

func newMockRepository() *mockRepository {
	r := &mockRepository{
		users:       &mockUserRepo{users: make(map[uint]*models.User), nextID: 1},
		courses:     &mockCourseRepo{courses: make(map[uint]*models.Course), nextID: 1},
		enrollments: &mockEnrollmentRepo{enrollments: make(map[uint]*models.Enrollment), nextID: 1},
	}
	r.users.root = r
	r.courses.root = r
	r.enrollments.root = r
	return r
}

func (r *mockRepository) User() repositories.UserRepository             { return r.users }
func (r *mockRepository) Course() repositories.CourseRepository         { return r.courses }
func (r *mockRepository) Enrollment() repositories.EnrollmentRepository { return r.enrollments }

func (r *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(r)
}

func (r *mockRepository) Ping(ctx context.Context) error { return nil }
func (r *mockRepository) Close() error                   { return nil }

// ----- users -----

type mockUserRepo struct {
	root   *mockRepository
	users  map[uint]*models.User
	nextID uint
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User, password string) error {
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return repositories.ErrDuplicateEmail
		}
		if existing.Phone == user.Phone {
			return repositories.ErrDuplicatePhone
		}
	}
	user.ID = m.nextID
	user.PasswordHash = "hashed:" + password
	user.CreatedAt = time.Now()
	m.nextID++
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepo) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, error) {
	var out []*models.User
	for _, u := range m.users {
		if filters.Role != nil && u.Role != *filters.Role {
			continue
		}
		copied := *u
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockUserRepo) Update(ctx context.Context, id uint, name, email, phone string, avatarPath *string) error {
	u, ok := m.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Name, u.Email, u.Phone = name, email, phone
	if avatarPath != nil {
		u.AvatarPath = avatarPath
	}
	return nil
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id uint, password string) error {
	u, ok := m.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.PasswordHash = "hashed:" + password
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := m.users[id]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(m.users, id)
	// Cascade: enrollments go with the user.
	for eid, e := range m.root.enrollments.enrollments {
		if e.UserID == id {
			delete(m.root.enrollments.enrollments, eid)
		}
	}
	return nil
}

func (m *mockUserRepo) EmailExists(ctx context.Context, email string, excludeID uint) (bool, error) {
	for _, u := range m.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) PhoneExists(ctx context.Context, phone string, excludeID uint) (bool, error) {
	for _, u := range m.users {
		if u.Phone == phone && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) CountStudents(ctx context.Context) (int64, error) {
	var n int64
	for _, u := range m.users {
		if u.Role == models.RoleStudent {
			n++
		}
	}
	return n, nil
}

// ----- courses -----

type mockCourseRepo struct {
	root    *mockRepository
	courses map[uint]*models.Course
	nextID  uint
}

func (m *mockCourseRepo) Create(ctx context.Context, course *models.Course) error {
	course.ID = m.nextID
	course.CreatedAt = time.Now()
	m.nextID++
	stored := *course
	m.courses[course.ID] = &stored
	return nil
}

func (m *mockCourseRepo) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	c, ok := m.courses[id]
	if !ok {
		return nil, repositories.ErrCourseNotFound
	}
	copied := *c
	return &copied, nil
}

func (m *mockCourseRepo) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, error) {
	var out []*models.Course
	for _, c := range m.courses {
		if filters.Status != nil && c.Status != *filters.Status {
			continue
		}
		copied := *c
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockCourseRepo) Update(ctx context.Context, id uint, title, description string, status models.CourseStatus) error {
	c, ok := m.courses[id]
	if !ok {
		return repositories.ErrCourseNotFound
	}
	c.Title, c.Description, c.Status = title, description, status
	return nil
}

func (m *mockCourseRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := m.courses[id]; !ok {
		return repositories.ErrCourseNotFound
	}
	delete(m.courses, id)
	for eid, e := range m.root.enrollments.enrollments {
		if e.CourseID == id {
			delete(m.root.enrollments.enrollments, eid)
		}
	}
	return nil
}

func (m *mockCourseRepo) CountActive(ctx context.Context) (int64, error) {
	var n int64
	for _, c := range m.courses {
		if c.Status == models.CourseActive {
			n++
		}
	}
	return n, nil
}

func (m *mockCourseRepo) ListWithEnrollmentFlag(ctx context.Context, userID uint) ([]*repositories.CourseWithEnrollment, error) {
	var out []*repositories.CourseWithEnrollment
	for _, c := range m.courses {
		if c.Status != models.CourseActive {
			continue
		}
		enrolled := false
		for _, e := range m.root.enrollments.enrollments {
			if e.UserID == userID && e.CourseID == c.ID {
				enrolled = true
				break
			}
		}
		out = append(out, &repositories.CourseWithEnrollment{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
			Status:      c.Status,
			CreatedAt:   c.CreatedAt,
			IsEnrolled:  enrolled,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ----- enrollments -----

type mockEnrollmentRepo struct {
	root        *mockRepository
	enrollments map[uint]*models.Enrollment
	nextID      uint
}

func (m *mockEnrollmentRepo) Enroll(ctx context.Context, userID, courseID uint) (*models.Enrollment, error) {
	for _, e := range m.enrollments {
		if e.UserID == userID && e.CourseID == courseID {
			return nil, repositories.ErrAlreadyEnrolled
		}
	}
	e := &models.Enrollment{ID: m.nextID, UserID: userID, CourseID: courseID, CreatedAt: time.Now()}
	m.nextID++
	stored := *e
	m.enrollments[e.ID] = &stored
	return e, nil
}

func (m *mockEnrollmentRepo) Unenroll(ctx context.Context, userID, courseID uint) error {
	for id, e := range m.enrollments {
		if e.UserID == userID && e.CourseID == courseID {
			delete(m.enrollments, id)
			return nil
		}
	}
	return repositories.ErrNotEnrolled
}

func (m *mockEnrollmentRepo) IsEnrolled(ctx context.Context, userID, courseID uint) (bool, error) {
	for _, e := range m.enrollments {
		if e.UserID == userID && e.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockEnrollmentRepo) ListForUser(ctx context.Context, userID uint) ([]*repositories.EnrollmentWithCourse, error) {
	var out []*repositories.EnrollmentWithCourse
	for _, e := range m.enrollments {
		if e.UserID != userID {
			continue
		}
		course := m.root.courses.courses[e.CourseID]
		out = append(out, &repositories.EnrollmentWithCourse{
			ID:          e.ID,
			UserID:      e.UserID,
			CourseID:    e.CourseID,
			CreatedAt:   e.CreatedAt,
			Title:       course.Title,
			Description: course.Description,
			Status:      course.Status,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockEnrollmentRepo) ListWithDetails(ctx context.Context, filters repositories.EnrollmentFilters) ([]*repositories.EnrollmentDetails, error) {
	var out []*repositories.EnrollmentDetails
	for _, e := range m.enrollments {
		if filters.UserID != nil && e.UserID != *filters.UserID {
			continue
		}
		if filters.CourseID != nil && e.CourseID != *filters.CourseID {
			continue
		}
		user := m.root.users.users[e.UserID]
		course := m.root.courses.courses[e.CourseID]
		out = append(out, &repositories.EnrollmentDetails{
			ID:          e.ID,
			UserID:      e.UserID,
			CourseID:    e.CourseID,
			CreatedAt:   e.CreatedAt,
			UserName:    user.Name,
			UserEmail:   user.Email,
			CourseTitle: course.Title,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockEnrollmentRepo) DeleteByID(ctx context.Context, id uint) error {
	if _, ok := m.enrollments[id]; !ok {
		return repositories.ErrEnrollmentNotFound
	}
	delete(m.enrollments, id)
	return nil
}

func (m *mockEnrollmentRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.enrollments)), nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
