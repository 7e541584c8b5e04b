package services

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/abosaleg/enrollment-service/internal/cache"
	"github.com/abosaleg/enrollment-service/internal/events"
	"github.com/abosaleg/enrollment-service/internal/models"
	"github.com/abosaleg/enrollment-service/internal/validator"
)

func seedDashboardData(t *testing.T, repo *mockRepository) {
	t.Helper()
	ctx := context.Background()

	users := []*models.User{
		{Name: "Jane Doe", Email: "jane@example.com", Phone: "01234567890", Role: models.RoleStudent},
		{Name: "Omar Ali", Email: "omar@example.com", Phone: "09876543210", Role: models.RoleStudent},
		{Name: "Root", Email: "admin@example.com", Phone: "01111111111", Role: models.RoleAdmin},
	}
	for _, u := range users {
		if err := repo.User().Create(ctx, u, "Valid123!"); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	active := &models.Course{Title: "Intro to Go", Description: "desc", Status: models.CourseActive}
	archived := &models.Course{Title: "Old Course", Description: "desc", Status: models.CourseArchived}
	for _, c := range []*models.Course{active, archived} {
		if err := repo.Course().Create(ctx, c); err != nil {
			t.Fatalf("seed course: %v", err)
		}
	}

	if _, err := repo.Enrollment().Enroll(ctx, users[0].ID, active.ID); err != nil {
		t.Fatalf("seed enrollment: %v", err)
	}
}

func TestDashboardService_Stats(t *testing.T) {
	repo := newMockRepository()
	seedDashboardData(t, repo)
	stats := cache.NewCacheHelper(nil, cache.StatsCacheConfig.Prefix)
	svc := NewDashboardService(repo, stats, discardLogger())

	got, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	// Admins and archived courses stay out of the counters.
	if got.Students != 2 || got.ActiveCourses != 1 || got.Enrollments != 1 {
		t.Errorf("stats = %+v, want {2 1 1}", got)
	}
}

func TestDashboardService_StatsCached(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	repo := newMockRepository()
	seedDashboardData(t, repo)
	stats := cache.NewCacheHelper(client, cache.StatsCacheConfig.Prefix)
	svc := NewDashboardService(repo, stats, discardLogger())
	ctx := context.Background()

	first, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	// A direct repository mutation is invisible while the cache is fresh.
	course := &models.Course{Title: "Intro to SQL", Description: "desc", Status: models.CourseActive}
	if err := repo.Course().Create(ctx, course); err != nil {
		t.Fatalf("Create course: %v", err)
	}

	cached, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if cached.ActiveCourses != first.ActiveCourses {
		t.Errorf("cached ActiveCourses = %d, want stale %d", cached.ActiveCourses, first.ActiveCourses)
	}

	mr.FastForward(cache.StatsCacheConfig.TTL * 2)

	fresh, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if fresh.ActiveCourses != first.ActiveCourses+1 {
		t.Errorf("fresh ActiveCourses = %d, want %d", fresh.ActiveCourses, first.ActiveCourses+1)
	}
}

func TestDashboardService_StatsInvalidatedByMutation(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	repo := newMockRepository()
	seedDashboardData(t, repo)
	stats := cache.NewCacheHelper(client, cache.StatsCacheConfig.Prefix)
	dashboard := NewDashboardService(repo, stats, discardLogger())
	courses := NewCourseService(repo, validator.New(), events.NewMockPublisher(), stats, discardLogger())
	ctx := context.Background()

	before, err := dashboard.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	// Mutations through the services drop the cached counters.
	if _, err := courses.Create(ctx, &CourseCreateRequest{Title: "Intro to SQL", Description: "desc"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	after, err := dashboard.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if after.ActiveCourses != before.ActiveCourses+1 {
		t.Errorf("ActiveCourses = %d, want %d", after.ActiveCourses, before.ActiveCourses+1)
	}
}
