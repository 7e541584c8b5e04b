package services

import (
	"log/slog"

	"github.com/abosaleg/enrollment-service/internal/cache"
	"github.com/abosaleg/enrollment-service/internal/events"
	"github.com/abosaleg/enrollment-service/internal/repositories"
	"github.com/abosaleg/enrollment-service/internal/validator"
)

type serviceManager struct {
	user       UserService
	course     CourseService
	enrollment EnrollmentService
	dashboard  DashboardService
	report     ReportService
}

// NewServiceManager wires every service against the shared repository,
// validator, event publisher and stats cache.
func NewServiceManager(
	repo repositories.Repository,
	v *validator.Validator,
	publisher events.Publisher,
	stats *cache.CacheHelper,
	logger *slog.Logger,
) ServiceManager {
	return &serviceManager{
		user:       NewUserService(repo, v, publisher, stats, logger),
		course:     NewCourseService(repo, v, publisher, stats, logger),
		enrollment: NewEnrollmentService(repo, publisher, stats, logger),
		dashboard:  NewDashboardService(repo, stats, logger),
		report:     NewReportService(repo, logger),
	}
}

func (m *serviceManager) User() UserService             { return m.user }
func (m *serviceManager) Course() CourseService         { return m.course }
func (m *serviceManager) Enrollment() EnrollmentService { return m.enrollment }
func (m *serviceManager) Dashboard() DashboardService   { return m.dashboard }
func (m *serviceManager) Report() ReportService         { return m.report }
