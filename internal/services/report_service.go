package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/abosaleg/enrollment-service/internal/models"
	"github.com/abosaleg/enrollment-service/internal/repositories"
)

type reportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewReportService(repo repositories.Repository, logger *slog.Logger) ReportService {
	return &reportService{repo: repo, logger: logger}
}

// EnrollmentsWorkbook exports the admin enrollment listing, honoring the same
// user/course filters as the on-screen view.
func (s *reportService) EnrollmentsWorkbook(ctx context.Context, filters repositories.EnrollmentFilters) (*excelize.File, error) {
	rows, err := s.repo.Enrollment().ListWithDetails(ctx, filters)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Enrollments"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headers := []any{"ID", "Student", "Email", "Course", "Enrolled At"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("write header row: %w", err)
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []any{row.ID, row.UserName, row.UserEmail, row.CourseTitle, row.CreatedAt.Format("2006-01-02 15:04")}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write enrollment row: %w", err)
		}
	}

	s.logger.Info("enrollment report generated", "rows", len(rows))
	return f, nil
}

// StudentsWorkbook exports the student roster.
func (s *reportService) StudentsWorkbook(ctx context.Context) (*excelize.File, error) {
	role := models.RoleStudent
	students, err := s.repo.User().List(ctx, repositories.UserFilters{Role: &role})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Students"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headers := []any{"ID", "Name", "Email", "Phone", "Registered At"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("write header row: %w", err)
	}

	for i, student := range students {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []any{student.ID, student.Name, student.Email, student.Phone, student.CreatedAt.Format("2006-01-02 15:04")}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write student row: %w", err)
		}
	}

	s.logger.Info("student report generated", "rows", len(students))
	return f, nil
}
