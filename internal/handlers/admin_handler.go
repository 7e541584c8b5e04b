package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/abosaleg/enrollment-service/internal/models"
	"github.com/abosaleg/enrollment-service/internal/repositories"
	"github.com/abosaleg/enrollment-service/internal/services"
	"github.com/abosaleg/enrollment-service/internal/validator"
)

// AdminHandler serves the admin views: student management, course management,
// enrollment management, dashboard counters and XLSX exports.
type AdminHandler struct {
	BaseHandler
	services services.ServiceManager
}

func NewAdminHandler(sm services.ServiceManager, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler: NewBaseHandler(logger),
		services:    sm,
	}
}

// ===== STUDENTS =====

func (h *AdminHandler) ListStudents(c *gin.Context) {
	role := models.RoleStudent
	users, err := h.services.User().List(c.Request.Context(), &role)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *AdminHandler) CreateStudent(c *gin.Context) {
	var req validator.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		h.RespondBadRequest(c, err)
		return
	}

	user, err := h.services.User().CreateStudent(c.Request.Context(), &req)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *AdminHandler) UpdateStudent(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.RespondBadRequest(c, err)
		return
	}

	var req validator.ProfileUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		h.RespondBadRequest(c, err)
		return
	}

	user, err := h.services.User().UpdateProfile(c.Request.Context(), id, &req, nil)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) DeleteStudent(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.RespondBadRequest(c, err)
		return
	}

	if err := h.services.User().Delete(c.Request.Context(), id); err != nil {
		h.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ===== COURSES =====

func (h *AdminHandler) ListCourses(c *gin.Context) {
	var status *models.CourseStatus
	if raw := c.Query("status"); raw != "" {
		s := models.CourseStatus(raw)
		if !s.Valid() {
			h.RespondBadRequest(c, fmt.Errorf("invalid status %q", raw))
			return
		}
		status = &s
	}

	courses, err := h.services.Course().List(c.Request.Context(), status)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

func (h *AdminHandler) CreateCourse(c *gin.Context) {
	var req validator.CourseCreateRequest
	if err := c.ShouldBind(&req); err != nil {
		h.RespondBadRequest(c, err)
		return
	}

	course, err := h.services.Course().Create(c.Request.Context(), &req)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

func (h *AdminHandler) UpdateCourse(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.RespondBadRequest(c, err)
		return
	}

	var req validator.CourseUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		h.RespondBadRequest(c, err)
		return
	}

	course, err := h.services.Course().Update(c.Request.Context(), id, &req)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *AdminHandler) DeleteCourse(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.RespondBadRequest(c, err)
		return
	}

	if err := h.services.Course().Delete(c.Request.Context(), id); err != nil {
		h.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ===== ENROLLMENTS =====

func (h *AdminHandler) ListEnrollments(c *gin.Context) {
	filters, err := enrollmentFilters(c)
	if err != nil {
		h.RespondBadRequest(c, err)
		return
	}

	rows, err := h.services.Enrollment().ListWithDetails(c.Request.Context(), filters)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"enrollments": rows})
}

func (h *AdminHandler) DeleteEnrollment(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.RespondBadRequest(c, err)
		return
	}

	if err := h.services.Enrollment().Remove(c.Request.Context(), id); err != nil {
		h.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ===== DASHBOARD & REPORTS =====

func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.services.Dashboard().Stats(c.Request.Context())
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) ExportEnrollments(c *gin.Context) {
	filters, err := enrollmentFilters(c)
	if err != nil {
		h.RespondBadRequest(c, err)
		return
	}

	workbook, err := h.services.Report().EnrollmentsWorkbook(c.Request.Context(), filters)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	h.streamWorkbook(c, workbook, "enrollments.xlsx")
}

func (h *AdminHandler) ExportStudents(c *gin.Context) {
	workbook, err := h.services.Report().StudentsWorkbook(c.Request.Context())
	if err != nil {
		h.RespondError(c, err)
		return
	}
	h.streamWorkbook(c, workbook, "students.xlsx")
}

func (h *AdminHandler) streamWorkbook(c *gin.Context, workbook *excelize.File, filename string) {
	defer workbook.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := workbook.Write(c.Writer); err != nil {
		h.logger.Error("failed to stream workbook", "error", err, "filename", filename)
	}
}

// ===== HELPERS =====

func pathID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", c.Param("id"))
	}
	return uint(id), nil
}

func enrollmentFilters(c *gin.Context) (repositories.EnrollmentFilters, error) {
	var filters repositories.EnrollmentFilters

	if raw := c.Query("user_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return filters, fmt.Errorf("invalid user_id %q", raw)
		}
		userID := uint(id)
		filters.UserID = &userID
	}
	if raw := c.Query("course_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return filters, fmt.Errorf("invalid course_id %q", raw)
		}
		courseID := uint(id)
		filters.CourseID = &courseID
	}
	return filters, nil
}
