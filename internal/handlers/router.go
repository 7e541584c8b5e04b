package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abosaleg/enrollment-service/internal/auth"
	"github.com/abosaleg/enrollment-service/internal/services"
	"github.com/abosaleg/enrollment-service/internal/storage"
)

type HandlerManager struct {
	authHandler    *AuthHandler
	adminHandler   *AdminHandler
	studentHandler *StudentHandler
	guard          *auth.Guard
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	manager *auth.Manager,
	guard *auth.Guard,
	avatars storage.AvatarStorage,
	sessionTTLSeconds int,
	logger *slog.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:    NewAuthHandler(manager, avatars, sessionTTLSeconds, logger),
		adminHandler:   NewAdminHandler(serviceManager, logger),
		studentHandler: NewStudentHandler(serviceManager, manager, avatars, logger),
		guard:          guard,
	}
}

// SetupRoutes sets up all routes. The guard middlewares enforce the role
// split: /admin requires an admin session, /student a student one.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.Use(SessionTokenMiddleware())

	router.POST("/register", hm.authHandler.Register)
	router.POST("/login", hm.authHandler.Login)
	router.POST("/logout", hm.authHandler.Logout)
	router.GET("/me", RequireLogin(hm.guard), hm.authHandler.Me)

	admin := router.Group("/admin")
	admin.Use(RequireAdmin(hm.guard))
	{
		admin.GET("/dashboard", hm.adminHandler.Dashboard)

		admin.GET("/students", hm.adminHandler.ListStudents)
		admin.POST("/students", hm.adminHandler.CreateStudent)
		admin.PUT("/students/:id", hm.adminHandler.UpdateStudent)
		admin.DELETE("/students/:id", hm.adminHandler.DeleteStudent)

		admin.GET("/courses", hm.adminHandler.ListCourses)
		admin.POST("/courses", hm.adminHandler.CreateCourse)
		admin.PUT("/courses/:id", hm.adminHandler.UpdateCourse)
		admin.DELETE("/courses/:id", hm.adminHandler.DeleteCourse)

		admin.GET("/enrollments", hm.adminHandler.ListEnrollments)
		admin.DELETE("/enrollments/:id", hm.adminHandler.DeleteEnrollment)

		admin.GET("/reports/enrollments", hm.adminHandler.ExportEnrollments)
		admin.GET("/reports/students", hm.adminHandler.ExportStudents)
	}

	student := router.Group("/student")
	student.Use(RequireStudent(hm.guard))
	{
		student.GET("/courses", hm.studentHandler.Catalog)
		student.POST("/courses/:id/enroll", hm.studentHandler.Enroll)
		student.DELETE("/courses/:id/enroll", hm.studentHandler.Unenroll)
		student.GET("/enrollments", hm.studentHandler.MyCourses)

		student.PUT("/profile", hm.studentHandler.UpdateProfile)
		student.PUT("/profile/password", hm.studentHandler.ChangePassword)
	}
}
