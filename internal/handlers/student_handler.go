package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abosaleg/enrollment-service/internal/auth"
	"github.com/abosaleg/enrollment-service/internal/services"
	"github.com/abosaleg/enrollment-service/internal/storage"
	"github.com/abosaleg/enrollment-service/internal/validator"
)

// StudentHandler serves the student views: the course catalog, the student's
// own enrollments and their profile.
type StudentHandler struct {
	BaseHandler
	services services.ServiceManager
	manager  *auth.Manager
	avatars  storage.AvatarStorage
}

func NewStudentHandler(sm services.ServiceManager, manager *auth.Manager, avatars storage.AvatarStorage, logger *slog.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler: NewBaseHandler(logger),
		services:    sm,
		manager:     manager,
		avatars:     avatars,
	}
}

// currentUserID resolves the caller from the session. The guard middleware
// has already ensured a student session exists.
func (h *StudentHandler) currentUserID(c *gin.Context) (uint, bool) {
	sess, err := h.manager.Session(c.Request.Context(), sessionToken(c))
	if err != nil {
		h.RespondError(c, err)
		return 0, false
	}
	return sess.UserID, true
}

// Catalog lists active courses with the caller's enrollment flags.
func (h *StudentHandler) Catalog(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	courses, err := h.services.Course().Catalog(c.Request.Context(), userID)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

func (h *StudentHandler) Enroll(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	courseID, err := pathID(c)
	if err != nil {
		h.RespondBadRequest(c, err)
		return
	}

	enrollment, err := h.services.Enrollment().Enroll(c.Request.Context(), userID, courseID)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, enrollment)
}

func (h *StudentHandler) Unenroll(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	courseID, err := pathID(c)
	if err != nil {
		h.RespondBadRequest(c, err)
		return
	}

	if err := h.services.Enrollment().Unenroll(c.Request.Context(), userID, courseID); err != nil {
		h.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MyCourses lists the caller's enrollments joined with course fields.
func (h *StudentHandler) MyCourses(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	rows, err := h.services.Enrollment().ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"enrollments": rows})
}

// UpdateProfile updates name/email/phone and, when a file is attached, the
// avatar. Without a file the stored avatar is kept.
func (h *StudentHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req validator.ProfileUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		h.RespondBadRequest(c, err)
		return
	}

	avatarPath, err := h.saveAvatarIfPresent(c)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	user, err := h.services.User().UpdateProfile(c.Request.Context(), userID, &req, avatarPath)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *StudentHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req validator.ChangePasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		h.RespondBadRequest(c, err)
		return
	}

	if err := h.services.User().ChangePassword(c.Request.Context(), userID, &req); err != nil {
		h.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *StudentHandler) saveAvatarIfPresent(c *gin.Context) (*string, error) {
	header, err := c.FormFile("avatar")
	if err != nil {
		return nil, nil
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	name, err := h.avatars.Save(c.Request.Context(), storage.Upload{
		Reader:      file,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		return nil, err
	}
	return &name, nil
}
