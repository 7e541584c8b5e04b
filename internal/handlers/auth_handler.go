package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abosaleg/enrollment-service/internal/auth"
	"github.com/abosaleg/enrollment-service/internal/storage"
	"github.com/abosaleg/enrollment-service/internal/validator"
)

type AuthHandler struct {
	BaseHandler
	manager    *auth.Manager
	avatars    storage.AvatarStorage
	sessionTTL int
}

func NewAuthHandler(manager *auth.Manager, avatars storage.AvatarStorage, sessionTTLSeconds int, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		manager:     manager,
		avatars:     avatars,
		sessionTTL:  sessionTTLSeconds,
	}
}

// Register creates a student account, stores the optional avatar first, and
// logs the new user straight in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req validator.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		h.RespondBadRequest(c, err)
		return
	}

	avatarPath, err := h.saveAvatarIfPresent(c)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	user, token, err := h.manager.Register(c.Request.Context(), &req, avatarPath)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req validator.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.RespondBadRequest(c, err)
		return
	}

	user, token, err := h.manager.Login(c.Request.Context(), &req)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, user)
}

// Logout clears the session; calling it while anonymous is still a 204.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.manager.Logout(c.Request.Context(), sessionToken(c)); err != nil {
		h.RespondError(c, err)
		return
	}

	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

// Me returns the authoritative record for the current session.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.manager.CurrentUser(c.Request.Context(), sessionToken(c))
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(sessionCookieName, token, h.sessionTTL, "/", "", false, true)
}

// saveAvatarIfPresent stores an uploaded avatar and returns its stored name,
// or nil when the form carries no file.
func (h *AuthHandler) saveAvatarIfPresent(c *gin.Context) (*string, error) {
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
