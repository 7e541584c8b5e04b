package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abosaleg/enrollment-service/internal/events"
	"github.com/abosaleg/enrollment-service/internal/models"
	"github.com/abosaleg/enrollment-service/internal/repositories"
	"github.com/abosaleg/enrollment-service/internal/validator"
)

// ErrInvalidCredentials is returned for every login failure. Unknown email
// and wrong password are indistinguishable in the outward result.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Manager is the session-backed identity layer: it authenticates credentials
// against the credential store and owns the caller's session lifecycle
// (Anonymous -> Authenticated -> Anonymous).
type Manager struct {
	users     repositories.UserRepository
	sessions  SessionStore
	hasher    PasswordHasher
	validator *validator.Validator
	publisher events.Publisher
	logger    *slog.Logger
}

func NewManager(
	users repositories.UserRepository,
	sessions SessionStore,
	hasher PasswordHasher,
	v *validator.Validator,
	publisher events.Publisher,
	logger *slog.Logger,
) *Manager {
	return &Manager{
		users:     users,
		sessions:  sessions,
		hasher:    hasher,
		validator: v,
		publisher: publisher,
		logger:    logger,
	}
}

// Login verifies the credentials and establishes a session. It returns the
// user together with the new session token.
func (m *Manager) Login(ctx context.Context, req *validator.LoginRequest) (*models.User, string, error) {
	req.Normalize()
	if errs := m.validator.Validate(req); len(errs) > 0 {
		return nil, "", errs
	}

	user, err := m.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("look up user: %w", err)
	}

	if err := m.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := m.establishSession(ctx, user)
	if err != nil {
		return nil, "", err
	}

	m.logger.Info("user logged in", "user_id", user.ID, "role", user.Role)
	return user, token, nil
}

// Register creates a student account and immediately authenticates it.
// Duplicate email or phone surfaces from the credential store's constraints.
func (m *Manager) Register(ctx context.Context, req *validator.RegisterRequest, avatarPath *string) (*models.User, string, error) {
	req.Normalize()
	if errs := m.validator.Validate(req); len(errs) > 0 {
		return nil, "", errs
	}

	user := &models.User{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Role:       models.RoleStudent,
		AvatarPath: avatarPath,
	}
	if err := m.users.Create(ctx, user, req.Password); err != nil {
		return nil, "", err
	}

	token, err := m.establishSession(ctx, user)
	if err != nil {
		return nil, "", err
	}

	events.SafePublish(ctx, m.publisher, m.logger, events.TopicUserRegistered, events.UserEvent{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	})

	m.logger.Info("user registered", "user_id", user.ID)
	return user, token, nil
}

// Logout clears the caller's session. Logging out while anonymous is a no-op.
func (m *Manager) Logout(ctx context.Context, token string) error {
	return m.sessions.Delete(ctx, token)
}

// CurrentUser re-resolves the authoritative user record for the session. The
// cached session fields are only trusted for fast-path role checks.
func (m *Manager) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	sess, err := m.Session(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := m.users.GetByID(ctx, sess.UserID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			// The account was deleted out from under the session.
			_ = m.sessions.Delete(ctx, token)
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("resolve current user: %w", err)
	}
	return user, nil
}

// Session returns the fast-path session state for the token.
func (m *Manager) Session(ctx context.Context, token string) (*Session, error) {
	return m.sessions.Get(ctx, token)
}

func (m *Manager) IsLoggedIn(ctx context.Context, token string) bool {
	_, err := m.sessions.Get(ctx, token)
	return err == nil
}

func (m *Manager) IsAdmin(ctx context.Context, token string) bool {
	sess, err := m.sessions.Get(ctx, token)
	return err == nil && sess.Role == models.RoleAdmin
}

func (m *Manager) IsStudent(ctx context.Context, token string) bool {
	sess, err := m.sessions.Get(ctx, token)
	return err == nil && sess.Role == models.RoleStudent
}

func (m *Manager) establishSession(ctx context.Context, user *models.User) (string, error) {
	token, err := m.sessions.Create(ctx, &Session{
		UserID: user.ID,
		Role:   user.Role,
		Name:   user.Name,
	})
	if err != nil {
		return "", fmt.Errorf("establish session: %w", err)
	}
	return token, nil
}
