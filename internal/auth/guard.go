package auth

import (
	"context"

	"github.com/abosaleg/enrollment-service/internal/models"
)

// Decision is the guard's verdict on the current session. The core never
// performs the redirect itself; the transport layer acts on the decision.
type Decision struct {
	Allowed        bool   `json:"allowed"`
	RedirectReason string `json:"redirect_reason,omitempty"`
}

func Allowed() Decision {
	return Decision{Allowed: true}
}

func DenyRedirect(reason string) Decision {
	return Decision{Allowed: false, RedirectReason: reason}
}

// Guard classifies sessions into {Allowed, DenyRedirect}. It derives
// everything from session state and performs no transitions.
type Guard struct {
	sessions SessionStore
}

func NewGuard(sessions SessionStore) *Guard {
	return &Guard{sessions: sessions}
}

func (g *Guard) RequireLogin(ctx context.Context, token string) Decision {
	if _, err := g.sessions.Get(ctx, token); err != nil {
		return DenyRedirect("login required")
	}
	return Allowed()
}

func (g *Guard) RequireAdmin(ctx context.Context, token string) Decision {
	sess, err := g.sessions.Get(ctx, token)
	if err != nil {
		return DenyRedirect("login required")
	}
	switch sess.Role {
	case models.RoleAdmin:
		return Allowed()
	case models.RoleStudent:
		return DenyRedirect("admin access required")
	default:
		return DenyRedirect("unknown role")
	}
}

func (g *Guard) RequireStudent(ctx context.Context, token string) Decision {
	sess, err := g.sessions.Get(ctx, token)
	if err != nil {
		return DenyRedirect("login required")
	}
	switch sess.Role {
	case models.RoleStudent:
		return Allowed()
	case models.RoleAdmin:
		return DenyRedirect("student access required")
	default:
		return DenyRedirect("unknown role")
	}
}
