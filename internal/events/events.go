package events

import (
	"context"
	"log/slog"

	"github.com/abosaleg/enrollment-service/internal/models"
)

// Topics for the domain events emitted after successful mutations.
const (
	TopicUserRegistered    = "user.registered"
	TopicUserDeleted       = "user.deleted"
	TopicCourseCreated     = "course.created"
	TopicCourseUpdated     = "course.updated"
	TopicCourseDeleted     = "course.deleted"
	TopicEnrollmentCreated = "enrollment.created"
	TopicEnrollmentRemoved = "enrollment.removed"
)

type UserEvent struct {
	ID    uint        `json:"id"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

type CourseEvent struct {
	ID     uint                `json:"id"`
	Title  string              `json:"title"`
	Status models.CourseStatus `json:"status"`
}

type EnrollmentEvent struct {
	ID       uint `json:"id"`
	UserID   uint `json:"user_id"`
	CourseID uint `json:"course_id"`
}

// Publisher emits domain events. Publishing is best-effort: failures are
// logged by callers and never fail the originating operation.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
	Close() error
}

// SafePublish publishes and logs a failure instead of propagating it.
func SafePublish(ctx context.Context, pub Publisher, logger *slog.Logger, topic string, payload any) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, topic, payload); err != nil {
		logger.ErrorContext(ctx, "failed to publish event", "topic", topic, "error", err)
	}
}
