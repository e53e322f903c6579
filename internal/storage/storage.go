package storage

import (
	"context"
	"errors"

	"shiftease/internal/ledger"
	"shiftease/internal/models"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrUserExists    = errors.New("user already exists")
)

// Storage is implemented by every backend selectable from config.
type Storage interface {
	CreateEvent(ctx context.Context, fields models.EventFields) (*models.Event, error)
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	GetAllEvents(ctx context.Context) ([]models.Event, error)
	UpdateEvent(ctx context.Context, id string, fields models.EventFields) (*models.Event, error)
	DeleteEvent(ctx context.Context, id string) error

	RegisterForEvent(ctx context.Context, eventID, userID string) (ledger.Status, error)
	UnregisterFromEvent(ctx context.Context, eventID, userID string) (ledger.Removal, error)

	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUserProfile(ctx context.Context, id string, profile models.Profile) (*models.User, error)
	SetUserRole(ctx context.Context, email string, role models.Role) error

	CreateFeedback(ctx context.Context, feedback models.Feedback) (*models.Feedback, error)
	GetAllFeedback(ctx context.Context) ([]models.Feedback, error)

	PendingNotifications(ctx context.Context, limit, maxAttempts int) ([]models.Notification, error)
	MarkNotificationSent(ctx context.Context, id int64) error
	MarkNotificationFailed(ctx context.Context, id int64, reason string) error

	Close() error
}

// NotificationKind maps a successful registration to the notice its user gets.
func NotificationKind(status ledger.Status) models.NotificationKind {
	if status == ledger.StatusStandby {
		return models.NotificationStandby
	}
	return models.NotificationRegular
}
