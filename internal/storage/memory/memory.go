// Package memory is an in-process Storage. Ledger changes are serialised per
// event id with a keyed mutex.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"shiftease/internal/ledger"
	"shiftease/internal/lib/keymutex"
	"shiftease/internal/models"
	"shiftease/internal/storage"
)

type Storage struct {
	mu            sync.RWMutex
	events        map[string]*models.Event
	users         map[string]*models.User
	emails        map[string]string
	feedback      []models.Feedback
	notifications []*models.Notification
	nextNoticeID  int64

	eventLocks *keymutex.KeyMutex
	now        func() time.Time
}

func New() *Storage {
	return &Storage{
		events:     make(map[string]*models.Event),
		users:      make(map[string]*models.User),
		emails:     make(map[string]string),
		eventLocks: keymutex.New(),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *Storage) Close() error {
	return nil
}

func (s *Storage) CreateEvent(_ context.Context, fields models.EventFields) (*models.Event, error) {
	e := &models.Event{
		ID:                   uuid.New().String(),
		Registrations:        []models.Registration{},
		StandbyRegistrations: []models.Registration{},
		CreatedAt:            s.now(),
	}
	fields.Apply(e)

	s.mu.Lock()
	s.events[e.ID] = e
	s.mu.Unlock()

	return e.Clone(), nil
}

func (s *Storage) GetEvent(_ context.Context, id string) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.events[id]
	if !ok {
		return nil, storage.ErrEventNotFound
	}

	return e.Clone(), nil
}

func (s *Storage) GetAllEvents(_ context.Context) ([]models.Event, error) {
	s.mu.RLock()
	events := make([]models.Event, 0, len(s.events))
	for _, e := range s.events {
		events = append(events, *e.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		if events[i].StartTime != events[j].StartTime {
			return events[i].StartTime < events[j].StartTime
		}
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})

	return events, nil
}

func (s *Storage) UpdateEvent(_ context.Context, id string, fields models.EventFields) (*models.Event, error) {
	const op = "storage.memory.UpdateEvent"

	unlock := s.eventLocks.Lock(id)
	defer unlock()

	e, err := s.loadEvent(id)
	if err != nil {
		return nil, err
	}

	if err := ledger.CheckCapacityEdit(e, fields.Capacity, fields.StandbyCapacity); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	fields.Apply(e)

	s.mu.Lock()
	s.events[id] = e
	s.mu.Unlock()

	return e.Clone(), nil
}

func (s *Storage) DeleteEvent(_ context.Context, id string) error {
	unlock := s.eventLocks.Lock(id)
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return storage.ErrEventNotFound
	}
	delete(s.events, id)

	return nil
}

func (s *Storage) RegisterForEvent(_ context.Context, eventID, userID string) (ledger.Status, error) {
	const op = "storage.memory.RegisterForEvent"

	unlock := s.eventLocks.Lock(eventID)
	defer unlock()

	e, err := s.loadEvent(eventID)
	if err != nil {
		return ledger.StatusUnregistered, err
	}

	l := ledger.FromEvent(e)

	status, err := l.Register(userID, s.now())
	if err != nil {
		return status, fmt.Errorf("%s: %w", op, err)
	}

	l.Apply(e)

	s.mu.Lock()
	s.events[eventID] = e
	s.enqueueLocked(e, userID, storage.NotificationKind(status))
	s.mu.Unlock()

	return status, nil
}

func (s *Storage) UnregisterFromEvent(_ context.Context, eventID, userID string) (ledger.Removal, error) {
	const op = "storage.memory.UnregisterFromEvent"

	unlock := s.eventLocks.Lock(eventID)
	defer unlock()

	e, err := s.loadEvent(eventID)
	if err != nil {
		return ledger.Removal{}, err
	}

	l := ledger.FromEvent(e)

	removal, err := l.Unregister(userID)
	if err != nil {
		return removal, fmt.Errorf("%s: %w", op, err)
	}

	l.Apply(e)

	s.mu.Lock()
	s.events[eventID] = e
	if removal.Promoted != nil {
		s.enqueueLocked(e, removal.Promoted.UserID, models.NotificationPromoted)
	}
	s.mu.Unlock()

	return removal, nil
}

// loadEvent returns a private copy of the event; the caller must hold its key lock.
func (s *Storage) loadEvent(id string) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.events[id]
	if !ok {
		return nil, storage.ErrEventNotFound
	}

	return e.Clone(), nil
}

func (s *Storage) enqueueLocked(e *models.Event, userID string, kind models.NotificationKind) {
	s.nextNoticeID++
	s.notifications = append(s.notifications, &models.Notification{
		ID:         s.nextNoticeID,
		EventID:    e.ID,
		EventTitle: e.Title,
		UserID:     userID,
		Kind:       kind,
		Status:     models.NotificationPending,
		CreatedAt:  s.now(),
	})
}

func (s *Storage) CreateUser(_ context.Context, user models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, ok := s.emails[email]; ok {
		return nil, storage.ErrUserExists
	}

	user.ID = uuid.New().String()
	user.Email = email
	user.CreatedAt = s.now()

	u := user
	s.users[u.ID] = &u
	s.emails[email] = u.ID

	return &user, nil
}

func (s *Storage) GetUser(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrUserNotFound
	}

	cp := *u
	return &cp, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	id, ok := s.emails[strings.ToLower(email)]
	s.mu.RUnlock()

	if !ok {
		return nil, storage.ErrUserNotFound
	}

	return s.GetUser(ctx, id)
}

func (s *Storage) UpdateUserProfile(_ context.Context, id string, profile models.Profile) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrUserNotFound
	}

	u.FirstName = profile.FirstName
	u.LastName = profile.LastName
	u.FullName = profile.FullName
	u.ProfilePicture = profile.ProfilePicture
	u.Language = profile.Language
	u.PhoneNumber = profile.PhoneNumber

	cp := *u
	return &cp, nil
}

func (s *Storage) SetUserRole(_ context.Context, email string, role models.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.emails[strings.ToLower(email)]
	if !ok {
		return storage.ErrUserNotFound
	}

	s.users[id].Role = role

	return nil
}

func (s *Storage) CreateFeedback(_ context.Context, feedback models.Feedback) (*models.Feedback, error) {
	feedback.ID = uuid.New().String()
	feedback.CreatedAt = s.now()

	s.mu.Lock()
	s.feedback = append(s.feedback, feedback)
	s.mu.Unlock()

	return &feedback, nil
}

// GetAllFeedback returns feedback newest first.
func (s *Storage) GetAllFeedback(_ context.Context) ([]models.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Feedback, 0, len(s.feedback))
	for i := len(s.feedback) - 1; i >= 0; i-- {
		out = append(out, s.feedback[i])
	}

	return out, nil
}

func (s *Storage) PendingNotifications(_ context.Context, limit, maxAttempts int) ([]models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Notification
	for _, n := range s.notifications {
		if len(out) >= limit {
			break
		}
		if n.Status == models.NotificationPending ||
			(n.Status == models.NotificationFailed && n.Attempts < maxAttempts) {
			out = append(out, *n)
		}
	}

	return out, nil
}

func (s *Storage) MarkNotificationSent(_ context.Context, id int64) error {
	return s.updateNotification(id, func(n *models.Notification) {
		now := s.now()
		n.Status = models.NotificationSent
		n.Attempts++
		n.LastError = ""
		n.SentAt = &now
	})
}

func (s *Storage) MarkNotificationFailed(_ context.Context, id int64, reason string) error {
	return s.updateNotification(id, func(n *models.Notification) {
		n.Status = models.NotificationFailed
		n.Attempts++
		n.LastError = reason
	})
}

func (s *Storage) updateNotification(id int64, fn func(n *models.Notification)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.notifications {
		if n.ID == id {
			fn(n)
			return nil
		}
	}

	return fmt.Errorf("notification %d not found", id)
}
