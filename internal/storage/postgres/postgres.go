package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"shiftease/internal/config"
	"shiftease/internal/ledger"
	"shiftease/internal/models"
	"shiftease/internal/storage"
)

const uniqueViolation = "23505"

type Storage struct {
	DB *sql.DB
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	return Open(connStr)
}

func Open(dsn string) (*Storage, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = Migrate(context.Background(), db); err != nil {
		return nil, err
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

const eventColumns = `
	id, title, description,
	to_char(date, 'YYYY-MM-DD'), to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
	image_url, capacity, standby_capacity, registrations, standby_registrations, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*models.Event, error) {
	var (
		event            models.Event
		regsRaw, standby []byte
	)

	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Date,
		&event.StartTime,
		&event.EndTime,
		&event.ImageURL,
		&event.Capacity,
		&event.StandbyCapacity,
		&regsRaw,
		&standby,
		&event.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err = json.Unmarshal(regsRaw, &event.Registrations); err != nil {
		return nil, fmt.Errorf("failed to decode registrations: %w", err)
	}
	if err = json.Unmarshal(standby, &event.StandbyRegistrations); err != nil {
		return nil, fmt.Errorf("failed to decode standby registrations: %w", err)
	}

	return &event, nil
}

func (s *Storage) CreateEvent(ctx context.Context, fields models.EventFields) (*models.Event, error) {
	const op = "storage.postgres.CreateEvent"

	query := `
		INSERT INTO events (id, title, description, date, start_time, end_time, image_url, capacity, standby_capacity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + eventColumns

	row := s.DB.QueryRowContext(ctx, query,
		uuid.New().String(),
		fields.Title,
		fields.Description,
		fields.Date,
		fields.StartTime,
		fields.EndTime,
		fields.ImageURL,
		fields.Capacity,
		fields.StandbyCapacity,
	)

	event, err := scanEvent(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return event, nil
}

func (s *Storage) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	const op = "storage.postgres.GetEvent"

	row := s.DB.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)

	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEventNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return event, nil
}

func (s *Storage) GetAllEvents(ctx context.Context) ([]models.Event, error) {
	const op = "storage.postgres.GetAllEvents"

	rows, err := s.DB.QueryContext(ctx, `
		SELECT `+eventColumns+`
		FROM events
		ORDER BY date ASC, start_time ASC, created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan event: %w", op, err)
		}
		events = append(events, *event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: error iterating events: %w", op, err)
	}

	return events, nil
}

func (s *Storage) UpdateEvent(ctx context.Context, id string, fields models.EventFields) (*models.Event, error) {
	const op = "storage.postgres.UpdateEvent"

	var updated *models.Event

	err := s.withLockedEvent(ctx, id, func(tx *sql.Tx, event *models.Event) error {
		if err := ledger.CheckCapacityEdit(event, fields.Capacity, fields.StandbyCapacity); err != nil {
			return err
		}

		query := `
			UPDATE events
			SET title = $2, description = $3, date = $4, start_time = $5, end_time = $6,
			    image_url = $7, capacity = $8, standby_capacity = $9
			WHERE id = $1
			RETURNING ` + eventColumns

		row := tx.QueryRowContext(ctx, query,
			id,
			fields.Title,
			fields.Description,
			fields.Date,
			fields.StartTime,
			fields.EndTime,
			fields.ImageURL,
			fields.Capacity,
			fields.StandbyCapacity,
		)

		var err error
		updated, err = scanEvent(row)
		return err
	})
	if err != nil {
		return nil, wrapLedgerErr(op, err)
	}

	return updated, nil
}

func (s *Storage) DeleteEvent(ctx context.Context, id string) error {
	const op = "storage.postgres.DeleteEvent"

	result, err := s.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return storage.ErrEventNotFound
	}

	return nil
}

func (s *Storage) RegisterForEvent(ctx context.Context, eventID, userID string) (ledger.Status, error) {
	const op = "storage.postgres.RegisterForEvent"

	status := ledger.StatusUnregistered

	err := s.withLockedEvent(ctx, eventID, func(tx *sql.Tx, event *models.Event) error {
		l := ledger.FromEvent(event)

		var err error
		status, err = l.Register(userID, time.Now().UTC())
		if err != nil {
			return err
		}

		l.Apply(event)

		if err = saveRegistrations(ctx, tx, event); err != nil {
			return err
		}

		return enqueueNotification(ctx, tx, event, userID, storage.NotificationKind(status))
	})
	if err != nil {
		return ledger.StatusUnregistered, wrapLedgerErr(op, err)
	}

	return status, nil
}

func (s *Storage) UnregisterFromEvent(ctx context.Context, eventID, userID string) (ledger.Removal, error) {
	const op = "storage.postgres.UnregisterFromEvent"

	var removal ledger.Removal

	err := s.withLockedEvent(ctx, eventID, func(tx *sql.Tx, event *models.Event) error {
		l := ledger.FromEvent(event)

		var err error
		removal, err = l.Unregister(userID)
		if err != nil {
			return err
		}

		l.Apply(event)

		if err = saveRegistrations(ctx, tx, event); err != nil {
			return err
		}

		if removal.Promoted == nil {
			return nil
		}

		return enqueueNotification(ctx, tx, event, removal.Promoted.UserID, models.NotificationPromoted)
	})
	if err != nil {
		return ledger.Removal{}, wrapLedgerErr(op, err)
	}

	return removal, nil
}

// withLockedEvent runs fn inside a transaction holding the row lock on the event,
// so ledger read-modify-write cycles on one event never interleave.
func (s *Storage) withLockedEvent(ctx context.Context, id string, fn func(tx *sql.Tx, event *models.Event) error) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1 FOR UPDATE`, id)

	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrEventNotFound
		}
		return fmt.Errorf("failed to lock event: %w", err)
	}

	if err = fn(tx, event); err != nil {
		return err
	}

	return tx.Commit()
}

func saveRegistrations(ctx context.Context, tx *sql.Tx, event *models.Event) error {
	regs, err := json.Marshal(event.Registrations)
	if err != nil {
		return err
	}

	standby, err := json.Marshal(event.StandbyRegistrations)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE events
		SET registrations = $2::jsonb, standby_registrations = $3::jsonb
		WHERE id = $1`,
		event.ID, string(regs), string(standby),
	)
	if err != nil {
		return fmt.Errorf("failed to save registrations: %w", err)
	}

	return nil
}

func enqueueNotification(ctx context.Context, tx *sql.Tx, event *models.Event, userID string, kind models.NotificationKind) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO notifications (event_id, event_title, user_id, kind)
		VALUES ($1, $2, $3, $4)`,
		event.ID, event.Title, userID, string(kind),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}

	return nil
}

// wrapLedgerErr leaves not-found untouched and adds op context to everything else.
func wrapLedgerErr(op string, err error) error {
	if errors.Is(err, storage.ErrEventNotFound) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}

const userColumns = `id, email, password_hash, first_name, last_name, full_name, role,
	profile_picture, language, phone_number, created_at`

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User

	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.FullName,
		&u.Role,
		&u.ProfilePicture,
		&u.Language,
		&u.PhoneNumber,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (s *Storage) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.postgres.CreateUser"

	query := `
		INSERT INTO users (id, email, password_hash, first_name, last_name, full_name, role,
		                   profile_picture, language, phone_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + userColumns

	row := s.DB.QueryRowContext(ctx, query,
		uuid.New().String(),
		strings.ToLower(user.Email),
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.FullName,
		string(user.Role),
		user.ProfilePicture,
		user.Language,
		user.PhoneNumber,
	)

	created, err := scanUser(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, storage.ErrUserExists
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

func (s *Storage) GetUser(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.postgres.GetUser"

	user, err := scanUser(s.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.postgres.GetUserByEmail"

	row := s.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(email))

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *Storage) UpdateUserProfile(ctx context.Context, id string, profile models.Profile) (*models.User, error) {
	const op = "storage.postgres.UpdateUserProfile"

	query := `
		UPDATE users
		SET first_name = $2, last_name = $3, full_name = $4, profile_picture = $5,
		    language = $6, phone_number = $7
		WHERE id = $1
		RETURNING ` + userColumns

	row := s.DB.QueryRowContext(ctx, query,
		id,
		profile.FirstName,
		profile.LastName,
		profile.FullName,
		profile.ProfilePicture,
		profile.Language,
		profile.PhoneNumber,
	)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *Storage) SetUserRole(ctx context.Context, email string, role models.Role) error {
	const op = "storage.postgres.SetUserRole"

	result, err := s.DB.ExecContext(ctx, `UPDATE users SET role = $2 WHERE email = $1`, strings.ToLower(email), string(role))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return storage.ErrUserNotFound
	}

	return nil
}

func (s *Storage) CreateFeedback(ctx context.Context, feedback models.Feedback) (*models.Feedback, error) {
	const op = "storage.postgres.CreateFeedback"

	feedback.ID = uuid.New().String()

	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO feedback (id, user_id, user_email, rating, feedback)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		feedback.ID, feedback.UserID, feedback.UserEmail, feedback.Rating, feedback.Feedback,
	).Scan(&feedback.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &feedback, nil
}

func (s *Storage) GetAllFeedback(ctx context.Context) ([]models.Feedback, error) {
	const op = "storage.postgres.GetAllFeedback"

	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, user_id, user_email, rating, feedback, created_at
		FROM feedback
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	all := []models.Feedback{}
	for rows.Next() {
		var f models.Feedback
		if err = rows.Scan(&f.ID, &f.UserID, &f.UserEmail, &f.Rating, &f.Feedback, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: failed to scan feedback: %w", op, err)
		}
		all = append(all, f)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: error iterating feedback: %w", op, err)
	}

	return all, nil
}

func (s *Storage) PendingNotifications(ctx context.Context, limit, maxAttempts int) ([]models.Notification, error) {
	const op = "storage.postgres.PendingNotifications"

	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, event_id, event_title, user_id, kind, status, attempts, last_error, created_at, sent_at
		FROM notifications
		WHERE status = 'pending' OR (status = 'failed' AND attempts < $2)
		ORDER BY id ASC
		LIMIT $1`,
		limit, maxAttempts,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var (
			n      models.Notification
			sentAt sql.NullTime
		)

		err = rows.Scan(&n.ID, &n.EventID, &n.EventTitle, &n.UserID, &n.Kind, &n.Status,
			&n.Attempts, &n.LastError, &n.CreatedAt, &sentAt)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan notification: %w", op, err)
		}
		if sentAt.Valid {
			n.SentAt = &sentAt.Time
		}

		notifications = append(notifications, n)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: error iterating notifications: %w", op, err)
	}

	return notifications, nil
}

func (s *Storage) MarkNotificationSent(ctx context.Context, id int64) error {
	const op = "storage.postgres.MarkNotificationSent"

	_, err := s.DB.ExecContext(ctx, `
		UPDATE notifications
		SET status = 'sent', attempts = attempts + 1, last_error = '', sent_at = NOW()
		WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) MarkNotificationFailed(ctx context.Context, id int64, reason string) error {
	const op = "storage.postgres.MarkNotificationFailed"

	_, err := s.DB.ExecContext(ctx, `
		UPDATE notifications
		SET status = 'failed', attempts = attempts + 1, last_error = $2
		WHERE id = $1`, id, reason)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
