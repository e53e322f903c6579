package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id                    UUID PRIMARY KEY,
	title                 TEXT NOT NULL,
	description           TEXT NOT NULL DEFAULT '',
	date                  DATE NOT NULL,
	start_time            TIME NOT NULL,
	end_time              TIME NOT NULL,
	image_url             TEXT NOT NULL DEFAULT '',
	capacity              INTEGER NOT NULL CHECK (capacity >= 0),
	standby_capacity      INTEGER NOT NULL DEFAULT 0 CHECK (standby_capacity >= 0),
	registrations         JSONB NOT NULL DEFAULT '[]'::jsonb,
	standby_registrations JSONB NOT NULL DEFAULT '[]'::jsonb,
	created_at            TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS events_date_idx ON events (date, start_time);

CREATE TABLE IF NOT EXISTS users (
	id              UUID PRIMARY KEY,
	email           TEXT NOT NULL UNIQUE,
	password_hash   TEXT NOT NULL,
	first_name      TEXT NOT NULL DEFAULT '',
	last_name       TEXT NOT NULL DEFAULT '',
	full_name       TEXT NOT NULL DEFAULT '',
	role            TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('admin', 'user')),
	profile_picture TEXT NOT NULL DEFAULT '',
	language        TEXT NOT NULL DEFAULT '',
	phone_number    TEXT NOT NULL DEFAULT '',
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS feedback (
	id         UUID PRIMARY KEY,
	user_id    UUID NOT NULL,
	user_email TEXT NOT NULL,
	rating     INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
	feedback   TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS notifications (
	id          BIGSERIAL PRIMARY KEY,
	event_id    UUID NOT NULL,
	event_title TEXT NOT NULL,
	user_id     TEXT NOT NULL,
	kind        TEXT NOT NULL,
	status      TEXT NOT NULL DEFAULT 'pending',
	attempts    INTEGER NOT NULL DEFAULT 0,
	last_error  TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	sent_at     TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS notifications_status_idx ON notifications (status, id);
`

// Migrate creates any missing tables. Every statement is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
