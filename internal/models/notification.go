package models

import "time"

type NotificationKind string

const (
	NotificationRegular  NotificationKind = "regular"
	NotificationStandby  NotificationKind = "standby"
	NotificationPromoted NotificationKind = "promoted"
)

type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
)

// Notification is an outbox record written in the same transaction as the
// ledger change it reports.
type Notification struct {
	ID         int64              `json:"id"`
	EventID    string             `json:"eventId"`
	EventTitle string             `json:"eventTitle"`
	UserID     string             `json:"userId"`
	Kind       NotificationKind   `json:"kind"`
	Status     NotificationStatus `json:"status"`
	Attempts   int                `json:"attempts"`
	LastError  string             `json:"lastError,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
	SentAt     *time.Time         `json:"sentAt,omitempty"`
}
