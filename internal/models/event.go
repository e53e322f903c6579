package models

import (
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Event struct {
	ID                   string         `json:"id"`
	Title                string         `json:"title"`
	Description          string         `json:"description"`
	Date                 string         `json:"date"`
	StartTime            string         `json:"startTime"`
	EndTime              string         `json:"endTime"`
	ImageURL             string         `json:"imageUrl,omitempty"`
	Capacity             int            `json:"capacity"`
	StandbyCapacity      int            `json:"standbyCapacity"`
	Registrations        []Registration `json:"registrations"`
	StandbyRegistrations []Registration `json:"standbyRegistrations"`
	CreatedAt            time.Time      `json:"createdAt"`
}

// Registration is one user's claim on a confirmed or standby slot.
type Registration struct {
	UserID       string    `json:"userId"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// EventFields holds the administrator-editable scalar fields of an event.
type EventFields struct {
	Title           string
	Description     string
	Date            string
	StartTime       string
	EndTime         string
	ImageURL        string
	Capacity        int
	StandbyCapacity int
}

// Apply overwrites the scalar fields of e. Registration lists are left as they are.
func (f EventFields) Apply(e *Event) {
	e.Title = f.Title
	e.Description = f.Description
	e.Date = f.Date
	e.StartTime = f.StartTime
	e.EndTime = f.EndTime
	e.ImageURL = f.ImageURL
	e.Capacity = f.Capacity
	e.StandbyCapacity = f.StandbyCapacity
}

// Clone returns a deep copy of the event.
func (e *Event) Clone() *Event {
	c := *e
	c.Registrations = cloneRegistrations(e.Registrations)
	c.StandbyRegistrations = cloneRegistrations(e.StandbyRegistrations)
	return &c
}

// cloneRegistrations never returns nil, so an empty list encodes as [].
func cloneRegistrations(regs []Registration) []Registration {
	out := make([]Registration, len(regs))
	copy(out, regs)
	return out
}
