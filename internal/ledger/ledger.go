// Package ledger keeps the confirmed and standby lists of a single event.
//
// A Ledger is not safe for concurrent use. Callers serialise access per event
// (a row lock or a keyed mutex) and persist the result with Apply.
package ledger

import (
	"errors"
	"time"

	"shiftease/internal/models"
)

var (
	ErrAlreadyRegistered          = errors.New("user is already registered for this event")
	ErrNotRegistered              = errors.New("user is not registered for this event")
	ErrCapacityExceeded           = errors.New("event is full")
	ErrCapacityBelowRegistrations = errors.New("capacity is below the current number of registrations")
)

type Status string

const (
	StatusUnregistered Status = "unregistered"
	StatusConfirmed    Status = "confirmed"
	StatusStandby      Status = "standby"
)

// Removal describes the outcome of Unregister.
type Removal struct {
	// From is the list the user was removed from.
	From Status
	// Promoted is the standby entrant moved into the freed confirmed slot, if any.
	Promoted *models.Registration
}

type Ledger struct {
	capacity        int
	standbyCapacity int
	confirmed       []models.Registration
	standby         *StandbyQueue
}

func FromEvent(e *models.Event) *Ledger {
	return &Ledger{
		capacity:        e.Capacity,
		standbyCapacity: e.StandbyCapacity,
		confirmed:       append([]models.Registration(nil), e.Registrations...),
		standby:         NewStandbyQueue(e.StandbyRegistrations),
	}
}

// Apply writes the ledger lists back into e.
func (l *Ledger) Apply(e *models.Event) {
	e.Registrations = append([]models.Registration{}, l.confirmed...)
	e.StandbyRegistrations = append([]models.Registration{}, l.standby.Items()...)
}

func (l *Ledger) StatusOf(userID string) Status {
	switch {
	case indexOf(l.confirmed, userID) >= 0:
		return StatusConfirmed
	case l.standby.Contains(userID):
		return StatusStandby
	default:
		return StatusUnregistered
	}
}

// Register places userID in the first list that still has room.
func (l *Ledger) Register(userID string, now time.Time) (Status, error) {
	if l.StatusOf(userID) != StatusUnregistered {
		return StatusUnregistered, ErrAlreadyRegistered
	}

	reg := models.Registration{UserID: userID, RegisteredAt: now}

	if len(l.confirmed) < l.capacity {
		l.confirmed = append(l.confirmed, reg)
		return StatusConfirmed, nil
	}

	if l.standby.Len() < l.standbyCapacity {
		l.standby.Push(reg)
		return StatusStandby, nil
	}

	return StatusUnregistered, ErrCapacityExceeded
}

// Unregister removes userID. Leaving a confirmed slot promotes the head of the
// standby queue into it; leaving standby never touches the confirmed list.
func (l *Ledger) Unregister(userID string) (Removal, error) {
	if i := indexOf(l.confirmed, userID); i >= 0 {
		l.confirmed = append(l.confirmed[:i:i], l.confirmed[i+1:]...)

		removal := Removal{From: StatusConfirmed}

		if len(l.confirmed) < l.capacity {
			if head, ok := l.standby.Pop(); ok {
				l.confirmed = append(l.confirmed, head)
				removal.Promoted = &head
			}
		}

		return removal, nil
	}

	if l.standby.Remove(userID) {
		return Removal{From: StatusStandby}, nil
	}

	return Removal{}, ErrNotRegistered
}

// CheckCapacityEdit reports whether e may take the new limits without dropping
// anyone already registered.
func CheckCapacityEdit(e *models.Event, capacity, standbyCapacity int) error {
	if capacity < len(e.Registrations) || standbyCapacity < len(e.StandbyRegistrations) {
		return ErrCapacityBelowRegistrations
	}
	return nil
}
