// Package eventform holds the request pieces shared by the event handlers.
package eventform

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"shiftease/internal/models"
)

var (
	ErrMissingEventID = errors.New("event id is required")
	ErrInvalidEventID = errors.New("invalid event id format")
	ErrEndBeforeStart = errors.New("endTime must be after startTime")
)

// Request is the body of create and edit. It has no registration fields, so an
// edit can never rewrite who is registered.
type Request struct {
	Title           string        `json:"title" validate:"required"`
	Description     string        `json:"description"`
	Date            string        `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime       string        `json:"startTime" validate:"required,datetime=15:04"`
	EndTime         string        `json:"endTime" validate:"required,datetime=15:04"`
	ImageURL        string        `json:"imageUrl" validate:"omitempty,url"`
	Capacity        *models.Count `json:"capacity" validate:"required"`
	StandbyCapacity *models.Count `json:"standbyCapacity" validate:"required"`
}

// Normalize trims free-text fields before validation.
func (r *Request) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
}

// CheckTimes runs after struct validation, so both times parse.
func (r *Request) CheckTimes() error {
	start, err := time.Parse(models.TimeLayout, r.StartTime)
	if err != nil {
		return err
	}

	end, err := time.Parse(models.TimeLayout, r.EndTime)
	if err != nil {
		return err
	}

	if !end.After(start) {
		return ErrEndBeforeStart
	}

	return nil
}

func (r *Request) Fields() models.EventFields {
	return models.EventFields{
		Title:           r.Title,
		Description:     r.Description,
		Date:            r.Date,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		ImageURL:        r.ImageURL,
		Capacity:        countOf(r.Capacity),
		StandbyCapacity: countOf(r.StandbyCapacity),
	}
}

func countOf(c *models.Count) int {
	if c == nil {
		return 0
	}
	return c.Int()
}

// EventID reads and checks the {id} URL parameter.
func EventID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if id == "" {
		return "", ErrMissingEventID
	}

	if _, err := uuid.Parse(id); err != nil {
		return "", ErrInvalidEventID
	}

	return id, nil
}
