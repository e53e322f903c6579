package editEvent

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"shiftease/internal/http-server/handlers/event/eventform"
	"shiftease/internal/ledger"
	"shiftease/internal/lib/api/response"
	"shiftease/internal/lib/logger/sl"
	"shiftease/internal/models"
	"shiftease/internal/storage"
)

type EventResponse struct {
	response.Response
	Event *models.Event `json:"event"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventEditor
type EventEditor interface {
	UpdateEvent(ctx context.Context, id string, fields models.EventFields) (*models.Event, error)
}

// New replaces the scalar fields of an event. Registration lists in the body
// are not part of eventform.Request and are dropped by the decoder.
func New(log *slog.Logger, editor EventEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.editEvent.New"

		log := log.With(slog.String("op", op))

		eventID, err := eventform.EventID(r)
		if err != nil {
			log.Error("bad event id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		log = log.With(slog.String("event_id", eventID))

		var req eventform.Request

		if err = render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		req.Normalize()

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		if err = req.CheckTimes(); err != nil {
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		updated, err := editor.UpdateEvent(r.Context(), eventID, req.Fields())
		if err != nil {
			log.Error("failed to update event", sl.Err(err))

			switch {
			case errors.Is(err, storage.ErrEventNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
			case errors.Is(err, ledger.ErrCapacityBelowRegistrations):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error(ledger.ErrCapacityBelowRegistrations.Error()))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to update event"))
			}
			return
		}

		log.Info("event updated")

		render.JSON(w, r, EventResponse{
			Response: response.OK(),
			Event:    updated,
		})
	}
}
