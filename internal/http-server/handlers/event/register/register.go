package register

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"shiftease/internal/auth"
	"shiftease/internal/http-server/handlers/event/eventform"
	"shiftease/internal/ledger"
	"shiftease/internal/lib/api/response"
	"shiftease/internal/lib/logger/sl"
	"shiftease/internal/storage"
)

type RegistrationResponse struct {
	response.Response
	Registration ledger.Status `json:"registration"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=RegistrationCreator
type RegistrationCreator interface {
	RegisterForEvent(ctx context.Context, eventID, userID string) (ledger.Status, error)
}

func New(log *slog.Logger, registrations RegistrationCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.register.New"

		log := log.With(slog.String("op", op))

		caller, ok := auth.IdentityFrom(r.Context())
		if !ok {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("not authenticated"))
			return
		}

		if caller.IsAdmin() {
			log.Warn("admin tried to register", slog.String("user_id", caller.ID))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("admins cannot register for events"))
			return
		}

		eventID, err := eventform.EventID(r)
		if err != nil {
			log.Error("bad event id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		log = log.With(
			slog.String("event_id", eventID),
			slog.String("user_id", caller.ID),
		)

		status, err := registrations.RegisterForEvent(r.Context(), eventID, caller.ID)
		if err != nil {
			log.Error("failed to register for event", sl.Err(err))

			switch {
			case errors.Is(err, storage.ErrEventNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
			case errors.Is(err, ledger.ErrAlreadyRegistered):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error(ledger.ErrAlreadyRegistered.Error()))
			case errors.Is(err, ledger.ErrCapacityExceeded):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error(ledger.ErrCapacityExceeded.Error()))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to register for event"))
			}
			return
		}

		log.Info("registered for event", slog.String("status", string(status)))

		responseOK(w, r, status)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, status ledger.Status) {
	render.JSON(w, r, RegistrationResponse{
		Response:     response.OK(),
		Registration: status,
	})
}
