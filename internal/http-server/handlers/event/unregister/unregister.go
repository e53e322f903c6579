package unregister

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

type UnregisterResponse struct {
	response.Response
	RemovedFrom    ledger.Status `json:"removedFrom"`
	PromotedUserID string        `json:"promotedUserId,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=RegistrationCanceller
type RegistrationCanceller interface {
	UnregisterFromEvent(ctx context.Context, eventID, userID string) (ledger.Removal, error)
}

func New(log *slog.Logger, registrations RegistrationCanceller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.unregister.New"

		log := log.With(slog.String("op", op))

		caller, ok := auth.IdentityFrom(r.Context())
		if !ok {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("not authenticated"))
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

		removal, err := registrations.UnregisterFromEvent(r.Context(), eventID, caller.ID)
		if err != nil {
			log.Error("failed to unregister from event", sl.Err(err))

			switch {
			case errors.Is(err, storage.ErrEventNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
			case errors.Is(err, ledger.ErrNotRegistered):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error(ledger.ErrNotRegistered.Error()))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to unregister from event"))
			}
			return
		}

		resp := UnregisterResponse{
			Response:    response.OK(),
			RemovedFrom: removal.From,
		}
		if removal.Promoted != nil {
			resp.PromotedUserID = removal.Promoted.UserID
			log.Info("standby entrant promoted", slog.String("promoted_user_id", resp.PromotedUserID))
		}

		log.Info("unregistered from event", slog.String("from", string(removal.From)))

		render.JSON(w, r, resp)
	}
}
