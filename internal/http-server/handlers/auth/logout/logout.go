package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"shiftease/internal/auth"
	"shiftease/internal/lib/api/response"
	"shiftease/internal/lib/logger/sl"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Logouter
type Logouter interface {
	Logout(ctx context.Context, id auth.Identity) error
}

func New(log *slog.Logger, logouter Logouter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.logout.New"

		log := log.With(slog.String("op", op))

		caller, ok := auth.IdentityFrom(r.Context())
		if !ok {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("not authenticated"))
			return
		}

		if err := logouter.Logout(r.Context(), caller); err != nil {
			log.Error("failed to log out", sl.Err(err), slog.String("user_id", caller.ID))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to log out"))
			return
		}

		log.Info("user logged out", slog.String("user_id", caller.ID))

		render.JSON(w, r, response.OK())
	}
}
