package signup

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"shiftease/internal/auth"
	"shiftease/internal/lib/api/response"
	"shiftease/internal/lib/logger/sl"
	"shiftease/internal/storage"
)

type Request struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Language  string `json:"language" validate:"omitempty,bcp47_language_tag"`
}

type SessionResponse struct {
	response.Response
	auth.Session
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Signer
type Signer interface {
	Signup(ctx context.Context, in auth.SignupInput) (*auth.Session, error)
}

func New(log *slog.Logger, signer Signer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.signup.New"

		log := log.With(slog.String("op", op))

		var req Request

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err := validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		session, err := signer.Signup(r.Context(), auth.SignupInput{
			Email:     req.Email,
			Password:  req.Password,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Language:  req.Language,
		})
		if err != nil {
			log.Error("failed to sign up", sl.Err(err))

			// max=72 counts runes; bcrypt limits bytes.
			if errors.Is(err, auth.ErrPasswordTooLong) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("password is too long"))
				return
			}

			if errors.Is(err, storage.ErrUserExists) {
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("user already exists"))
				return
			}

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to sign up"))
			return
		}

		log.Info("user signed up", slog.String("user_id", session.User.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, SessionResponse{
			Response: response.OK(),
			Session:  *session,
		})
	}
}
