package createFeedback

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"shiftease/internal/auth"
	"shiftease/internal/lib/api/response"
	"shiftease/internal/lib/logger/sl"
	"shiftease/internal/models"
)

type Request struct {
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Feedback string `json:"feedback" validate:"max=2000"`
}

type FeedbackResponse struct {
	response.Response
	Feedback *models.Feedback `json:"feedback"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=FeedbackCreator
type FeedbackCreator interface {
	CreateFeedback(ctx context.Context, feedback models.Feedback) (*models.Feedback, error)
}

func New(log *slog.Logger, creator FeedbackCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.feedback.createFeedback.New"

		log := log.With(slog.String("op", op))

		caller, ok := auth.IdentityFrom(r.Context())
		if !ok {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("not authenticated"))
			return
		}

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

		saved, err := creator.CreateFeedback(r.Context(), models.Feedback{
			UserID:    caller.ID,
			UserEmail: caller.Email,
			Rating:    req.Rating,
			Feedback:  strings.TrimSpace(req.Feedback),
		})
		if err != nil {
			log.Error("failed to save feedback", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to save feedback"))
			return
		}

		log.Info("feedback saved", slog.String("id", saved.ID), slog.Int("rating", saved.Rating))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, FeedbackResponse{
			Response: response.OK(),
			Feedback: saved,
		})
	}
}
