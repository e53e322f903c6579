package getAllFeedback

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"shiftease/internal/lib/api/response"
	"shiftease/internal/lib/logger/sl"
	"shiftease/internal/models"
)

type FeedbackListResponse struct {
	response.Response
	Feedback []models.Feedback `json:"feedback"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=FeedbackGetter
type FeedbackGetter interface {
	GetAllFeedback(ctx context.Context) ([]models.Feedback, error)
}

func New(log *slog.Logger, getter FeedbackGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.feedback.getAllFeedback.New"

		log := log.With(slog.String("op", op))

		feedback, err := getter.GetAllFeedback(r.Context())
		if err != nil {
			log.Error("failed to get feedback", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get feedback"))
			return
		}

		if feedback == nil {
			feedback = []models.Feedback{}
		}

		render.JSON(w, r, FeedbackListResponse{
			Response: response.OK(),
			Feedback: feedback,
		})
	}
}
