package getAllFeedback

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"shiftease/internal/http-server/handlers/feedback/getAllFeedback/mocks"
	"shiftease/internal/lib/logger/handlers/slogdiscard"
	"shiftease/internal/models"
)

func TestGetAllFeedbackHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	items := []models.Feedback{{
		ID:        "f1",
		UserID:    "u1",
		UserEmail: "ann@example.com",
		Rating:    5,
		Feedback:  "Great",
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}}

	testCases := []struct {
		name           string
		mockSetup      func(m *mocks.FeedbackGetter)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success",
			mockSetup: func(m *mocks.FeedbackGetter) {
				m.On("GetAllFeedback", mock.Anything).Return(items, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"status":"OK","feedback":[{"id":"f1","userId":"u1","userEmail":"ann@example.com",
				"rating":5,"feedback":"Great","createdAt":"2024-05-01T12:00:00Z"}]}`,
		},
		{
			name: "Empty",
			mockSetup: func(m *mocks.FeedbackGetter) {
				m.On("GetAllFeedback", mock.Anything).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","feedback":[]}`,
		},
		{
			name: "Storage error",
			mockSetup: func(m *mocks.FeedbackGetter) {
				m.On("GetAllFeedback", mock.Anything).Return(nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to get feedback"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			m := mocks.NewFeedbackGetter(t)
			tc.mockSetup(m)

			req := httptest.NewRequest(http.MethodGet, "/feedback", nil)
			rr := httptest.NewRecorder()

			New(logger, m).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}
