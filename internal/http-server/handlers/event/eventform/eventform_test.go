package eventform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftease/internal/models"
)

func count(n int) *models.Count {
	c := models.Count(n)
	return &c
}

func validRequest() Request {
	return Request{
		Title:           "Shelter shift",
		Date:            "2024-12-25",
		StartTime:       "09:00",
		EndTime:         "11:30",
		Capacity:        count(3),
		StandbyCapacity: count(0),
	}
}

func TestRequestValidation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		mutate  func(r *Request)
		wantErr bool
	}{
		{name: "Valid", mutate: func(r *Request) {}},
		{name: "Missing title", mutate: func(r *Request) { r.Title = "" }, wantErr: true},
		{name: "Bad date", mutate: func(r *Request) { r.Date = "25/12/2024" }, wantErr: true},
		{name: "Bad start time", mutate: func(r *Request) { r.StartTime = "9am" }, wantErr: true},
		{name: "Bad image url", mutate: func(r *Request) { r.ImageURL = "not a url" }, wantErr: true},
		{name: "Image url", mutate: func(r *Request) { r.ImageURL = "https://img.example.com/a.png" }},
		{name: "Missing capacity", mutate: func(r *Request) { r.Capacity = nil }, wantErr: true},
		{name: "Missing standby capacity", mutate: func(r *Request) { r.StandbyCapacity = nil }, wantErr: true},
		{name: "Zero capacity", mutate: func(r *Request) { r.Capacity = count(0) }},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := validRequest()
			tc.mutate(&req)

			err := validator.New().Struct(req)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckTimes(t *testing.T) {
	t.Parallel()

	req := validRequest()
	assert.NoError(t, req.CheckTimes())

	req.EndTime = "09:00"
	assert.ErrorIs(t, req.CheckTimes(), ErrEndBeforeStart)

	req.EndTime = "08:00"
	assert.ErrorIs(t, req.CheckTimes(), ErrEndBeforeStart)
}

func TestNormalizeAndFields(t *testing.T) {
	t.Parallel()

	req := validRequest()
	req.Title = "  Shelter shift  "
	req.StandbyCapacity = count(2)
	req.Normalize()

	fields := req.Fields()
	assert.Equal(t, "Shelter shift", fields.Title)
	assert.Equal(t, 3, fields.Capacity)
	assert.Equal(t, 2, fields.StandbyCapacity)
}

func TestDecodeNullCapacity(t *testing.T) {
	t.Parallel()

	var req Request
	require.NoError(t, json.Unmarshal([]byte(`{"capacity": null, "standbyCapacity": "2"}`), &req))
	assert.Nil(t, req.Capacity)
	require.NotNil(t, req.StandbyCapacity)
	assert.Equal(t, 2, req.StandbyCapacity.Int())
}

func TestEventID(t *testing.T) {
	t.Parallel()

	withParam := func(id string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	id, err := EventID(withParam("5f1c1f8e-4a0b-4a7e-9c1e-2f3d4b5a6c7d"))
	require.NoError(t, err)
	assert.Equal(t, "5f1c1f8e-4a0b-4a7e-9c1e-2f3d4b5a6c7d", id)

	_, err = EventID(withParam("42"))
	assert.ErrorIs(t, err, ErrInvalidEventID)

	_, err = EventID(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, ErrMissingEventID)
}
