package response

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	type request struct {
		Title    string `validate:"required"`
		Date     string `validate:"required,datetime=2006-01-02"`
		ImageURL string `validate:"omitempty,url"`
		Rating   int    `validate:"min=1,max=5"`
	}

	err := validator.New().Struct(request{
		Date:     "12/25/2024",
		ImageURL: "not a url",
		Rating:   9,
	})
	require.Error(t, err)

	var validateErr validator.ValidationErrors
	require.ErrorAs(t, err, &validateErr)

	resp := ValidationError(validateErr)

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t,
		"field Title is a required field, field Date must match format 2006-01-02, "+
			"field ImageURL is not a valid URL, field Rating must be at most 5",
		resp.Error,
	)
}

func TestOKAndError(t *testing.T) {
	assert.Equal(t, Response{Status: StatusOK}, OK())
	assert.Equal(t, Response{Status: StatusError, Error: "boom"}, Error("boom"))
}
