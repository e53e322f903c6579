package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountUnmarshal(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "Number", input: `{"c": 12}`, want: 12},
		{name: "Quoted number", input: `{"c": "7"}`, want: 7},
		{name: "Quoted with spaces", input: `{"c": " 3 "}`, want: 3},
		{name: "Zero", input: `{"c": 0}`, want: 0},
		{name: "Null keeps zero", input: `{"c": null}`, want: 0},
		{name: "Negative", input: `{"c": -1}`, wantErr: true},
		{name: "Fraction", input: `{"c": 1.5}`, wantErr: true},
		{name: "Word", input: `{"c": "ten"}`, wantErr: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var v struct {
				C Count `json:"c"`
			}

			err := json.Unmarshal([]byte(tc.input), &v)
			if tc.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, v.C.Int())
		})
	}
}
