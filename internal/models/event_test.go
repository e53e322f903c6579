package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneEncodesEmptyListsAsArrays(t *testing.T) {
	t.Parallel()

	e := &Event{ID: "e1", Capacity: 1}

	data, err := json.Marshal(e.Clone())
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, []any{}, out["registrations"])
	assert.Equal(t, []any{}, out["standbyRegistrations"])
}

func TestCloneDoesNotShareLists(t *testing.T) {
	t.Parallel()

	e := &Event{
		Registrations:        []Registration{{UserID: "a", RegisteredAt: time.Unix(1, 0)}},
		StandbyRegistrations: []Registration{{UserID: "b", RegisteredAt: time.Unix(2, 0)}},
	}

	c := e.Clone()
	c.Registrations[0].UserID = "x"
	c.StandbyRegistrations = append(c.StandbyRegistrations, Registration{UserID: "c"})

	assert.Equal(t, "a", e.Registrations[0].UserID)
	assert.Len(t, e.StandbyRegistrations, 1)
}
