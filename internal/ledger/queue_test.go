package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shiftease/internal/models"
)

func TestStandbyQueue(t *testing.T) {
	t.Parallel()

	q := NewStandbyQueue(nil)

	_, ok := q.Pop()
	assert.False(t, ok)

	q.Push(models.Registration{UserID: "A"})
	q.Push(models.Registration{UserID: "B"})
	q.Push(models.Registration{UserID: "C"})

	assert.Equal(t, 3, q.Len())
	assert.True(t, q.Contains("B"))

	assert.True(t, q.Remove("B"))
	assert.False(t, q.Remove("B"))
	assert.False(t, q.Contains("B"))

	head, ok := q.Pop()
	assert.True(t, ok)
	assert.Equal(t, "A", head.UserID)

	assert.Equal(t, []string{"C"}, userIDs(q.Items()))
}

func TestStandbyQueueItemsIsACopy(t *testing.T) {
	t.Parallel()

	q := NewStandbyQueue([]models.Registration{{UserID: "A"}})
	items := q.Items()
	items[0].UserID = "Z"

	head, _ := q.Pop()
	assert.Equal(t, "A", head.UserID)
}
