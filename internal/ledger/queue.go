package ledger

import "shiftease/internal/models"

// StandbyQueue is the FIFO of users waiting for a confirmed slot. The head is
// always the longest-waiting entrant.
type StandbyQueue struct {
	items []models.Registration
}

func NewStandbyQueue(items []models.Registration) *StandbyQueue {
	return &StandbyQueue{items: append([]models.Registration(nil), items...)}
}

func (q *StandbyQueue) Len() int {
	return len(q.items)
}

func (q *StandbyQueue) Push(r models.Registration) {
	q.items = append(q.items, r)
}

// Pop removes and returns the head of the queue.
func (q *StandbyQueue) Pop() (models.Registration, bool) {
	if len(q.items) == 0 {
		return models.Registration{}, false
	}

	head := q.items[0]
	q.items = append(q.items[:0:0], q.items[1:]...)

	return head, true
}

func (q *StandbyQueue) Contains(userID string) bool {
	return indexOf(q.items, userID) >= 0
}

// Remove drops userID from anywhere in the queue, keeping the order of the rest.
func (q *StandbyQueue) Remove(userID string) bool {
	i := indexOf(q.items, userID)
	if i < 0 {
		return false
	}

	q.items = append(q.items[:i:i], q.items[i+1:]...)

	return true
}

func (q *StandbyQueue) Items() []models.Registration {
	return append([]models.Registration(nil), q.items...)
}

func indexOf(regs []models.Registration, userID string) int {
	for i, r := range regs {
		if r.UserID == userID {
			return i
		}
	}
	return -1
}
