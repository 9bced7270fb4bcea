package domain

import "errors"

// ErrQueueEmpty is returned when popping from an empty queue.
var ErrQueueEmpty = errors.New("queue is empty")

// Queue is an unbounded FIFO of QueueItems. It is not safe for concurrent use;
// Session guards it.
type Queue struct {
	items []QueueItem
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{
		items: make([]QueueItem, 0),
	}
}

// Push appends an item and returns its zero-based position.
func (q *Queue) Push(item QueueItem) int {
	q.items = append(q.items, item)
	return len(q.items) - 1
}

// Pop removes and returns the head of the queue.
func (q *Queue) Pop() (QueueItem, error) {
	if len(q.items) == 0 {
		return QueueItem{}, ErrQueueEmpty
	}
	item := q.items[0]
	q.items[0] = QueueItem{}
	q.items = q.items[1:]
	return item, nil
}

// Len returns the number of queued items.
func (q *Queue) Len() int {
	return len(q.items)
}

// IsEmpty returns true if nothing is queued.
func (q *Queue) IsEmpty() bool {
	return len(q.items) == 0
}

// Items returns a copy of the queued items in playback order.
func (q *Queue) Items() []QueueItem {
	result := make([]QueueItem, len(q.items))
	copy(result, q.items)
	return result
}

// Clear discards every queued item.
func (q *Queue) Clear() {
	q.items = make([]QueueItem, 0)
}
