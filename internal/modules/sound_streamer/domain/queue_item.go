package domain

import "strings"

// QueueItem is a pending track: either a playable link or a search query
// that is resolved when the item reaches the head of the queue.
type QueueItem struct {
	value  string
	isLink bool
}

// NewQueueItem classifies user input as a link or a query.
func NewQueueItem(input string) QueueItem {
	input = strings.TrimSpace(input)
	return QueueItem{
		value:  input,
		isLink: IsLink(input),
	}
}

// IsResolved returns true if the item is already a playable link.
func (i QueueItem) IsResolved() bool {
	return i.isLink
}

// Value returns the link or the raw query text.
func (i QueueItem) Value() string {
	return i.value
}

// String returns the item as shown in chat: links bare, queries quoted.
func (i QueueItem) String() string {
	if i.isLink {
		return i.value
	}
	return `"` + i.value + `"`
}
