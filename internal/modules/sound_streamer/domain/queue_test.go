package domain

import (
	"errors"
	"testing"
)

func TestQueue_FIFO(t *testing.T) {
	q := NewQueue()

	for i, input := range []string{"first", "https://example.com/second", "third"} {
		if pos := q.Push(NewQueueItem(input)); pos != i {
			t.Errorf("Push(%q) position = %d, expected %d", input, pos, i)
		}
	}

	if q.Len() != 3 {
		t.Fatalf("Len() = %d, expected 3", q.Len())
	}

	for _, expected := range []string{"first", "https://example.com/second", "third"} {
		item, err := q.Pop()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if item.Value() != expected {
			t.Errorf("Pop() = %q, expected %q", item.Value(), expected)
		}
	}

	if !q.IsEmpty() {
		t.Error("expected queue to be empty")
	}
}

func TestQueue_PopEmpty(t *testing.T) {
	q := NewQueue()

	_, err := q.Pop()
	if !errors.Is(err, ErrQueueEmpty) {
		t.Errorf("expected ErrQueueEmpty, got %v", err)
	}
}

func TestQueue_ItemsReturnsCopy(t *testing.T) {
	q := NewQueue()
	q.Push(NewQueueItem("a"))

	items := q.Items()
	items[0] = NewQueueItem("changed")

	head, _ := q.Pop()
	if head.Value() != "a" {
		t.Errorf("expected queue to be unaffected by snapshot mutation, got %q", head.Value())
	}
}

func TestQueue_Clear(t *testing.T) {
	q := NewQueue()
	q.Push(NewQueueItem("a"))
	q.Push(NewQueueItem("b"))

	q.Clear()

	if q.Len() != 0 {
		t.Errorf("Len() = %d after Clear, expected 0", q.Len())
	}
}

func TestNewQueueItem(t *testing.T) {
	tests := []struct {
		name             string
		input            string
		expectedValue    string
		expectedResolved bool
		expectedString   string
	}{
		{
			name:             "query",
			input:            "lofi beats",
			expectedValue:    "lofi beats",
			expectedResolved: false,
			expectedString:   `"lofi beats"`,
		},
		{
			name:             "link",
			input:            " https://example.com/a.mp3 ",
			expectedValue:    "https://example.com/a.mp3",
			expectedResolved: true,
			expectedString:   "https://example.com/a.mp3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := NewQueueItem(tt.input)

			if item.Value() != tt.expectedValue {
				t.Errorf("Value() = %q, expected %q", item.Value(), tt.expectedValue)
			}
			if item.IsResolved() != tt.expectedResolved {
				t.Errorf("IsResolved() = %v, expected %v", item.IsResolved(), tt.expectedResolved)
			}
			if item.String() != tt.expectedString {
				t.Errorf("String() = %q, expected %q", item.String(), tt.expectedString)
			}
		})
	}
}
