package domain

import (
	"sync"
	"testing"

	"github.com/disgoorg/snowflake/v2"
)

func newTestSession() *Session {
	return NewSession(snowflake.ID(1), snowflake.ID(100), snowflake.ID(200))
}

func TestNewSession(t *testing.T) {
	s := newTestSession()

	if s.GetGuildID() != 1 || s.GetVoiceChannelID() != 100 || s.GetTextChannelID() != 200 {
		t.Errorf("unexpected identities: guild=%d voice=%d text=%d",
			s.GetGuildID(), s.GetVoiceChannelID(), s.GetTextChannelID())
	}
	if s.Status() != StatusIdle {
		t.Errorf("Status() = %s, expected idle", s.Status())
	}
	if s.QueueLen() != 0 {
		t.Errorf("QueueLen() = %d, expected 0", s.QueueLen())
	}
	if s.IsClosed() {
		t.Error("new session should not be closed")
	}
	if other := newTestSession(); other.ID() == s.ID() {
		t.Error("expected distinct session IDs")
	}
}

func TestSession_Enqueue(t *testing.T) {
	tests := []struct {
		name            string
		status          PlaybackStatus
		preloaded       int
		expectedPos     int
		expectedIdle    bool
		expectImmediate bool
	}{
		{
			name:            "idle with empty queue plays immediately",
			status:          StatusIdle,
			expectedPos:     0,
			expectedIdle:    true,
			expectImmediate: true,
		},
		{
			name:            "idle with leftover queue",
			status:          StatusIdle,
			preloaded:       2,
			expectedPos:     2,
			expectedIdle:    true,
			expectImmediate: false,
		},
		{
			name:            "playing appends",
			status:          StatusPlaying,
			expectedPos:     0,
			expectedIdle:    false,
			expectImmediate: false,
		},
		{
			name:            "paused appends",
			status:          StatusPaused,
			preloaded:       1,
			expectedPos:     1,
			expectedIdle:    false,
			expectImmediate: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession()
			for range tt.preloaded {
				s.Enqueue(NewQueueItem("filler"))
			}
			s.SetStatus(tt.status)

			result := s.Enqueue(NewQueueItem("song"))

			if result.Position != tt.expectedPos {
				t.Errorf("Position = %d, expected %d", result.Position, tt.expectedPos)
			}
			if result.WasIdle != tt.expectedIdle {
				t.Errorf("WasIdle = %v, expected %v", result.WasIdle, tt.expectedIdle)
			}
			if result.PlaysImmediately() != tt.expectImmediate {
				t.Errorf("PlaysImmediately() = %v, expected %v",
					result.PlaysImmediately(), tt.expectImmediate)
			}
		})
	}
}

func TestSession_PopNext(t *testing.T) {
	s := newTestSession()
	s.Enqueue(NewQueueItem("a"))
	s.Enqueue(NewQueueItem("b"))

	item, ok := s.PopNext()
	if !ok || item.Value() != "a" {
		t.Fatalf("PopNext() = %q, %v; expected a, true", item.Value(), ok)
	}
	item, ok = s.PopNext()
	if !ok || item.Value() != "b" {
		t.Fatalf("PopNext() = %q, %v; expected b, true", item.Value(), ok)
	}
	if _, ok := s.PopNext(); ok {
		t.Error("expected PopNext on empty queue to return false")
	}
}

func TestSession_Close(t *testing.T) {
	s := newTestSession()
	s.Enqueue(NewQueueItem("a"))
	s.SetStatus(StatusPlaying)

	s.Close()

	if !s.IsClosed() {
		t.Fatal("expected session to be closed")
	}
	if s.QueueLen() != 0 {
		t.Errorf("QueueLen() = %d, expected queue to be discarded", s.QueueLen())
	}
	if s.Status() != StatusIdle {
		t.Errorf("Status() = %s, expected idle", s.Status())
	}

	// Mutations after close are no-ops.
	s.SetStatus(StatusPlaying)
	if s.Status() != StatusIdle {
		t.Error("expected SetStatus to be ignored after close")
	}
	s.Enqueue(NewQueueItem("late"))
	if s.QueueLen() != 0 {
		t.Error("expected Enqueue to be ignored after close")
	}
	if _, ok := s.PopNext(); ok {
		t.Error("expected PopNext to fail after close")
	}
}

func TestSession_ConcurrentEnqueueAndPop(t *testing.T) {
	s := newTestSession()
	const n = 100

	var wg sync.WaitGroup
	popped := make(chan QueueItem, n)
	for range n {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Enqueue(NewQueueItem("x"))
		}()
		go func() {
			defer wg.Done()
			if item, ok := s.PopNext(); ok {
				popped <- item
			}
		}()
	}
	wg.Wait()
	close(popped)

	count := 0
	for range popped {
		count++
	}
	if count+s.QueueLen() != n {
		t.Errorf("popped %d + remaining %d != enqueued %d", count, s.QueueLen(), n)
	}
}

func TestPlaybackStatus_String(t *testing.T) {
	tests := []struct {
		status   PlaybackStatus
		expected string
	}{
		{StatusIdle, "idle"},
		{StatusPlaying, "playing"},
		{StatusPaused, "paused"},
		{PlaybackStatus(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.expected {
			t.Errorf("String() = %q, expected %q", got, tt.expected)
		}
	}
}

func TestSession_MarkPlaying(t *testing.T) {
	s := newTestSession()

	s.MarkPlaying("encoded-1")
	if s.Status() != StatusPlaying {
		t.Errorf("Status() = %s, expected playing", s.Status())
	}
	if s.CurrentTrack() != "encoded-1" {
		t.Errorf("CurrentTrack() = %q, expected encoded-1", s.CurrentTrack())
	}

	s.SetStatus(StatusPaused)
	if s.CurrentTrack() != "encoded-1" {
		t.Error("expected pausing to keep the current track")
	}

	s.SetStatus(StatusIdle)
	if s.CurrentTrack() != "" {
		t.Errorf("CurrentTrack() = %q, expected idle to forget the track", s.CurrentTrack())
	}
}
