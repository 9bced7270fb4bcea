package domain

import (
	"sync"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/google/uuid"
)

// PlaybackStatus is the coarse playback state of a session.
type PlaybackStatus int

const (
	StatusIdle PlaybackStatus = iota
	StatusPlaying
	StatusPaused
)

// String returns the string representation of the playback status.
func (s PlaybackStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	default:
		return "unknown"
	}
}

// EnqueueResult describes the session as it was when an item was enqueued.
type EnqueueResult struct {
	// Position is the zero-based position of the new item.
	Position int
	// WasIdle is true if nothing was being played when the item arrived.
	WasIdle bool
}

// PlaysImmediately returns true if the enqueued item is the next thing to play.
func (r EnqueueResult) PlaysImmediately() bool {
	return r.WasIdle && r.Position == 0
}

// Session is the playback context of one voice channel.
// Once closed, every mutator becomes a no-op.
type Session struct {
	mu sync.Mutex

	id             uuid.UUID
	guildID        snowflake.ID
	voiceChannelID snowflake.ID
	textChannelID  snowflake.ID
	createdAt      time.Time

	queue  *Queue
	status PlaybackStatus
	track  string // sink handle of the stream being played
	closed bool
}

// NewSession creates an idle session with an empty queue.
func NewSession(guildID, voiceChannelID, textChannelID snowflake.ID) *Session {
	return &Session{
		id:             uuid.New(),
		guildID:        guildID,
		voiceChannelID: voiceChannelID,
		textChannelID:  textChannelID,
		createdAt:      time.Now(),
		queue:          NewQueue(),
		status:         StatusIdle,
	}
}

func (s *Session) ID() uuid.UUID                   { return s.id }
func (s *Session) GetGuildID() snowflake.ID        { return s.guildID }
func (s *Session) GetVoiceChannelID() snowflake.ID { return s.voiceChannelID }
func (s *Session) GetTextChannelID() snowflake.ID  { return s.textChannelID }
func (s *Session) CreatedAt() time.Time            { return s.createdAt }

// Status returns the current playback status.
func (s *Session) Status() PlaybackStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// SetStatus updates the playback status. It is ignored on a closed session.
// Going idle forgets the current track.
func (s *Session) SetStatus(status PlaybackStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.status = status
	if status == StatusIdle {
		s.track = ""
	}
}

// MarkPlaying records that the sink started the given track.
func (s *Session) MarkPlaying(track string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.status = StatusPlaying
	s.track = track
}

// CurrentTrack returns the sink handle of the track being played, or "".
func (s *Session) CurrentTrack() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.track
}

// Enqueue appends an item to the queue.
func (s *Session) Enqueue(item QueueItem) EnqueueResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return EnqueueResult{}
	}
	wasIdle := s.status == StatusIdle
	return EnqueueResult{
		Position: s.queue.Push(item),
		WasIdle:  wasIdle,
	}
}

// PopNext removes and returns the head of the queue.
// It returns false if the queue is empty or the session is closed.
func (s *Session) PopNext() (QueueItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return QueueItem{}, false
	}
	item, err := s.queue.Pop()
	if err != nil {
		return QueueItem{}, false
	}
	return item, true
}

// QueueLen returns the number of items waiting to be played.
func (s *Session) QueueLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}

// QueuedItems returns a snapshot of the queue in playback order.
func (s *Session) QueuedItems() []QueueItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Items()
}

// Close tombstones the session and discards its queue.
// Operations that were in flight when Close was called must check IsClosed before mutating.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.status = StatusIdle
	s.track = ""
	s.queue.Clear()
}

// IsClosed returns true once the session has been disconnected.
func (s *Session) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
