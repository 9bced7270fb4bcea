package infrastructure

import (
	"sync"

	"github.com/NickDriscoll/dss/internal/modules/sound_streamer/domain"
	"github.com/disgoorg/snowflake/v2"
)

// MemoryRegistry is an in-memory implementation of domain.SessionRegistry.
// Sessions are keyed by voice channel.
type MemoryRegistry struct {
	mu       sync.RWMutex
	sessions map[snowflake.ID]*domain.Session
}

// NewMemoryRegistry creates a new MemoryRegistry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		sessions: make(map[snowflake.ID]*domain.Session),
	}
}

// FindByVoiceChannel returns the session occupying the voice channel, or nil.
func (r *MemoryRegistry) FindByVoiceChannel(voiceChannelID snowflake.ID) *domain.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sessions[voiceChannelID]
}

// FindByGuild returns the session in the guild, or nil.
func (r *MemoryRegistry) FindByGuild(guildID snowflake.ID) *domain.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.sessions {
		if s.GetGuildID() == guildID {
			return s
		}
	}
	return nil
}

// Create registers a new idle session for the voice channel.
func (r *MemoryRegistry) Create(
	guildID, voiceChannelID, textChannelID snowflake.ID,
) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[voiceChannelID]; ok {
		return nil, domain.ErrSessionExists
	}

	session := domain.NewSession(guildID, voiceChannelID, textChannelID)
	r.sessions[voiceChannelID] = session
	return session, nil
}

// Remove unregisters the session. A different session registered for the
// same voice channel is left alone.
func (r *MemoryRegistry) Remove(session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.sessions[session.GetVoiceChannelID()]
	if !ok || current.ID() != session.ID() {
		return domain.ErrSessionNotFound
	}

	delete(r.sessions, session.GetVoiceChannelID())
	return nil
}

// Count returns the number of active sessions.
func (r *MemoryRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}

// Ensure MemoryRegistry implements domain.SessionRegistry.
var _ domain.SessionRegistry = (*MemoryRegistry)(nil)
