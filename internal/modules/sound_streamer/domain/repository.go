package domain

import (
	"errors"

	"github.com/disgoorg/snowflake/v2"
)

var (
	// ErrSessionExists is returned when creating a session for an occupied voice channel.
	ErrSessionExists = errors.New("session already exists for voice channel")
	// ErrSessionNotFound is returned when removing a session the registry does not hold.
	ErrSessionNotFound = errors.New("session not found")
)

// SessionRegistry holds the active sessions, at most one per voice channel.
type SessionRegistry interface {
	// FindByVoiceChannel returns the session occupying the voice channel, or nil.
	FindByVoiceChannel(voiceChannelID snowflake.ID) *Session
	// FindByGuild returns the session in the guild, or nil.
	FindByGuild(guildID snowflake.ID) *Session
	// Create registers a new idle session. It fails with ErrSessionExists if the
	// voice channel already has one.
	Create(guildID, voiceChannelID, textChannelID snowflake.ID) (*Session, error)
	// Remove unregisters exactly this session.
	Remove(session *Session) error
	// Count returns the number of active sessions.
	Count() int
}
