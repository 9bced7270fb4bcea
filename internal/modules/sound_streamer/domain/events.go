package domain

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// Event is anything delivered through the session event loop.
// Events of one guild are handled one at a time, in publish order.
type Event interface {
	GetGuildID() snowflake.ID
}

// TrackEndReason represents why the audio sink stopped a track.
type TrackEndReason string

const (
	// TrackEndFinished means the track finished normally.
	TrackEndFinished TrackEndReason = "finished"
	// TrackEndLoadFailed means the track failed to load.
	TrackEndLoadFailed TrackEndReason = "load_failed"
	// TrackEndStopped means the track was stopped, e.g. by a skip.
	TrackEndStopped TrackEndReason = "stopped"
	// TrackEndReplaced means another track was started over it.
	TrackEndReplaced TrackEndReason = "replaced"
	// TrackEndCleanup means the player was destroyed.
	TrackEndCleanup TrackEndReason = "cleanup"
)

// ShouldAdvanceQueue returns true if this end reason should start the next queued item.
// Skip is a stop, so a stopped track advances exactly like a finished one.
func (r TrackEndReason) ShouldAdvanceQueue() bool {
	return r == TrackEndFinished || r == TrackEndLoadFailed || r == TrackEndStopped
}

// CommandReceivedEvent is published for every chat message addressed to the streamer.
type CommandReceivedEvent struct {
	GuildID       snowflake.ID
	TextChannelID snowflake.ID
	AuthorID      snowflake.ID
	Command       Command
}

func (e CommandReceivedEvent) GetGuildID() snowflake.ID { return e.GuildID }

// TrackFinishedEvent is published by the audio sink when a track stops playing.
type TrackFinishedEvent struct {
	GuildID snowflake.ID
	Reason  TrackEndReason
	// Track is the sink handle of the track that ended, if known.
	Track string
}

func (e TrackFinishedEvent) GetGuildID() snowflake.ID { return e.GuildID }

// VoiceDisconnectedEvent is published when the bot leaves voice without a Disconnect command.
type VoiceDisconnectedEvent struct {
	GuildID snowflake.ID
	// At is when the gateway reported the disconnect. Sessions created later
	// belong to a newer connection and are left alone.
	At time.Time
}

func (e VoiceDisconnectedEvent) GetGuildID() snowflake.ID { return e.GuildID }
