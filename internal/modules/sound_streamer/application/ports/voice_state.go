package ports

import "github.com/disgoorg/snowflake/v2"

// VoiceStateProvider answers questions about who is where on the chat platform.
type VoiceStateProvider interface {
	// GetUserVoiceChannel returns the voice channel the user is in, or 0.
	GetUserVoiceChannel(guildID, userID snowflake.ID) (snowflake.ID, error)
	// GetChannelName returns the display name of a channel.
	GetChannelName(channelID snowflake.ID) (string, error)
}
