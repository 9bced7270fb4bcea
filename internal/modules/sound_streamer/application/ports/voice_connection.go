package ports

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
)

// VoiceConnection manages the bot's presence in voice channels.
type VoiceConnection interface {
	// JoinChannel connects to the voice channel and returns once audio can be sent.
	JoinChannel(ctx context.Context, guildID, channelID snowflake.ID) error
	LeaveChannel(ctx context.Context, guildID snowflake.ID) error
}
