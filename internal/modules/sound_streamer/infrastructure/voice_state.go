package infrastructure

import (
	"fmt"

	"github.com/NickDriscoll/dss/internal/modules/sound_streamer/application/ports"
	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
)

// VoiceStateProvider answers voice state questions from the gateway state cache.
type VoiceStateProvider struct {
	session *discordgo.Session
}

// NewVoiceStateProvider creates a new VoiceStateProvider.
func NewVoiceStateProvider(session *discordgo.Session) *VoiceStateProvider {
	return &VoiceStateProvider{
		session: session,
	}
}

// GetUserVoiceChannel returns the voice channel ID that the user is currently in.
// Returns 0 if the user is not in a voice channel.
func (v *VoiceStateProvider) GetUserVoiceChannel(
	guildID, userID snowflake.ID,
) (snowflake.ID, error) {
	guild, err := v.session.State.Guild(guildID.String())
	if err != nil {
		return 0, fmt.Errorf("failed to get guild %s: %w", guildID, err)
	}

	for _, vs := range guild.VoiceStates {
		if vs.UserID != userID.String() || vs.ChannelID == "" {
			continue
		}
		return snowflake.Parse(vs.ChannelID)
	}

	return 0, nil
}

// GetChannelName returns the channel's name, asking the REST API on a cache miss.
func (v *VoiceStateProvider) GetChannelName(channelID snowflake.ID) (string, error) {
	if channel, err := v.session.State.Channel(channelID.String()); err == nil {
		return channel.Name, nil
	}

	channel, err := v.session.Channel(channelID.String())
	if err != nil {
		return "", fmt.Errorf("failed to get channel %s: %w", channelID, err)
	}
	return channel.Name, nil
}

// Ensure VoiceStateProvider implements ports.VoiceStateProvider.
var _ ports.VoiceStateProvider = (*VoiceStateProvider)(nil)
