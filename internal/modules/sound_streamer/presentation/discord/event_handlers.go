package discord

import (
	"log/slog"
	"time"

	"github.com/NickDriscoll/dss/internal/modules/sound_streamer/application/ports"
	"github.com/NickDriscoll/dss/internal/modules/sound_streamer/domain"
	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
)

// VoiceUpdateForwarder receives the raw voice gateway events the audio sink needs.
type VoiceUpdateForwarder interface {
	OnVoiceStateUpdate(event *discordgo.VoiceStateUpdate)
	OnVoiceServerUpdate(event *discordgo.VoiceServerUpdate)
}

// EventHandlers handles Discord voice gateway events for the sound streamer.
type EventHandlers struct {
	botID     snowflake.ID
	forwarder VoiceUpdateForwarder
	publisher ports.EventPublisher
}

// NewEventHandlers creates a new EventHandlers.
func NewEventHandlers(
	botID snowflake.ID,
	forwarder VoiceUpdateForwarder,
	publisher ports.EventPublisher,
) *EventHandlers {
	return &EventHandlers{
		botID:     botID,
		forwarder: forwarder,
		publisher: publisher,
	}
}

// HandleVoiceServerUpdate forwards the update to the audio sink.
func (h *EventHandlers) HandleVoiceServerUpdate(
	_ *discordgo.Session,
	event *discordgo.VoiceServerUpdate,
) {
	h.forwarder.OnVoiceServerUpdate(event)
}

// HandleVoiceStateUpdate forwards the update to the audio sink and reports
// the bot leaving voice.
func (h *EventHandlers) HandleVoiceStateUpdate(
	_ *discordgo.Session,
	event *discordgo.VoiceStateUpdate,
) {
	h.forwarder.OnVoiceStateUpdate(event)

	if event.UserID != h.botID.String() || event.ChannelID != "" {
		return
	}

	guildID, err := snowflake.Parse(event.GuildID)
	if err != nil {
		slog.Error("failed to parse guild ID in voice state update", "error", err)
		return
	}

	err = h.publisher.Publish(domain.VoiceDisconnectedEvent{
		GuildID: guildID,
		At:      time.Now(),
	})
	if err != nil {
		slog.Error("failed to publish voice disconnect", "guild", guildID, "error", err)
	}
}
