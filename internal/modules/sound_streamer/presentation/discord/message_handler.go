package discord

import (
	"errors"
	"log/slog"

	"github.com/NickDriscoll/dss/internal/modules/sound_streamer/application/ports"
	"github.com/NickDriscoll/dss/internal/modules/sound_streamer/domain"
	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
)

// MessageHandler turns chat messages addressed to the bot into command events.
type MessageHandler struct {
	botID     snowflake.ID
	prelude   string
	publisher ports.EventPublisher
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(
	botID snowflake.ID,
	prelude string,
	publisher ports.EventPublisher,
) *MessageHandler {
	return &MessageHandler{
		botID:     botID,
		prelude:   prelude,
		publisher: publisher,
	}
}

// HandleMessageCreate parses the message and publishes a domain.CommandReceivedEvent
// when it starts with the prelude.
func (h *MessageHandler) HandleMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.Author.ID == h.botID.String() {
		return
	}

	cmd, err := domain.ParseCommand(h.prelude, m.Content)
	if !cmd.IsCommand() {
		return
	}
	if err != nil && !errors.Is(err, domain.ErrMissingArgument) {
		slog.Warn("failed to parse command", "content", m.Content, "error", err)
		return
	}

	event, err := h.commandEvent(m, cmd)
	if err != nil {
		slog.Error("failed to parse message IDs", "message", m.ID, "error", err)
		return
	}

	slog.Debug("command received",
		"guild", event.GuildID,
		"channel", event.TextChannelID,
		"author", event.AuthorID,
		"command", cmd.Kind,
	)

	if err := h.publisher.Publish(event); err != nil {
		slog.Error("failed to publish command", "guild", event.GuildID, "error", err)
	}
}

func (h *MessageHandler) commandEvent(
	m *discordgo.MessageCreate,
	cmd domain.Command,
) (domain.CommandReceivedEvent, error) {
	channelID, err := snowflake.Parse(m.ChannelID)
	if err != nil {
		return domain.CommandReceivedEvent{}, err
	}
	authorID, err := snowflake.Parse(m.Author.ID)
	if err != nil {
		return domain.CommandReceivedEvent{}, err
	}

	// Direct messages have no guild.
	var guildID snowflake.ID
	if m.GuildID != "" {
		guildID, err = snowflake.Parse(m.GuildID)
		if err != nil {
			return domain.CommandReceivedEvent{}, err
		}
	}

	return domain.CommandReceivedEvent{
		GuildID:       guildID,
		TextChannelID: channelID,
		AuthorID:      authorID,
		Command:       cmd,
	}, nil
}

// HandleTypingStart logs typing activity.
func (h *MessageHandler) HandleTypingStart(_ *discordgo.Session, t *discordgo.TypingStart) {
	slog.Debug("user typing", "user", t.UserID, "channel", t.ChannelID, "guild", t.GuildID)
}
