package infrastructure

import (
	"fmt"

	"github.com/NickDriscoll/dss/internal/modules/sound_streamer/application/ports"
	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
)

// Notifier sends plain text replies to Discord channels.
type Notifier struct {
	session *discordgo.Session
}

// NewNotifier creates a new Notifier.
func NewNotifier(session *discordgo.Session) *Notifier {
	return &Notifier{
		session: session,
	}
}

// SendText posts text to the channel.
func (n *Notifier) SendText(channelID snowflake.ID, text string) error {
	if _, err := n.session.ChannelMessageSend(channelID.String(), text); err != nil {
		return fmt.Errorf("failed to send message to %s: %w", channelID, err)
	}
	return nil
}

// Ensure Notifier implements ports.NotificationSender.
var _ ports.NotificationSender = (*Notifier)(nil)
