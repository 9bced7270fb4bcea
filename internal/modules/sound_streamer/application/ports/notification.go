package ports

import "github.com/disgoorg/snowflake/v2"

// NotificationSender posts status and feedback messages to text channels.
type NotificationSender interface {
	SendText(channelID snowflake.ID, text string) error
}
