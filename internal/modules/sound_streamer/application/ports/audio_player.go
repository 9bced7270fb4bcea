package ports

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
)

// AudioPlayer drives the audio sink of a guild's voice connection.
// When a track stops for any reason the sink publishes a domain.TrackFinishedEvent.
type AudioPlayer interface {
	// Play starts the source, replacing anything playing and clearing a pause.
	Play(ctx context.Context, guildID snowflake.ID, source *AudioSource) error
	Stop(ctx context.Context, guildID snowflake.ID) error
	Pause(ctx context.Context, guildID snowflake.ID) error
	Resume(ctx context.Context, guildID snowflake.ID) error
}
