package ports

import "github.com/NickDriscoll/dss/internal/modules/sound_streamer/domain"

// EventPublisher defines the interface for publishing events asynchronously.
type EventPublisher interface {
	Publish(event domain.Event) error
}
