package application

import (
	"context"
	"errors"
	"log/slog"
	"reflect"

	"github.com/NickDriscoll/dss/internal/modules/sound_streamer/application/ports"
	"github.com/NickDriscoll/dss/internal/modules/sound_streamer/application/usecases"
	"github.com/NickDriscoll/dss/internal/modules/sound_streamer/domain"
)

// SessionEventHandler routes events from the session event loop to the use cases.
type SessionEventHandler struct {
	dispatcher *usecases.Dispatcher
	advancer   *usecases.PlaybackAdvancer
	subscriber ports.EventSubscriber
}

// NewSessionEventHandler creates a new SessionEventHandler.
func NewSessionEventHandler(
	dispatcher *usecases.Dispatcher,
	advancer *usecases.PlaybackAdvancer,
	subscriber ports.EventSubscriber,
) *SessionEventHandler {
	return &SessionEventHandler{
		dispatcher: dispatcher,
		advancer:   advancer,
		subscriber: subscriber,
	}
}

// Start registers event handlers with the subscriber.
func (h *SessionEventHandler) Start() error {
	err := h.subscriber.Subscribe(
		reflect.TypeFor[domain.CommandReceivedEvent](),
		func(ctx context.Context, e domain.Event) {
			h.handleCommandReceived(ctx, e.(domain.CommandReceivedEvent))
		},
	)
	if err != nil {
		return err
	}

	err = h.subscriber.Subscribe(
		reflect.TypeFor[domain.TrackFinishedEvent](),
		func(ctx context.Context, e domain.Event) {
			h.handleTrackFinished(ctx, e.(domain.TrackFinishedEvent))
		},
	)
	if err != nil {
		return err
	}

	err = h.subscriber.Subscribe(
		reflect.TypeFor[domain.VoiceDisconnectedEvent](),
		func(ctx context.Context, e domain.Event) {
			h.handleVoiceDisconnected(ctx, e.(domain.VoiceDisconnectedEvent))
		},
	)
	if err != nil {
		return err
	}

	slog.Debug("session event handlers properly registered")

	return nil
}

func (h *SessionEventHandler) handleCommandReceived(
	ctx context.Context,
	event domain.CommandReceivedEvent,
) {
	err := h.dispatcher.Dispatch(ctx, usecases.DispatchInput{
		GuildID:       event.GuildID,
		TextChannelID: event.TextChannelID,
		AuthorID:      event.AuthorID,
		Command:       event.Command,
	})
	if err != nil {
		slog.Error("failed to handle command",
			"guild", event.GuildID,
			"author", event.AuthorID,
			"command", event.Command.Kind.String(),
			"error", err,
		)
	}
}

func (h *SessionEventHandler) handleTrackFinished(
	ctx context.Context,
	event domain.TrackFinishedEvent,
) {
	err := h.advancer.HandleTrackFinished(ctx, event)
	switch {
	case err == nil:
	case errors.Is(err, usecases.ErrNotFound), errors.Is(err, usecases.ErrSessionClosed):
		slog.Debug("queue advance ended early", "guild", event.GuildID, "reason", err)
	default:
		slog.Warn("failed to advance queue", "guild", event.GuildID, "error", err)
	}
}

func (h *SessionEventHandler) handleVoiceDisconnected(
	ctx context.Context,
	event domain.VoiceDisconnectedEvent,
) {
	if err := h.dispatcher.HandleVoiceDisconnected(ctx, event); err != nil {
		slog.Warn("failed to clean up after voice disconnect", "guild", event.GuildID, "error", err)
	}
}
