package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/NickDriscoll/dss/internal/modules/sound_streamer/application/ports"
	"github.com/NickDriscoll/dss/internal/modules/sound_streamer/domain"
	"github.com/disgoorg/snowflake/v2"
)

// PlaybackAdvancer pops the next queued item of a session and starts playing it.
// It runs both for Play commands on an idle session and for finished tracks.
type PlaybackAdvancer struct {
	sessions domain.SessionRegistry
	resolver *TrackResolver
	streams  ports.StreamOpener
	player   ports.AudioPlayer
	notifier ports.NotificationSender
}

// NewPlaybackAdvancer creates a new PlaybackAdvancer.
func NewPlaybackAdvancer(
	sessions domain.SessionRegistry,
	resolver *TrackResolver,
	streams ports.StreamOpener,
	player ports.AudioPlayer,
	notifier ports.NotificationSender,
) *PlaybackAdvancer {
	return &PlaybackAdvancer{
		sessions: sessions,
		resolver: resolver,
		streams:  streams,
		player:   player,
		notifier: notifier,
	}
}

// Advance starts the head of the session's queue. With an empty queue the
// session is left idle. Failures are reported to the session's text channel,
// leave the session idle and discard the item; the next item is not tried.
func (a *PlaybackAdvancer) Advance(ctx context.Context, session *domain.Session) error {
	item, ok := session.PopNext()
	if !ok {
		session.SetStatus(domain.StatusIdle)
		if session.IsClosed() {
			return ErrSessionClosed
		}
		return nil
	}

	guildID := session.GetGuildID()
	channelID := session.GetTextChannelID()

	link := item.Value()
	if !item.IsResolved() {
		a.notify(channelID, fmt.Sprintf(msgSearching, item.Value()))

		resolved, err := a.resolver.Resolve(ctx, item.Value())
		if session.IsClosed() {
			return ErrSessionClosed
		}
		if err != nil {
			session.SetStatus(domain.StatusIdle)
			if errors.Is(err, ErrNotFound) {
				a.notify(channelID, msgNoResults)
			} else {
				a.notify(channelID, fmt.Sprintf(msgSearchFailed, item.Value()))
			}
			return err
		}
		link = resolved
	}

	source, err := a.streams.OpenStream(ctx, link)
	if session.IsClosed() {
		return ErrSessionClosed
	}
	if err != nil {
		session.SetStatus(domain.StatusIdle)
		a.notify(channelID, fmt.Sprintf(msgLoadFailed, link))
		return fmt.Errorf("failed to open stream: %w", err)
	}

	if err := a.player.Play(ctx, guildID, source); err != nil {
		session.SetStatus(domain.StatusIdle)
		if session.IsClosed() {
			return ErrSessionClosed
		}
		a.notify(channelID, fmt.Sprintf(msgPlayFailed, link))
		return fmt.Errorf("failed to start playback: %w", err)
	}
	if session.IsClosed() {
		// Disconnected while the sink was starting; silence whatever it started.
		if err := a.player.Stop(ctx, guildID); err != nil {
			slog.Warn("failed to stop playback of closed session", "guild", guildID, "error", err)
		}
		return ErrSessionClosed
	}

	session.MarkPlaying(source.Encoded)
	a.notify(channelID, fmt.Sprintf(msgNowPlaying, link))

	slog.Info("started playback",
		"guild", guildID,
		"session", session.ID(),
		"link", link,
		"title", source.Title,
		"queued", session.QueueLen(),
	)

	return nil
}

// HandleTrackFinished advances the guild's session after its current track ended.
func (a *PlaybackAdvancer) HandleTrackFinished(
	ctx context.Context,
	event domain.TrackFinishedEvent,
) error {
	session := a.sessions.FindByGuild(event.GuildID)
	if session == nil || session.IsClosed() {
		slog.Debug("track finished without an active session", "guild", event.GuildID)
		return nil
	}

	if !event.Reason.ShouldAdvanceQueue() {
		slog.Debug("track ended without advancing", "guild", event.GuildID, "reason", event.Reason)
		return nil
	}

	if session.Status() == domain.StatusIdle {
		slog.Debug("ignoring track end for idle session", "guild", event.GuildID)
		return nil
	}

	if event.Track != "" && event.Track != session.CurrentTrack() {
		slog.Debug("ignoring track end of a track this session is not playing",
			"guild", event.GuildID,
			"session", session.ID(),
		)
		return nil
	}

	slog.Debug("track finished, advancing queue",
		"guild", event.GuildID,
		"reason", event.Reason,
		"queued", session.QueueLen(),
	)

	session.SetStatus(domain.StatusIdle)
	return a.Advance(ctx, session)
}

func (a *PlaybackAdvancer) notify(channelID snowflake.ID, text string) {
	if err := a.notifier.SendText(channelID, text); err != nil {
		slog.Warn("failed to send message", "channel", channelID, "error", err)
	}
}
