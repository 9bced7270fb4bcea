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

// DispatchInput contains the input for Dispatch.
type DispatchInput struct {
	GuildID       snowflake.ID
	TextChannelID snowflake.ID
	AuthorID      snowflake.ID
	Command       domain.Command
}

// Dispatcher applies the per-command policy: preconditions, join-on-demand,
// queueing, skip, pause toggling, disconnect and help.
type Dispatcher struct {
	sessions   domain.SessionRegistry
	voiceState ports.VoiceStateProvider
	voice      ports.VoiceConnection
	player     ports.AudioPlayer
	advancer   *PlaybackAdvancer
	notifier   ports.NotificationSender
	prelude    string
	manual     string
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(
	sessions domain.SessionRegistry,
	voiceState ports.VoiceStateProvider,
	voice ports.VoiceConnection,
	player ports.AudioPlayer,
	advancer *PlaybackAdvancer,
	notifier ports.NotificationSender,
	prelude string,
	ownerID snowflake.ID,
) *Dispatcher {
	return &Dispatcher{
		sessions:   sessions,
		voiceState: voiceState,
		voice:      voice,
		player:     player,
		advancer:   advancer,
		notifier:   notifier,
		prelude:    prelude,
		manual:     Manual(prelude, ownerID),
	}
}

// Dispatch executes a parsed command. User mistakes are answered in chat and
// return nil; the returned error is for faults worth logging.
func (d *Dispatcher) Dispatch(ctx context.Context, input DispatchInput) error {
	switch input.Command.Kind {
	case domain.CommandPlay:
		return d.play(ctx, input)
	case domain.CommandSkip:
		return d.skip(ctx, input)
	case domain.CommandPauseToggle:
		return d.togglePause(ctx, input)
	case domain.CommandDisconnect:
		return d.disconnect(ctx, input)
	case domain.CommandHelp:
		d.reply(input.TextChannelID, d.manual)
		return nil
	case domain.CommandUnknown:
		d.reply(input.TextChannelID, fmt.Sprintf(msgUnknownCommand, input.Command.Keyword, d.prelude))
		return nil
	default:
		return nil
	}
}

func (d *Dispatcher) play(ctx context.Context, input DispatchInput) error {
	if input.Command.Payload == "" {
		d.reply(input.TextChannelID, fmt.Sprintf(msgMissingPayload, mention(input.AuthorID), d.prelude))
		return nil
	}

	voiceChannelID, err := d.userVoiceChannel(input)
	if err != nil {
		d.reply(input.TextChannelID, fmt.Sprintf(msgNotInVoice, mention(input.AuthorID)))
		return nil
	}

	session := d.sessions.FindByVoiceChannel(voiceChannelID)
	if session == nil {
		session, err = d.summon(ctx, input, voiceChannelID)
		if err != nil || session == nil {
			return err
		}
	}

	item := domain.NewQueueItem(input.Command.Payload)
	result := session.Enqueue(item)

	slog.Info("enqueued item",
		"guild", input.GuildID,
		"session", session.ID(),
		"item", item.Value(),
		"position", result.Position,
		"was_idle", result.WasIdle,
	)

	if !result.PlaysImmediately() {
		d.reply(input.TextChannelID, fmt.Sprintf(msgQueued, item))
	}
	if !result.WasIdle {
		return nil
	}

	if err := d.advancer.Advance(ctx, session); err != nil {
		slog.Warn("failed to advance after play command",
			"guild", input.GuildID,
			"session", session.ID(),
			"error", err,
		)
	}
	return nil
}

// summon joins the voice channel and registers a session for it.
// It returns a nil session without error when the user has been told why not.
func (d *Dispatcher) summon(
	ctx context.Context,
	input DispatchInput,
	voiceChannelID snowflake.ID,
) (*domain.Session, error) {
	if other := d.sessions.FindByGuild(input.GuildID); other != nil {
		d.reply(input.TextChannelID, fmt.Sprintf(msgBusyElsewhere, mention(input.AuthorID)))
		return nil, nil
	}

	name, err := d.voiceState.GetChannelName(voiceChannelID)
	if err != nil {
		slog.Warn("failed to look up voice channel name", "channel", voiceChannelID, "error", err)
		name = voiceChannelID.String()
	}

	d.reply(input.TextChannelID, fmt.Sprintf(msgJoining, name))

	if err := d.voice.JoinChannel(ctx, input.GuildID, voiceChannelID); err != nil {
		d.reply(input.TextChannelID, fmt.Sprintf(msgJoinFailed, name))
		if leaveErr := d.voice.LeaveChannel(ctx, input.GuildID); leaveErr != nil {
			slog.Warn("failed to leave after unsuccessful join", "guild", input.GuildID, "error", leaveErr)
		}
		return nil, fmt.Errorf("failed to join voice channel: %w", err)
	}

	session, err := d.sessions.Create(input.GuildID, voiceChannelID, input.TextChannelID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	slog.Info("created session",
		"guild", input.GuildID,
		"voice_channel", voiceChannelID,
		"text_channel", input.TextChannelID,
		"session", session.ID(),
		"active_sessions", d.sessions.Count(),
	)

	return session, nil
}

func (d *Dispatcher) skip(ctx context.Context, input DispatchInput) error {
	session := d.authorSession(input)
	if session == nil || session.Status() == domain.StatusIdle {
		d.reply(input.TextChannelID, fmt.Sprintf(msgNotPlaying, mention(input.AuthorID)))
		return nil
	}

	d.reply(input.TextChannelID, msgSkipping)

	// The resulting track end event advances the queue.
	if err := d.player.Stop(ctx, input.GuildID); err != nil {
		d.reply(input.TextChannelID, msgCommandFailed)
		return fmt.Errorf("failed to stop playback: %w", err)
	}
	return nil
}

func (d *Dispatcher) togglePause(ctx context.Context, input DispatchInput) error {
	session := d.authorSession(input)
	if session == nil {
		d.reply(input.TextChannelID, fmt.Sprintf(msgNotPlaying, mention(input.AuthorID)))
		return nil
	}

	switch session.Status() {
	case domain.StatusPlaying:
		d.reply(input.TextChannelID, msgPausing)
		if err := d.player.Pause(ctx, input.GuildID); err != nil {
			d.reply(input.TextChannelID, msgCommandFailed)
			return fmt.Errorf("failed to pause playback: %w", err)
		}
		session.SetStatus(domain.StatusPaused)

	case domain.StatusPaused:
		d.reply(input.TextChannelID, msgResuming)
		if err := d.player.Resume(ctx, input.GuildID); err != nil {
			d.reply(input.TextChannelID, msgCommandFailed)
			return fmt.Errorf("failed to resume playback: %w", err)
		}
		session.SetStatus(domain.StatusPlaying)

	default:
		d.reply(input.TextChannelID, fmt.Sprintf(msgNotPlaying, mention(input.AuthorID)))
	}

	return nil
}

func (d *Dispatcher) disconnect(ctx context.Context, input DispatchInput) error {
	voiceChannelID, err := d.userVoiceChannel(input)
	if err != nil {
		d.reply(input.TextChannelID, fmt.Sprintf(msgNotSameRoom, mention(input.AuthorID)))
		return nil
	}

	session := d.sessions.FindByVoiceChannel(voiceChannelID)
	if session == nil {
		if d.sessions.FindByGuild(input.GuildID) != nil {
			d.reply(input.TextChannelID, fmt.Sprintf(msgNotSameRoom, mention(input.AuthorID)))
		} else {
			d.reply(input.TextChannelID, fmt.Sprintf(msgNotConnected, mention(input.AuthorID)))
		}
		return nil
	}

	d.reply(input.TextChannelID, msgDisconnecting)
	return d.teardown(ctx, session)
}

// HandleVoiceDisconnected discards the guild's session after the bot was
// removed from voice by something other than a Disconnect command.
func (d *Dispatcher) HandleVoiceDisconnected(
	ctx context.Context,
	event domain.VoiceDisconnectedEvent,
) error {
	session := d.sessions.FindByGuild(event.GuildID)
	if session == nil {
		return nil
	}
	if !event.At.IsZero() && session.CreatedAt().After(event.At) {
		slog.Debug("ignoring disconnect of an earlier voice connection",
			"guild", event.GuildID,
			"session", session.ID(),
		)
		return nil
	}

	slog.Info("voice connection lost, discarding session",
		"guild", event.GuildID,
		"session", session.ID(),
		"queued", session.QueueLen(),
	)

	d.reply(session.GetTextChannelID(), msgVoiceLost)
	return d.teardown(ctx, session)
}

// teardown tombstones the session, silences the sink, leaves voice and
// unregisters the session. Every step runs even if an earlier one failed.
func (d *Dispatcher) teardown(ctx context.Context, session *domain.Session) error {
	guildID := session.GetGuildID()
	discarded := session.QueuedItems()
	session.Close()

	var errs []error
	if err := d.player.Stop(ctx, guildID); err != nil {
		errs = append(errs, fmt.Errorf("failed to stop playback: %w", err))
	}
	if err := d.voice.LeaveChannel(ctx, guildID); err != nil {
		errs = append(errs, fmt.Errorf("failed to leave voice channel: %w", err))
	}
	if err := d.sessions.Remove(session); err != nil {
		slog.Error("failed to remove session", "guild", guildID, "session", session.ID(), "error", err)
		errs = append(errs, fmt.Errorf("failed to remove session: %w", err))
	}

	slog.Info("destroyed session",
		"guild", guildID,
		"session", session.ID(),
		"discarded_items", len(discarded),
		"active_sessions", d.sessions.Count(),
	)
	if len(discarded) > 0 {
		slog.Debug("discarded queued items", "guild", guildID, "items", discarded)
	}

	return errors.Join(errs...)
}

// authorSession returns the session in the author's current voice channel, or nil.
func (d *Dispatcher) authorSession(input DispatchInput) *domain.Session {
	voiceChannelID, err := d.userVoiceChannel(input)
	if err != nil {
		return nil
	}
	return d.sessions.FindByVoiceChannel(voiceChannelID)
}

func (d *Dispatcher) userVoiceChannel(input DispatchInput) (snowflake.ID, error) {
	if input.GuildID == 0 {
		return 0, ErrUserNotInVoice
	}

	channelID, err := d.voiceState.GetUserVoiceChannel(input.GuildID, input.AuthorID)
	if err != nil {
		slog.Warn("failed to look up user voice state",
			"guild", input.GuildID,
			"user", input.AuthorID,
			"error", err,
		)
		return 0, ErrUserNotInVoice
	}
	if channelID == 0 {
		return 0, ErrUserNotInVoice
	}

	return channelID, nil
}

func (d *Dispatcher) reply(channelID snowflake.ID, text string) {
	if err := d.notifier.SendText(channelID, text); err != nil {
		slog.Warn("failed to send reply", "channel", channelID, "error", err)
	}
}
