package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/NickDriscoll/dss/internal/modules/sound_streamer/application/ports"
	"github.com/NickDriscoll/dss/internal/modules/sound_streamer/domain"
	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/disgolink/v3/disgolink"
	"github.com/disgoorg/disgolink/v3/lavalink"
	"github.com/disgoorg/snowflake/v2"
)

// voiceConnectionTimeout is the maximum time to wait for voice connection to be established.
const voiceConnectionTimeout = 10 * time.Second

var (
	// ErrNoLavalinkNode is returned when no Lavalink node is connected.
	ErrNoLavalinkNode = errors.New("no available Lavalink node")
	// ErrNoPlayableAudio is returned when a link yields nothing Lavalink can play.
	ErrNoPlayableAudio = errors.New("no playable audio")
)

// LavalinkConfig contains Lavalink connection configuration.
type LavalinkConfig struct {
	Address  string
	Password string
	Secure   bool
}

// LavalinkAdapter is the audio sink and stream source, backed by a Lavalink node.
type LavalinkAdapter struct {
	link      disgolink.Client
	session   *discordgo.Session
	botID     snowflake.ID
	publisher ports.EventPublisher

	handshakeMu sync.Mutex
	handshakes  map[snowflake.ID]*voiceHandshake
}

// NewLavalinkAdapter connects to the Lavalink node. Track end events are
// published as domain.TrackFinishedEvent.
func NewLavalinkAdapter(
	ctx context.Context,
	session *discordgo.Session,
	publisher ports.EventPublisher,
	config LavalinkConfig,
) (*LavalinkAdapter, error) {
	botID, err := snowflake.Parse(session.State.User.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bot ID: %w", err)
	}

	adapter := &LavalinkAdapter{
		session:    session,
		botID:      botID,
		publisher:  publisher,
		handshakes: make(map[snowflake.ID]*voiceHandshake),
	}

	adapter.link = disgolink.New(botID,
		disgolink.WithListenerFunc(adapter.onTrackStart),
		disgolink.WithListenerFunc(adapter.onTrackEnd),
		disgolink.WithListenerFunc(adapter.onTrackException),
		disgolink.WithListenerFunc(adapter.onTrackStuck),
	)

	node, err := adapter.link.AddNode(ctx, disgolink.NodeConfig{
		Name:     "main",
		Address:  config.Address,
		Password: config.Password,
		Secure:   config.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add Lavalink node: %w", err)
	}

	slog.Info("connected to Lavalink", "node", node.Config().Name, "address", config.Address)

	return adapter, nil
}

// Close disconnects from every Lavalink node.
func (c *LavalinkAdapter) Close() {
	c.link.Close()
}

// JoinChannel joins the voice channel deafened and waits until Lavalink has
// everything it needs to send audio there.
func (c *LavalinkAdapter) JoinChannel(ctx context.Context, guildID, channelID snowflake.ID) error {
	handshake := c.beginHandshake(guildID)

	err := c.session.ChannelVoiceJoinManual(guildID.String(), channelID.String(), false, true)
	if err != nil {
		return fmt.Errorf("failed to join voice channel: %w", err)
	}

	select {
	case <-handshake.ready:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("context cancelled while waiting for voice connection: %w", ctx.Err())
	case <-time.After(voiceConnectionTimeout):
		return fmt.Errorf("timeout waiting for voice connection")
	}
}

// LeaveChannel destroys the guild's player and leaves voice.
func (c *LavalinkAdapter) LeaveChannel(ctx context.Context, guildID snowflake.ID) error {
	if player := c.link.ExistingPlayer(guildID); player != nil {
		if err := player.Destroy(ctx); err != nil {
			slog.Warn("failed to destroy player", "guild", guildID, "error", err)
		}
	}

	c.dropHandshake(guildID)

	err := c.session.ChannelVoiceJoinManual(guildID.String(), "", false, false)
	if err != nil {
		return fmt.Errorf("failed to leave voice channel: %w", err)
	}
	return nil
}

// Play starts the source from the beginning and clears any pause.
func (c *LavalinkAdapter) Play(
	ctx context.Context,
	guildID snowflake.ID,
	source *ports.AudioSource,
) error {
	player := c.link.Player(guildID)

	err := player.Update(ctx,
		lavalink.WithEncodedTrack(source.Encoded),
		lavalink.WithPaused(false),
	)
	if err != nil {
		return fmt.Errorf("failed to play track: %w", err)
	}

	return nil
}

// Stop stops the current track. Lavalink reports it as a stopped track end.
func (c *LavalinkAdapter) Stop(ctx context.Context, guildID snowflake.ID) error {
	player := c.link.ExistingPlayer(guildID)
	if player == nil {
		return nil
	}

	if err := player.Update(ctx, lavalink.WithNullTrack()); err != nil {
		return fmt.Errorf("failed to stop playback: %w", err)
	}

	return nil
}

// Pause pauses the current playback.
func (c *LavalinkAdapter) Pause(ctx context.Context, guildID snowflake.ID) error {
	player := c.link.Player(guildID)

	if err := player.Update(ctx, lavalink.WithPaused(true)); err != nil {
		return fmt.Errorf("failed to pause playback: %w", err)
	}

	return nil
}

// Resume resumes the current playback.
func (c *LavalinkAdapter) Resume(ctx context.Context, guildID snowflake.ID) error {
	player := c.link.Player(guildID)

	if err := player.Update(ctx, lavalink.WithPaused(false)); err != nil {
		return fmt.Errorf("failed to resume playback: %w", err)
	}

	return nil
}

// OpenStream loads the link and returns its first playable track.
func (c *LavalinkAdapter) OpenStream(ctx context.Context, link string) (*ports.AudioSource, error) {
	tracks, err := c.loadTracks(ctx, link)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w at %s", ErrNoPlayableAudio, link)
	}

	return toAudioSource(tracks[0]), nil
}

// loadTracks asks the best node to load the identifier and flattens the result.
func (c *LavalinkAdapter) loadTracks(ctx context.Context, identifier string) ([]lavalink.Track, error) {
	node := c.link.BestNode()
	if node == nil {
		return nil, ErrNoLavalinkNode
	}

	result, err := node.LoadTracks(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("failed to load tracks: %w", err)
	}

	switch data := result.Data.(type) {
	case lavalink.Track:
		return []lavalink.Track{data}, nil
	case lavalink.Playlist:
		return data.Tracks, nil
	case lavalink.Search:
		return data, nil
	case lavalink.Exception:
		return nil, fmt.Errorf("failed to load tracks: %s", data.Message)
	default:
		return nil, nil
	}
}

func toAudioSource(track lavalink.Track) *ports.AudioSource {
	info := track.Info
	uri := ""
	if info.URI != nil {
		uri = *info.URI
	}

	return &ports.AudioSource{
		Encoded:  track.Encoded,
		Title:    info.Title,
		Author:   info.Author,
		URI:      uri,
		Duration: time.Duration(info.Length) * time.Millisecond,
		IsStream: info.IsStream,
	}
}

// OnVoiceServerUpdate handles Discord voice server updates.
// This must be called from the Discord event handler.
func (c *LavalinkAdapter) OnVoiceServerUpdate(event *discordgo.VoiceServerUpdate) {
	guildID, err := snowflake.Parse(event.GuildID)
	if err != nil {
		slog.Error("failed to parse guild ID in voice server update", "error", err)
		return
	}

	if creds, ok := c.handshake(guildID).setServer(event.Token, event.Endpoint); ok {
		c.forward(guildID, creds)
	}
}

// OnVoiceStateUpdate handles Discord voice state updates of the bot itself.
// This must be called from the Discord event handler.
func (c *LavalinkAdapter) OnVoiceStateUpdate(event *discordgo.VoiceStateUpdate) {
	if event.UserID != c.botID.String() {
		return
	}

	guildID, err := snowflake.Parse(event.GuildID)
	if err != nil {
		slog.Error("failed to parse guild ID in voice state update", "error", err)
		return
	}

	if event.ChannelID == "" {
		c.link.OnVoiceStateUpdate(context.Background(), guildID, nil, event.SessionID)
		// A late echo of a previous leave must not discard the pending handshake of a new join.
		c.dropCompletedHandshake(guildID)
		return
	}

	channelID, err := snowflake.Parse(event.ChannelID)
	if err != nil {
		slog.Error("failed to parse channel ID in voice state update", "error", err)
		return
	}

	if creds, ok := c.handshake(guildID).setState(&channelID, event.SessionID); ok {
		c.forward(guildID, creds)
	}
}

// handshake returns the guild's voice handshake, creating one if needed.
func (c *LavalinkAdapter) handshake(guildID snowflake.ID) *voiceHandshake {
	c.handshakeMu.Lock()
	defer c.handshakeMu.Unlock()

	h, ok := c.handshakes[guildID]
	if !ok {
		h = newVoiceHandshake()
		c.handshakes[guildID] = h
	}
	return h
}

// beginHandshake replaces the guild's handshake with a fresh one for a new join.
func (c *LavalinkAdapter) beginHandshake(guildID snowflake.ID) *voiceHandshake {
	h := newVoiceHandshake()

	c.handshakeMu.Lock()
	c.handshakes[guildID] = h
	c.handshakeMu.Unlock()

	return h
}

func (c *LavalinkAdapter) dropCompletedHandshake(guildID snowflake.ID) {
	c.handshakeMu.Lock()
	defer c.handshakeMu.Unlock()

	if h, ok := c.handshakes[guildID]; ok && h.complete() {
		delete(c.handshakes, guildID)
	}
}

func (c *LavalinkAdapter) dropHandshake(guildID snowflake.ID) {
	c.handshakeMu.Lock()
	defer c.handshakeMu.Unlock()
	delete(c.handshakes, guildID)
}

// forward hands a complete handshake to Lavalink, state first.
func (c *LavalinkAdapter) forward(guildID snowflake.ID, creds voiceCredentials) {
	slog.Debug("forwarding voice credentials to Lavalink",
		"guild", guildID,
		"channel", creds.channelID,
		"hasSessionID", creds.sessionID != "",
	)

	c.link.OnVoiceStateUpdate(context.Background(), guildID, creds.channelID, creds.sessionID)
	c.link.OnVoiceServerUpdate(context.Background(), guildID, creds.token, creds.endpoint)
}

func (c *LavalinkAdapter) onTrackStart(player disgolink.Player, event lavalink.TrackStartEvent) {
	slog.Debug("track started", "guild", player.GuildID(), "track", event.Track.Info.Title)
}

func (c *LavalinkAdapter) onTrackEnd(player disgolink.Player, event lavalink.TrackEndEvent) {
	slog.Debug("track ended", "guild", player.GuildID(), "reason", event.Reason)

	err := c.publisher.Publish(domain.TrackFinishedEvent{
		GuildID: player.GuildID(),
		Reason:  convertEndReason(event.Reason),
		Track:   event.Track.Encoded,
	})
	if err != nil {
		slog.Warn("failed to publish track end", "guild", player.GuildID(), "error", err)
	}
}

func (c *LavalinkAdapter) onTrackException(
	player disgolink.Player,
	event lavalink.TrackExceptionEvent,
) {
	slog.Warn("track exception", "guild", player.GuildID(), "error", event.Exception.Message)
}

func (c *LavalinkAdapter) onTrackStuck(player disgolink.Player, event lavalink.TrackStuckEvent) {
	slog.Warn("track stuck", "guild", player.GuildID(), "threshold", event.Threshold)
}

func convertEndReason(reason lavalink.TrackEndReason) domain.TrackEndReason {
	switch reason {
	case lavalink.TrackEndReasonFinished:
		return domain.TrackEndFinished
	case lavalink.TrackEndReasonLoadFailed:
		return domain.TrackEndLoadFailed
	case lavalink.TrackEndReasonStopped:
		return domain.TrackEndStopped
	case lavalink.TrackEndReasonReplaced:
		return domain.TrackEndReplaced
	case lavalink.TrackEndReasonCleanup:
		return domain.TrackEndCleanup
	default:
		return domain.TrackEndStopped
	}
}

// Ensure LavalinkAdapter implements port interfaces.
var (
	_ ports.AudioPlayer     = (*LavalinkAdapter)(nil)
	_ ports.VoiceConnection = (*LavalinkAdapter)(nil)
	_ ports.StreamOpener    = (*LavalinkAdapter)(nil)
)
