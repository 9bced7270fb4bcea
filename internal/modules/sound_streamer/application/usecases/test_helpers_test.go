package usecases

import (
	"context"
	"time"

	"github.com/NickDriscoll/dss/internal/modules/sound_streamer/application/ports"
	"github.com/NickDriscoll/dss/internal/modules/sound_streamer/domain"
	"github.com/disgoorg/snowflake/v2"
)

const (
	testGuildID        = snowflake.ID(1)
	testVoiceChannelID = snowflake.ID(100)
	testOtherVoiceID   = snowflake.ID(101)
	testTextChannelID  = snowflake.ID(200)
	testUserID         = snowflake.ID(300)
	testOtherUserID    = snowflake.ID(301)
)

type mockRegistry struct {
	sessions map[snowflake.ID]*domain.Session
	removed  []*domain.Session
}

func newMockRegistry() *mockRegistry {
	return &mockRegistry{
		sessions: make(map[snowflake.ID]*domain.Session),
	}
}

func (m *mockRegistry) FindByVoiceChannel(voiceChannelID snowflake.ID) *domain.Session {
	return m.sessions[voiceChannelID]
}

func (m *mockRegistry) FindByGuild(guildID snowflake.ID) *domain.Session {
	for _, s := range m.sessions {
		if s.GetGuildID() == guildID {
			return s
		}
	}
	return nil
}

func (m *mockRegistry) Create(
	guildID, voiceChannelID, textChannelID snowflake.ID,
) (*domain.Session, error) {
	if _, ok := m.sessions[voiceChannelID]; ok {
		return nil, domain.ErrSessionExists
	}
	s := domain.NewSession(guildID, voiceChannelID, textChannelID)
	m.sessions[voiceChannelID] = s
	return s, nil
}

func (m *mockRegistry) Remove(session *domain.Session) error {
	if m.sessions[session.GetVoiceChannelID()] != session {
		return domain.ErrSessionNotFound
	}
	delete(m.sessions, session.GetVoiceChannelID())
	m.removed = append(m.removed, session)
	return nil
}

func (m *mockRegistry) Count() int {
	return len(m.sessions)
}

type mockSearcher struct {
	results map[string]string
	err     error
	block   bool
	queries []string

	// onSearch runs before Search returns, e.g. to simulate a concurrent disconnect.
	onSearch func()
}

func (m *mockSearcher) Search(ctx context.Context, query string) (string, error) {
	m.queries = append(m.queries, query)
	if m.onSearch != nil {
		m.onSearch()
	}
	if m.block {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(5 * time.Second):
		}
	}
	if m.err != nil {
		return "", m.err
	}
	return m.results[query], nil
}

type mockStreamOpener struct {
	err    error
	opened []string
}

func (m *mockStreamOpener) OpenStream(_ context.Context, link string) (*ports.AudioSource, error) {
	m.opened = append(m.opened, link)
	if m.err != nil {
		return nil, m.err
	}
	return &ports.AudioSource{
		Encoded: "encoded:" + link,
		Title:   "Title of " + link,
		URI:     link,
	}, nil
}

type mockAudioPlayer struct {
	playErr   error
	stopErr   error
	pauseErr  error
	resumeErr error

	played  []*ports.AudioSource
	stops   int
	pauses  int
	resumes int

	// onPlay runs before Play returns, e.g. to simulate a concurrent disconnect.
	onPlay func()
}

func (m *mockAudioPlayer) Play(_ context.Context, _ snowflake.ID, source *ports.AudioSource) error {
	if m.onPlay != nil {
		m.onPlay()
	}
	if m.playErr != nil {
		return m.playErr
	}
	m.played = append(m.played, source)
	return nil
}

func (m *mockAudioPlayer) Stop(_ context.Context, _ snowflake.ID) error {
	m.stops++
	return m.stopErr
}

func (m *mockAudioPlayer) Pause(_ context.Context, _ snowflake.ID) error {
	m.pauses++
	return m.pauseErr
}

func (m *mockAudioPlayer) Resume(_ context.Context, _ snowflake.ID) error {
	m.resumes++
	return m.resumeErr
}

// playedURIs returns the URIs of every source handed to Play, in order.
func (m *mockAudioPlayer) playedURIs() []string {
	uris := make([]string, len(m.played))
	for i, s := range m.played {
		uris[i] = s.URI
	}
	return uris
}

type mockVoiceConnection struct {
	joinErr  error
	leaveErr error
	joins    []snowflake.ID
	leaves   int
}

func (m *mockVoiceConnection) JoinChannel(_ context.Context, _, channelID snowflake.ID) error {
	m.joins = append(m.joins, channelID)
	return m.joinErr
}

func (m *mockVoiceConnection) LeaveChannel(_ context.Context, _ snowflake.ID) error {
	m.leaves++
	return m.leaveErr
}

type mockVoiceStateProvider struct {
	channels map[snowflake.ID]snowflake.ID // userID -> channelID
	names    map[snowflake.ID]string
	err      error
}

func (m *mockVoiceStateProvider) GetUserVoiceChannel(
	_, userID snowflake.ID,
) (snowflake.ID, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.channels[userID], nil
}

func (m *mockVoiceStateProvider) GetChannelName(channelID snowflake.ID) (string, error) {
	return m.names[channelID], nil
}

type sentMessage struct {
	channelID snowflake.ID
	text      string
}

type mockNotifier struct {
	sent []sentMessage
	err  error
}

func (m *mockNotifier) SendText(channelID snowflake.ID, text string) error {
	m.sent = append(m.sent, sentMessage{channelID: channelID, text: text})
	return m.err
}

func (m *mockNotifier) texts() []string {
	texts := make([]string, len(m.sent))
	for i, s := range m.sent {
		texts[i] = s.text
	}
	return texts
}

func (m *mockNotifier) reset() {
	m.sent = nil
}

// harness wires a Dispatcher and PlaybackAdvancer to mocks.
type harness struct {
	registry   *mockRegistry
	searcher   *mockSearcher
	streams    *mockStreamOpener
	player     *mockAudioPlayer
	voice      *mockVoiceConnection
	voiceState *mockVoiceStateProvider
	notifier   *mockNotifier
	advancer   *PlaybackAdvancer
	dispatcher *Dispatcher
}

func newHarness() *harness {
	h := &harness{
		registry: newMockRegistry(),
		searcher: &mockSearcher{results: make(map[string]string)},
		streams:  &mockStreamOpener{},
		player:   &mockAudioPlayer{},
		voice:    &mockVoiceConnection{},
		voiceState: &mockVoiceStateProvider{
			channels: map[snowflake.ID]snowflake.ID{testUserID: testVoiceChannelID},
			names:    map[snowflake.ID]string{testVoiceChannelID: "General"},
		},
		notifier: &mockNotifier{},
	}
	h.advancer = NewPlaybackAdvancer(
		h.registry,
		NewTrackResolver(h.searcher, time.Second),
		h.streams,
		h.player,
		h.notifier,
	)
	h.dispatcher = NewDispatcher(
		h.registry,
		h.voiceState,
		h.voice,
		h.player,
		h.advancer,
		h.notifier,
		"!dss",
		0,
	)
	return h
}

func commandInput(kind domain.CommandKind, payload string) DispatchInput {
	return DispatchInput{
		GuildID:       testGuildID,
		TextChannelID: testTextChannelID,
		AuthorID:      testUserID,
		Command:       domain.Command{Kind: kind, Payload: payload},
	}
}

// finish simulates the audio sink reporting the end of the session's current track.
func (h *harness) finish(ctx context.Context, reason domain.TrackEndReason) error {
	track := ""
	if s := h.registry.FindByGuild(testGuildID); s != nil {
		track = s.CurrentTrack()
	}
	return h.advancer.HandleTrackFinished(ctx, domain.TrackFinishedEvent{
		GuildID: testGuildID,
		Reason:  reason,
		Track:   track,
	})
}
