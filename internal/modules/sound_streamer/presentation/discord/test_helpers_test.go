package discord

import (
	"errors"
	"sync"

	"github.com/NickDriscoll/dss/internal/modules/sound_streamer/domain"
	"github.com/bwmarrin/discordgo"
)

const (
	testBotID   = "10"
	testGuildID = "1"
	testChannel = "200"
	testUserID  = "300"
)

type fakePublisher struct {
	mu     sync.Mutex
	events []domain.Event
	err    error
}

func (p *fakePublisher) Publish(event domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) published() []domain.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.Event(nil), p.events...)
}

var errPublish = errors.New("publish failed")

type fakeForwarder struct {
	states  []*discordgo.VoiceStateUpdate
	servers []*discordgo.VoiceServerUpdate
}

func (f *fakeForwarder) OnVoiceStateUpdate(event *discordgo.VoiceStateUpdate) {
	f.states = append(f.states, event)
}

func (f *fakeForwarder) OnVoiceServerUpdate(event *discordgo.VoiceServerUpdate) {
	f.servers = append(f.servers, event)
}

func message(authorID, guildID, content string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{
		Message: &discordgo.Message{
			ID:        "999",
			ChannelID: testChannel,
			GuildID:   guildID,
			Content:   content,
			Author:    &discordgo.User{ID: authorID},
		},
	}
}
