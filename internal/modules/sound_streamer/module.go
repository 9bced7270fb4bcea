package sound_streamer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/NickDriscoll/dss/internal/bot"
	"github.com/NickDriscoll/dss/internal/modules/sound_streamer/application"
	"github.com/NickDriscoll/dss/internal/modules/sound_streamer/application/ports"
	"github.com/NickDriscoll/dss/internal/modules/sound_streamer/application/usecases"
	"github.com/NickDriscoll/dss/internal/modules/sound_streamer/domain"
	"github.com/NickDriscoll/dss/internal/modules/sound_streamer/infrastructure"
	"github.com/NickDriscoll/dss/internal/modules/sound_streamer/presentation/discord"
	"github.com/caarlos0/env/v11"
	"github.com/disgoorg/snowflake/v2"
)

// lavalinkConnectTimeout bounds the initial connection to the Lavalink node.
const lavalinkConnectTimeout = 15 * time.Second

func init() {
	bot.Register(&SoundStreamerModule{})
}

// Compile-time interface checks.
var _ bot.ConfigurableModule = (*SoundStreamerModule)(nil)

// SoundStreamerModule streams audio into voice channels on chat command.
type SoundStreamerModule struct {
	config *Config

	eventLoop       *infrastructure.SessionEventLoop
	lavalinkAdapter *infrastructure.LavalinkAdapter
	sessionHandler  *application.SessionEventHandler

	messageHandler *discord.MessageHandler
	eventHandlers  *discord.EventHandlers
}

// Name returns the module name.
func (m *SoundStreamerModule) Name() string {
	return "sound_streamer"
}

// EventHandlers returns the event handlers for this module.
func (m *SoundStreamerModule) EventHandlers() []bot.EventHandler {
	return []bot.EventHandler{
		m.messageHandler.HandleMessageCreate,
		m.messageHandler.HandleTypingStart,
		m.eventHandlers.HandleVoiceServerUpdate,
		m.eventHandlers.HandleVoiceStateUpdate,
	}
}

// LoadConfig loads module-specific configuration from environment variables.
func (m *SoundStreamerModule) LoadConfig(environment bot.Environment) error {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, environment.EnvOptions()); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.config = cfg
	return nil
}

// Init initializes the module.
func (m *SoundStreamerModule) Init(deps bot.ModuleDependencies) error {
	if deps.Session == nil || deps.Config == nil {
		return errors.New("sound_streamer requires a Discord session and bot config")
	}
	if m.config == nil {
		return errors.New("sound_streamer config not loaded")
	}

	botID, err := snowflake.Parse(deps.Session.State.User.ID)
	if err != nil {
		return fmt.Errorf("failed to parse bot ID: %w", err)
	}

	// The Lavalink adapter publishes track ends into the loop.
	m.eventLoop = infrastructure.NewSessionEventLoop(infrastructure.DefaultEventBufferSize)

	ctx, cancel := context.WithTimeout(context.Background(), lavalinkConnectTimeout)
	defer cancel()

	lavalinkAdapter, err := infrastructure.NewLavalinkAdapter(
		ctx,
		deps.Session,
		m.eventLoop,
		infrastructure.LavalinkConfig{
			Address:  m.config.LavalinkAddress,
			Password: m.config.LavalinkPassword,
			Secure:   m.config.LavalinkSecure,
		},
	)
	if err != nil {
		m.eventLoop.Close()
		return err
	}
	m.lavalinkAdapter = lavalinkAdapter

	baseSearcher, err := newSearcher(m.config, lavalinkAdapter)
	if err != nil {
		return m.abortInit(err)
	}
	searcher := infrastructure.NewRateLimitedSearcher(
		baseSearcher,
		m.config.SearchRate,
		m.config.SearchBurst,
	)

	// Create infrastructure
	registry := infrastructure.NewMemoryRegistry()
	voiceState := infrastructure.NewVoiceStateProvider(deps.Session)
	notifier := infrastructure.NewNotifier(deps.Session)

	// Create use cases
	resolver := usecases.NewTrackResolver(searcher, m.config.SearchTimeout)
	advancer := usecases.NewPlaybackAdvancer(
		registry,
		resolver,
		lavalinkAdapter,
		lavalinkAdapter,
		notifier,
	)
	dispatcher := usecases.NewDispatcher(
		registry,
		voiceState,
		lavalinkAdapter,
		lavalinkAdapter,
		advancer,
		notifier,
		deps.Config.CommandPrelude,
		deps.Config.OwnerID,
	)

	m.sessionHandler = application.NewSessionEventHandler(dispatcher, advancer, m.eventLoop)
	if err := m.sessionHandler.Start(); err != nil {
		return m.abortInit(err)
	}

	// Create presentation handlers
	m.messageHandler = discord.NewMessageHandler(botID, deps.Config.CommandPrelude, m.eventLoop)
	m.eventHandlers = discord.NewEventHandlers(botID, lavalinkAdapter, m.eventLoop)

	logArgs := []any{
		"prelude", deps.Config.CommandPrelude,
		"search_provider", m.config.SearchProvider,
	}
	if ls, ok := baseSearcher.(*infrastructure.LavalinkSearcher); ok {
		logArgs = append(logArgs, "search_source", ls.Source())
	}
	slog.Info("sound_streamer module initialized", logArgs...)

	return nil
}

// Shutdown cleans up module resources.
func (m *SoundStreamerModule) Shutdown() error {
	// Drain in-flight events before the sink goes away.
	if m.eventLoop != nil {
		m.eventLoop.Close()
	}

	if m.lavalinkAdapter != nil {
		m.lavalinkAdapter.Close()
	}

	return nil
}

// abortInit releases what a failed Init already acquired.
func (m *SoundStreamerModule) abortInit(err error) error {
	if shutdownErr := m.Shutdown(); shutdownErr != nil {
		slog.Warn("failed to release sound_streamer resources", "error", shutdownErr)
	}
	m.eventLoop = nil
	m.lavalinkAdapter = nil
	return err
}

// newSearcher returns the search provider named in configuration.
// The soundcloud provider is shorthand for the lavalink provider searching SoundCloud.
func newSearcher(
	cfg *Config,
	lavalinkAdapter *infrastructure.LavalinkAdapter,
) (ports.TrackSearcher, error) {
	switch cfg.SearchProvider {
	case ProviderYouTube:
		return infrastructure.NewYouTubeSearcher(), nil
	case ProviderYTMusic:
		return infrastructure.NewYouTubeMusicSearcher(), nil
	case ProviderLavalink:
		source, err := domain.ParseSearchSource(cfg.LavalinkSearchSource)
		if err != nil {
			return nil, err
		}
		return infrastructure.NewLavalinkSearcher(lavalinkAdapter, source), nil
	case ProviderSoundCloud:
		return infrastructure.NewLavalinkSearcher(lavalinkAdapter, domain.SourceSoundCloud), nil
	default:
		return nil, fmt.Errorf("unknown search provider %q", cfg.SearchProvider)
	}
}
