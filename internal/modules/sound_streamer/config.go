package sound_streamer

import (
	"errors"
	"fmt"
	"time"

	"github.com/NickDriscoll/dss/internal/modules/sound_streamer/domain"
)

// Search providers selectable with SEARCH_PROVIDER.
const (
	ProviderYouTube    = "youtube"
	ProviderYTMusic    = "ytmusic"
	ProviderLavalink   = "lavalink"
	ProviderSoundCloud = "soundcloud"
)

// Config holds the sound streamer module configuration.
type Config struct {
	LavalinkAddress  string `env:"LAVALINK_ADDRESS,notEmpty"`
	LavalinkPassword string `env:"LAVALINK_PASSWORD,notEmpty"`
	LavalinkSecure   bool   `env:"LAVALINK_SECURE" envDefault:"false"`

	// LavalinkSearchSource picks the source manager the lavalink provider searches.
	LavalinkSearchSource string `env:"LAVALINK_SEARCH_SOURCE" envDefault:"youtube"`

	SearchProvider string        `env:"SEARCH_PROVIDER" envDefault:"youtube"`
	SearchTimeout  time.Duration `env:"SEARCH_TIMEOUT" envDefault:"10s"`
	SearchRate     float64       `env:"SEARCH_RATE" envDefault:"2"`
	SearchBurst    int           `env:"SEARCH_BURST" envDefault:"5"`
}

// Validate checks the values env tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	switch c.SearchProvider {
	case ProviderYouTube, ProviderYTMusic, ProviderLavalink, ProviderSoundCloud:
	default:
		errs = append(errs, fmt.Errorf("unknown SEARCH_PROVIDER %q", c.SearchProvider))
	}
	if _, err := domain.ParseSearchSource(c.LavalinkSearchSource); err != nil {
		errs = append(errs, fmt.Errorf("invalid LAVALINK_SEARCH_SOURCE: %w", err))
	}
	if c.SearchTimeout <= 0 {
		errs = append(errs, errors.New("SEARCH_TIMEOUT must be positive"))
	}
	if c.SearchRate <= 0 {
		errs = append(errs, errors.New("SEARCH_RATE must be positive"))
	}
	if c.SearchBurst < 1 {
		errs = append(errs, errors.New("SEARCH_BURST must be at least 1"))
	}

	return errors.Join(errs...)
}
