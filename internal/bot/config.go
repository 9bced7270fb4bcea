package bot

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/disgoorg/snowflake/v2"
)

// Environment selects which set of environment variables the bot reads.
type Environment string

const (
	EnvProduction  Environment = "prod"
	EnvDevelopment Environment = "dev"
)

// ParseEnvironment validates an environment name.
func ParseEnvironment(name string) (Environment, error) {
	switch e := Environment(name); e {
	case EnvProduction, EnvDevelopment:
		return e, nil
	default:
		return "", fmt.Errorf("unknown environment %q, expected %q or %q", name, EnvProduction, EnvDevelopment)
	}
}

// EnvOptions returns the options for parsing configuration in this environment.
// Development variables carry a DEV_ prefix so both sets can share one .env file.
func (e Environment) EnvOptions() env.Options {
	if e == EnvDevelopment {
		return env.Options{Prefix: "DEV_"}
	}
	return env.Options{}
}

// DefaultPrelude returns the command prelude used when none is configured.
func (e Environment) DefaultPrelude() string {
	if e == EnvDevelopment {
		return "!dssd"
	}
	return "!dss"
}

// Config holds the bot configuration loaded from environment variables.
type Config struct {
	DiscordToken   string `env:"DISCORD_TOKEN,notEmpty"`
	CommandPrelude string `env:"COMMAND_PRELUDE"`
	OwnerIDRaw     string `env:"OWNER_ID"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string `env:"LOG_FORMAT" envDefault:"json"`

	// Environment is the environment the configuration was loaded for.
	Environment Environment
	// OwnerID is the parsed OWNER_ID, or 0 when unset.
	OwnerID snowflake.ID
}

// LoadConfig loads configuration from environment variables.
// Returns an error if required fields are missing.
func LoadConfig(environment Environment) (*Config, error) {
	cfg := &Config{Environment: environment}

	if err := env.ParseWithOptions(cfg, environment.EnvOptions()); err != nil {
		return nil, err
	}

	if cfg.CommandPrelude == "" {
		cfg.CommandPrelude = environment.DefaultPrelude()
	}

	if cfg.OwnerIDRaw != "" {
		id, err := snowflake.Parse(cfg.OwnerIDRaw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse OWNER_ID: %w", err)
		}
		cfg.OwnerID = id
	}

	return cfg, nil
}
