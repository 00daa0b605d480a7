package config

import (
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ModePlay = "play"
	ModeSpar = "spar"

	FirstPlayerRandom   = "random"
	FirstPlayerHuman    = "human"
	FirstPlayerComputer = "computer"
)

var (
	ErrUnknownMode        = errors.New("unknown mode")
	ErrUnknownFirstPlayer = errors.New("unknown first player")
	ErrNegativeGames      = errors.New("sparring games must not be negative")
)

type Config struct {
	LogLevel    string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Mode        string   `yaml:"mode" env:"TTT_MODE" env-default:"play"`
	FirstPlayer string   `yaml:"first-player" env:"TTT_FIRST_PLAYER" env-default:"random"`
	Sparring    Sparring `yaml:"sparring"`
}

type Sparring struct {
	Games int `yaml:"games" env:"TTT_SPARRING_GAMES" env-default:"100"`
	// Seed 0 uses the process-wide generator.
	Seed int64 `yaml:"seed" env:"TTT_SPARRING_SEED" env-default:"0"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Load reads path, applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	switch that.Mode {
	case ModePlay, ModeSpar:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, that.Mode)
	}

	switch that.FirstPlayer {
	case FirstPlayerRandom, FirstPlayerHuman, FirstPlayerComputer:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFirstPlayer, that.FirstPlayer)
	}

	if that.Sparring.Games < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeGames, that.Sparring.Games)
	}

	return nil
}
