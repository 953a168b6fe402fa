package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const minHandSize = 5

var (
	ErrInvalidHandSize = errors.New("hand size is too small to fill the board")
	ErrInvalidRanks    = errors.New("card ranks must satisfy 1 <= min <= max <= 10")
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	TelnetPort string `yaml:"telnet-port" env:"TELNET_PORT" env-default:"4000"`
	Redis      Redis  `yaml:"redis"`
	NATS       NATS   `yaml:"nats"`
	Game       Game   `yaml:"game"`
	NPCs       []NPC  `yaml:"npcs"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// NATS publishing is disabled while URL is empty.
type NATS struct {
	URL     string `yaml:"url" env:"NATS_URL"`
	Subject string `yaml:"subject" env:"NATS_SUBJECT" env-default:"tripletriad.match"`
}

type Game struct {
	TurnTimeout time.Duration `yaml:"turn-timeout" env:"GAME_TURN_TIMEOUT" env-default:"120s"`
	HandSize    int           `yaml:"hand-size" env:"GAME_HAND_SIZE" env-default:"5"`
	MinRank     int           `yaml:"min-rank" env:"GAME_MIN_RANK" env-default:"1"`
	MaxRank     int           `yaml:"max-rank" env:"GAME_MAX_RANK" env-default:"9"`
}

// NPC is an entity seeded into the player directory at startup.
type NPC struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind" env-default:"character"`
	Bot  bool   `yaml:"bot"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := config.Game.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}

	return config, nil
}

// Validate - the first mover places five cards on a 3x3 board.
func (that *Game) Validate() error {
	if that.HandSize < minHandSize {
		return fmt.Errorf("%w: %d", ErrInvalidHandSize, that.HandSize)
	}

	if that.MinRank < 1 || that.MinRank > that.MaxRank || that.MaxRank > 10 {
		return fmt.Errorf("%w: min %d, max %d", ErrInvalidRanks, that.MinRank, that.MaxRank)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

func (that *NATS) Enabled() bool {
	return that.URL != ""
}
