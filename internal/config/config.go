package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"

	"github.com/omarshaarawi/bigdogpool/internal/contention"
)

type Config struct {
	TelegramBot TelegramBot
	PoolAPI     PoolAPI
	Contention  Contention
	Schedule    Schedule
	HTTP        HTTP
}

type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN" required:"true"`
	ChatID int64  `envconfig:"CHAT_ID" required:"true"`
}

type PoolAPI struct {
	BaseURL  string        `envconfig:"POOL_API_BASE_URL" required:"true"`
	SeasonID string        `envconfig:"POOL_SEASON_ID"`
	Timeout  time.Duration `envconfig:"POOL_API_TIMEOUT" default:"10s"`
}

type Contention struct {
	AllowTies bool `envconfig:"CONTENTION_ALLOW_TIES" default:"true"`
	MaxGames  int  `envconfig:"CONTENTION_MAX_GAMES" default:"24"`
	Workers   int  `envconfig:"CONTENTION_WORKERS" default:"1"`
}

type Schedule struct {
	Location       string `envconfig:"SCHEDULE_LOCATION" default:"America/Chicago"`
	ContendersCron string `envconfig:"CONTENDERS_CRON" default:"0 19 * * 0"`
}

type HTTP struct {
	Addr           string        `envconfig:"HTTP_ADDR" default:":80"`
	CORSOrigins    []string      `envconfig:"API_CORS_ALLOW_ORIGINS"`
	ComputeTimeout time.Duration `envconfig:"HTTP_COMPUTE_TIMEOUT" default:"10s"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}

	if _, err := cron.ParseStandard(c.Schedule.ContendersCron); err != nil {
		return nil, fmt.Errorf("invalid CONTENDERS_CRON %q: %w", c.Schedule.ContendersCron, err)
	}
	if c.Contention.MaxGames <= 0 || c.Contention.MaxGames > 40 {
		return nil, fmt.Errorf("CONTENTION_MAX_GAMES must be between 1 and 40, got %d", c.Contention.MaxGames)
	}
	if c.HTTP.ComputeTimeout <= 0 {
		return nil, fmt.Errorf("HTTP_COMPUTE_TIMEOUT must be positive, got %s", c.HTTP.ComputeTimeout)
	}

	return &c, nil
}

func (c *Config) ContentionOptions() contention.Options {
	return contention.Options{
		AllowTies:         c.Contention.AllowTies,
		MaxRemainingGames: c.Contention.MaxGames,
		Workers:           max(c.Contention.Workers, 1),
	}
}
