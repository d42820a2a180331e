package config

import (
	"time"
)

// Server holds HTTP server settings.
type Server struct {
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	Port int    `envconfig:"PORT" default:"8080"`
}

// Log holds logger settings for the charmbracelet slog handler.
type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"exchange"`
}

// Provider holds settings for the external rate provider.
type Provider struct {
	ApiUrl      string        `envconfig:"API_URL" default:"https://api.exchangerate.host"`
	AccessKey   string        `envconfig:"ACCESS_KEY"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
}

// RateCache holds freshness and capacity settings shared by the pair and
// all-rates cache namespaces.
type RateCache struct {
	TTL             time.Duration `envconfig:"TTL" default:"10m"`
	InitialCapacity int           `envconfig:"INITIAL_CAPACITY" default:"16"`
	MaxEntries      int           `envconfig:"MAX_ENTRIES" default:"500"`
}

// Preload holds background warm-up settings.
type Preload struct {
	Currencies []string      `envconfig:"CURRENCIES" default:"USD,EUR"`
	Interval   time.Duration `envconfig:"INTERVAL" default:"50s"`
}

// Catalog holds startup currency-list loading settings.
type Catalog struct {
	MaxAttempts int           `envconfig:"MAX_ATTEMPTS" default:"3"`
	RetryDelay  time.Duration `envconfig:"RETRY_DELAY" default:"5s"`
}

// App is the root application configuration.
type App struct {
	Env       string    `envconfig:"ENV" default:"development"`
	Server    Server    `envconfig:"SERVER"`
	Log       Log       `envconfig:"LOG"`
	Provider  Provider  `envconfig:"EXCHANGE_PROVIDER"`
	RateCache RateCache `envconfig:"EXCHANGE_CACHE"`
	Preload   Preload   `envconfig:"EXCHANGE_PRELOAD"`
	Catalog   Catalog   `envconfig:"EXCHANGE_CATALOG"`
}
