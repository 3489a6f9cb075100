// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the explicit application configuration passed down to every
// component; nothing reads the environment after Load returns.
type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"local"`
	Port        string `env:"PORT" envDefault:"8080"`
	PostgresDSN string `env:"POSTGRES_DSN,required"`

	// External weather provider. The coordinate defaults to Phewa Lake,
	// the monitored site.
	WeatherAPIKey string  `env:"WEATHER_API_KEY"`
	WeatherLat    float64 `env:"WEATHER_LAT" envDefault:"28.2099"`
	WeatherLon    float64 `env:"WEATHER_LON" envDefault:"83.9805"`

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`

	SensorID string `env:"SENSOR_ID" envDefault:"phewa-001"`

	CollectorEnabled bool          `env:"COLLECTOR_ENABLED" envDefault:"true"`
	CollectInterval  time.Duration `env:"COLLECT_INTERVAL" envDefault:"15m"`
}

// Load reads configuration from the environment, consulting .env when
// present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}
