package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// API Gateway (the purchasing backend this admin talks to)
	GatewayURL       string `mapstructure:"GATEWAY_URL"`
	GatewayTimeoutMS int    `mapstructure:"GATEWAY_TIMEOUT_MS"`

	// Circuit breaker around gateway calls
	CBUmbralFallos   int `mapstructure:"CB_UMBRAL_FALLOS"`
	CBUmbralExitos   int `mapstructure:"CB_UMBRAL_EXITOS"`
	CBTiempoAbiertoS int `mapstructure:"CB_TIEMPO_ABIERTO_SECONDS"`

	// Redis — optional; empty means preferences live in process memory
	RedisURL string `mapstructure:"REDIS_URL"`

	// Order-form sessions
	SesionTTLMinutos int `mapstructure:"SESION_TTL_MINUTES"`
}

// GatewayTimeout returns the per-request timeout for gateway calls.
func (c *Config) GatewayTimeout() time.Duration {
	return time.Duration(c.GatewayTimeoutMS) * time.Millisecond
}

func (c *Config) CBTiempoAbierto() time.Duration {
	return time.Duration(c.CBTiempoAbiertoS) * time.Second
}

func (c *Config) SesionTTL() time.Duration {
	return time.Duration(c.SesionTTLMinutos) * time.Minute
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development. The gateway port and the 3 s
	// request timeout mirror what the original admin front-end shipped with.
	viper.SetDefault("PORT", 8080)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("GATEWAY_URL", "http://localhost:8085")
	viper.SetDefault("GATEWAY_TIMEOUT_MS", 3000)
	viper.SetDefault("CB_UMBRAL_FALLOS", 5)
	viper.SetDefault("CB_UMBRAL_EXITOS", 2)
	viper.SetDefault("CB_TIEMPO_ABIERTO_SECONDS", 60)
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("SESION_TTL_MINUTES", 30)

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
