package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
type Config struct {
	// HTTP server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	HTTPIdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     envDefault:"60s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Connection registry: memory for a single instance, redis when
	// the service runs behind a load balancer.
	RegistryBackend string `env:"REGISTRY_BACKEND" envDefault:"memory"`
	RedisURL        string `env:"REDIS_URL"        envDefault:"redis://localhost:6379"`

	// Phantom deep links
	AppOrigin    string `env:"APP_ORIGIN"            envDefault:"https://wihngo.com"`
	CallbackPath string `env:"PHANTOM_CALLBACK_PATH" envDefault:"/phantom-callback"`

	// Solana
	SolanaRPCURL        string        `env:"SOLANA_RPC_URL"       envDefault:"https://api.mainnet-beta.solana.com"`
	SolanaNetwork       string        `env:"SOLANA_NETWORK"       envDefault:"mainnet"`
	USDCMint            string        `env:"USDC_MINT"            envDefault:"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"`
	ConfirmationTimeout time.Duration `env:"CONFIRMATION_TIMEOUT" envDefault:"90s"`

	// Payment intent backend
	IntentServiceURL string        `env:"INTENT_SERVICE_URL" envDefault:"http://localhost:9090"`
	IntentTimeout    time.Duration `env:"INTENT_TIMEOUT"     envDefault:"15s"`

	// Rate limiting for the unauthenticated connect endpoints
	ConnectRateLimit float64 `env:"CONNECT_RATE_LIMIT" envDefault:"5"`
	ConnectRateBurst int     `env:"CONNECT_RATE_BURST" envDefault:"10"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
