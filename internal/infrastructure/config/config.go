package config

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// FeedConfirmedOnly hides postings without a confirmed fee payment from
	// the public feed. Off by default pending a product decision.
	FeedConfirmedOnly bool `env:"FEED_CONFIRMED_ONLY, default=false"`

	Mongo      MongoConfig
	Redis      RedisConfig
	Ledger     LedgerConfig
	Generative GenerativeConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=job_board"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// LedgerConfig describes the chain node and the platform fee policy.
// PlatformFeeWei is the exact fee in the chain's smallest unit; keeping it a
// decimal string avoids ever representing the amount as a float.
type LedgerConfig struct {
	RPCURL         string        `env:"LEDGER_RPC_URL"`
	AdminWallet    string        `env:"ADMIN_WALLET_ADDRESS"`
	PlatformFeeWei string        `env:"PLATFORM_FEE_WEI, default=10000000000000000"`
	Timeout        time.Duration `env:"LEDGER_TIMEOUT,   default=5s"`
	// DoubleConfirmPolicy: accept, reject, or log (default).
	DoubleConfirmPolicy string `env:"PAYMENT_DOUBLE_CONFIRM_POLICY, default=log"`
}

type GenerativeConfig struct {
	BaseURL string        `env:"GENERATIVE_BASE_URL, default=https://generativelanguage.googleapis.com"`
	Model   string        `env:"GENERATIVE_MODEL,    default=gemini-2.5-flash"`
	APIKey  string        `env:"GENERATIVE_API_KEY"`
	Timeout time.Duration `env:"GENERATIVE_TIMEOUT,  default=30s"`
}

// FeeWei parses the configured platform fee into an exact integer.
func (c LedgerConfig) FeeWei() (*big.Int, error) {
	fee, ok := new(big.Int).SetString(c.PlatformFeeWei, 10)
	if !ok || fee.Sign() < 0 {
		return nil, fmt.Errorf("config: invalid PLATFORM_FEE_WEI %q", c.PlatformFeeWei)
	}
	return fee, nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
