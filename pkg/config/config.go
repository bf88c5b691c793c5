package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const minSecretLength = 32

type Config struct {
	Port      string `envconfig:"PORT" default:"8080"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LocalMode bool   `envconfig:"LOCAL_MODE" default:"true"` // in-memory store instead of DynamoDB

	AWSRegion        string `envconfig:"AWS_REGION" default:"ap-northeast-2"`
	ProductTableName string `envconfig:"PRODUCT_TABLE_NAME" default:"products-table"`

	KafkaBrokers string `envconfig:"KAFKA_BROKERS" default:""`

	RateLimitCapacity int `envconfig:"RATE_LIMIT_CAPACITY" default:"100"`
	RateLimitTokens   int `envconfig:"RATE_LIMIT_TOKENS" default:"100"` // refill per minute

	JWTSecret     string `envconfig:"JWT_SECRET" default:"change-me-to-a-32-byte-minimum-secret"`
	JWTExpiration int64  `envconfig:"JWT_EXPIRATION" default:"3600"` // seconds

	AdminUsername string `envconfig:"ADMIN_USERNAME" default:"admin"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" default:"admin123"`

	SeedData bool `envconfig:"SEED_DATA" default:"true"`

	TLS TLSConfig
}

type TLSConfig struct {
	Enabled    bool   `envconfig:"TLS_ENABLED" default:"false"`
	SocketPath string `envconfig:"SPIRE_SOCKET_PATH" default:"unix:///run/spire/sockets/agent.sock"`
}

func Load() (*Config, error) {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.JWTSecret) < minSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters, got %d", minSecretLength, len(c.JWTSecret))
	}
	if c.JWTExpiration < 60 {
		return fmt.Errorf("JWT_EXPIRATION must be at least 60 seconds, got %d", c.JWTExpiration)
	}
	if c.RateLimitCapacity <= 0 {
		return fmt.Errorf("RATE_LIMIT_CAPACITY must be positive, got %d", c.RateLimitCapacity)
	}
	if c.RateLimitTokens <= 0 {
		return fmt.Errorf("RATE_LIMIT_TOKENS must be positive, got %d", c.RateLimitTokens)
	}
	return nil
}
