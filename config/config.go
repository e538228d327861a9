package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DEFAULT_CONFIG_PATH string = "config.yaml"

type Config struct {
	App       AppConfig       `yaml:"app"`
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Ledger    LedgerConfig    `yaml:"ledger"`
	Razorpay  RazorpayConfig  `yaml:"razorpay"`
	Auth      AuthConfig      `yaml:"auth"`
	Tickets   TicketsConfig   `yaml:"tickets"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type HTTPConfig struct {
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type DatabaseConfig struct {
	Driver string      `yaml:"driver"`
	Mongo  MongoConfig `yaml:"mongo"`
}

type MongoConfig struct {
	URI            string        `yaml:"uri"`
	Database       string        `yaml:"database"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type LedgerConfig struct {
	Driver string        `yaml:"driver"`
	TTL    time.Duration `yaml:"ttl"`
}

type RazorpayConfig struct {
	KeyID     string        `yaml:"key_id"`
	KeySecret string        `yaml:"key_secret"`
	Currency  string        `yaml:"currency"`
	Timeout   time.Duration `yaml:"timeout"`
}

type AuthConfig struct {
	SigningKey string        `yaml:"signing_key"`
	TokenTTL   time.Duration `yaml:"token_ttl"`
}

type TicketsConfig struct {
	Prices      map[string]float64 `yaml:"prices"`
	MaxQuantity int                `yaml:"max_quantity"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

func GetSecret(key string) (string, error) {
	val, exist := os.LookupEnv(key)
	if exist {
		return val, nil
	}
	return "", fmt.Errorf("no env variable with key %v", key)
}

// Load reads the YAML config at configPath, expanding ${VAR} references from
// the environment (and from .env when present), then applies defaults and
// validates the result.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	expanded := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expanded, &config); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Razorpay.KeyID == "" || c.Razorpay.KeySecret == "" {
		return errors.New("razorpay key_id and key_secret are required")
	}
	if c.Auth.SigningKey == "" {
		return errors.New("auth signing_key is required")
	}

	switch c.Database.Driver {
	case "mongo":
		if c.Database.Mongo.URI == "" {
			return errors.New("database.mongo.uri is required for the mongo driver")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}

	switch c.Ledger.Driver {
	case "redis":
		if c.Redis.Address == "" {
			return errors.New("redis.address is required for the redis ledger")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown ledger driver %q", c.Ledger.Driver)
	}

	for ticketType, price := range c.Tickets.Prices {
		if price < 0 {
			return fmt.Errorf("ticket %s has negative price", ticketType)
		}
	}
	if c.Tickets.MaxQuantity < 0 {
		return errors.New("tickets.max_quantity must be positive")
	}

	return nil
}

func (c *Config) applyDefaults() {
	secretFromEnv(&c.Razorpay.KeyID, "RAZORPAY_KEY_ID")
	secretFromEnv(&c.Razorpay.KeySecret, "RAZORPAY_KEY_SECRET")
	secretFromEnv(&c.Auth.SigningKey, "SIGN")

	if c.App.Name == "" {
		c.App.Name = "tickets-webapp"
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 5000
	}
	if c.HTTP.ReadTimeout == 0 {
		c.HTTP.ReadTimeout = 10 * time.Second
	}
	if c.HTTP.WriteTimeout == 0 {
		c.HTTP.WriteTimeout = 15 * time.Second
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "mongo"
	}
	if c.Database.Mongo.Database == "" {
		c.Database.Mongo.Database = "booking-service"
	}
	if c.Database.Mongo.ConnectTimeout == 0 {
		c.Database.Mongo.ConnectTimeout = 10 * time.Second
	}
	if c.Ledger.Driver == "" {
		c.Ledger.Driver = "redis"
	}
	if c.Ledger.TTL == 0 {
		c.Ledger.TTL = 24 * time.Hour
	}
	if c.Razorpay.Currency == "" {
		c.Razorpay.Currency = "INR"
	}
	if c.Razorpay.Timeout == 0 {
		c.Razorpay.Timeout = 10 * time.Second
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 8 * time.Hour
	}
	if len(c.Tickets.Prices) == 0 {
		c.Tickets.Prices = map[string]float64{"STAG": 250, "COUPLE": 400}
	}
	if c.Tickets.MaxQuantity == 0 {
		c.Tickets.MaxQuantity = 20
	}
	if c.RateLimit.RPS == 0 {
		c.RateLimit.RPS = 5
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 10
	}
}

func secretFromEnv(target *string, key string) {
	if *target != "" {
		return
	}
	if val, err := GetSecret(key); err == nil {
		*target = val
	}
}
