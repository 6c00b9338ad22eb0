package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Storage settings
	StoragePath string `env:"STORAGE_PATH" envDefault:"/data/mailstore"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Accounts
	Accounts []AccountConfig `env:"-"`
}

// AccountConfig holds configuration for a single mail account
type AccountConfig struct {
	UUID string
	Name string
}

// LoadConfig loads configuration from a .env file (if any) and environment variables
func LoadConfig() (*Config, error) {
	// A missing .env file is fine, the environment may already be set
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	accounts, err := loadAccounts()
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	cfg.Accounts = accounts
	return cfg, nil
}

// loadAccounts loads account configurations from environment variables
func loadAccounts() ([]AccountConfig, error) {
	if id := getEnv("ACCOUNT_UUID", ""); id != "" {
		name := getEnv("ACCOUNT_NAME", "default")
		return []AccountConfig{{UUID: id, Name: name}}, nil
	}

	// Load multiple accounts (ACCOUNT_1_*, ACCOUNT_2_*, etc.)
	var accounts []AccountConfig
	for num := 1; ; num++ {
		account, err := loadAccountByNumber(num)
		if err != nil {
			break
		}
		accounts = append(accounts, *account)
	}

	if len(accounts) == 0 {
		return nil, fmt.Errorf("no accounts found in environment variables")
	}
	return accounts, nil
}

// loadAccountByNumber loads an account by number (ACCOUNT_1_*, ACCOUNT_2_*, etc.)
func loadAccountByNumber(num int) (*AccountConfig, error) {
	prefix := fmt.Sprintf("ACCOUNT_%d_", num)

	id := getEnv(prefix+"UUID", "")
	if id == "" {
		return nil, fmt.Errorf("account %d: UUID is required", num)
	}

	return &AccountConfig{
		UUID: id,
		Name: getEnv(prefix+"NAME", fmt.Sprintf("account-%d", num)),
	}, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.StoragePath == "" {
		return fmt.Errorf("STORAGE_PATH is required")
	}

	if len(c.Accounts) == 0 {
		return fmt.Errorf("at least one account must be configured")
	}

	seen := make(map[string]bool, len(c.Accounts))
	for i := range c.Accounts {
		acc := &c.Accounts[i]
		id, err := uuid.Parse(acc.UUID)
		if err != nil {
			return fmt.Errorf("account %s: invalid UUID %q", acc.Name, acc.UUID)
		}
		if seen[id.String()] {
			return fmt.Errorf("account %s: duplicate UUID %s", acc.Name, acc.UUID)
		}
		seen[id.String()] = true
	}

	return nil
}
