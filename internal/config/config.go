// Package config loads the tool settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/smartcontractkit/timelock-roles/types"
)

// DefaultEnvFile is read from the working directory when present.
const DefaultEnvFile = ".env"

var ErrMissingAPIKey = errors.New("missing block explorer api key")

// Config holds the settings shared by every command.
type Config struct {
	// EtherscanAPIKey is used for every network when set.
	EtherscanAPIKey   string `env:"ETHERSCAN_API_KEY"`
	BscscanAPIKey     string `env:"BSCSCAN_API_KEY"`
	PolygonscanAPIKey string `env:"POLYGONSCAN_API_KEY"`

	// ExplorerURL overrides the explorer base URL of the selected network.
	ExplorerURL string `env:"EXPLORER_URL" validate:"omitempty,url"`
	// RPCURL routes contract calls through a JSON-RPC node instead of the explorer proxy.
	RPCURL   string `env:"RPC_URL" validate:"omitempty,url"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
}

// Load reads path into the process environment, without overriding variables that are already set, and
// parses the result. A missing file is ignored.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	return Parse(nil)
}

// Parse builds a Config from environ, or from the process environment when environ is nil.
func Parse(environ map[string]string) (*Config, error) {
	var cfg Config

	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// APIKey returns the explorer api key for network.
func (c *Config) APIKey(network types.Network) (string, error) {
	if c.EtherscanAPIKey != "" {
		return c.EtherscanAPIKey, nil
	}

	var key, name string
	switch network {
	case types.NetworkMainnet:
		name = "ETHERSCAN_API_KEY"
	case types.NetworkBNB:
		key, name = c.BscscanAPIKey, "BSCSCAN_API_KEY"
	case types.NetworkMatic:
		key, name = c.PolygonscanAPIKey, "POLYGONSCAN_API_KEY"
	default:
		return "", fmt.Errorf("%w: %q", types.ErrUnsupportedNetwork, string(network))
	}

	if key == "" {
		return "", fmt.Errorf("%w for %s: set %s", ErrMissingAPIKey, network, name)
	}

	return key, nil
}

// ExplorerBaseURL returns the configured explorer override or the network default.
func (c *Config) ExplorerBaseURL(network types.Network) (string, error) {
	if c.ExplorerURL != "" {
		return c.ExplorerURL, nil
	}

	return network.ExplorerURL()
}
