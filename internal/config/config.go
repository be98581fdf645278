package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Endpoint fallback literals. These are the hosted devnet services the
// tutorial targets when nothing else is configured.
const (
	DefaultRPCURL       = "https://api.devnet.solana.com"
	DefaultPortalURL    = "https://portal.lazor.sh"
	DefaultPaymasterURL = "https://kora.devnet.lazorkit.com"

	DefaultCommitment  = "confirmed"
	DefaultHTTPTimeout = 30 * time.Second

	configFilename = "config.yaml"
)

// Config holds every endpoint and knob the demo reads. Precedence per key:
// environment variable, then config.yaml in the home directory, then the
// fallback literal.
type Config struct {
	Home string `yaml:"-"`

	RPCURL       string `yaml:"rpc_url"`
	PortalURL    string `yaml:"portal_url"`
	PaymasterURL string `yaml:"paymaster_url"`

	// Commitment is the confirmation level used for balance and status
	// queries: processed, confirmed or finalized.
	Commitment string `yaml:"commitment"`

	// PaymasterAPIKey is sent as x-api-key when the paymaster requires it.
	PaymasterAPIKey string `yaml:"paymaster_api_key"`

	HTTPTimeoutSeconds int `yaml:"http_timeout_seconds"`
}

// DefaultHome returns the default state directory (~/.lazorkit).
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".lazorkit")
}

// Load builds the effective configuration for the given home directory. An
// empty home selects DefaultHome. A .env file in the working directory is
// honoured when present; its absence is not an error.
func Load(home string) (*Config, error) {
	_ = godotenv.Load()

	if home == "" {
		home = os.Getenv("LAZORKIT_HOME")
	}
	if home == "" {
		home = DefaultHome()
	}

	cfg := &Config{
		Home:               home,
		RPCURL:             DefaultRPCURL,
		PortalURL:          DefaultPortalURL,
		PaymasterURL:       DefaultPaymasterURL,
		Commitment:         DefaultCommitment,
		HTTPTimeoutSeconds: int(DefaultHTTPTimeout / time.Second),
	}

	if err := cfg.applyFile(filepath.Join(home, configFilename)); err != nil {
		return nil, err
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFile overlays values from a YAML config file. A missing file is fine.
func (c *Config) applyFile(path string) error {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config file: %w", err)
	}
	var file Config
	if err := yaml.Unmarshal(b, &file); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	if file.RPCURL != "" {
		c.RPCURL = file.RPCURL
	}
	if file.PortalURL != "" {
		c.PortalURL = file.PortalURL
	}
	if file.PaymasterURL != "" {
		c.PaymasterURL = file.PaymasterURL
	}
	if file.Commitment != "" {
		c.Commitment = file.Commitment
	}
	if file.PaymasterAPIKey != "" {
		c.PaymasterAPIKey = file.PaymasterAPIKey
	}
	if file.HTTPTimeoutSeconds > 0 {
		c.HTTPTimeoutSeconds = file.HTTPTimeoutSeconds
	}
	return nil
}

// applyEnv overlays LAZORKIT_* environment variables.
func (c *Config) applyEnv() {
	c.RPCURL = getEnv("LAZORKIT_RPC_URL", c.RPCURL)
	c.PortalURL = getEnv("LAZORKIT_PORTAL_URL", c.PortalURL)
	c.PaymasterURL = getEnv("LAZORKIT_PAYMASTER_URL", c.PaymasterURL)
	c.Commitment = getEnv("LAZORKIT_COMMITMENT", c.Commitment)
	c.PaymasterAPIKey = getEnv("LAZORKIT_PAYMASTER_API_KEY", c.PaymasterAPIKey)
}

// Validate rejects malformed endpoints and unknown commitment levels.
func (c *Config) Validate() error {
	for name, raw := range map[string]string{
		"rpc_url":       c.RPCURL,
		"portal_url":    c.PortalURL,
		"paymaster_url": c.PaymasterURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%s: not a valid http(s) URL: %q", name, raw)
		}
	}
	switch c.Commitment {
	case "processed", "confirmed", "finalized":
	default:
		return fmt.Errorf("commitment: must be processed, confirmed or finalized, got %q", c.Commitment)
	}
	if c.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("http_timeout_seconds: must be positive")
	}
	return nil
}

// HTTPTimeout returns the client timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// getEnv returns the env value for key, or fallback when unset.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
