package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Version is the ideastream release, reported by --version.
const Version = "0.3.0"

// Config holds all ideastream configuration.
type Config struct {
	Connector ConnectorConfig `yaml:"connector"`
	Engine    EngineConfig    `yaml:"engine"`
	Output    OutputConfig    `yaml:"output"`
	LogLevel  string          `yaml:"log_level"`
}

// ConnectorConfig holds connector-specific settings.
type ConnectorConfig struct {
	Provider string            `yaml:"provider"`
	APIKey   string            `yaml:"api_key"`
	Endpoint string            `yaml:"endpoint"`
	Timeout  time.Duration     `yaml:"timeout"`
	Extra    map[string]string `yaml:"extra"`
}

// EngineConfig holds stream processing settings.
type EngineConfig struct {
	ChunkSize     int    `yaml:"chunk_size"`
	Verbosity     string `yaml:"verbosity"` // "minimal", "standard", "full"
	FlushTrailing bool   `yaml:"flush_trailing"`
}

// OutputConfig holds output destination settings.
type OutputConfig struct {
	Format     string `yaml:"format"` // "text", "json", "yaml"
	Pretty     bool   `yaml:"pretty"`
	WebhookURL string `yaml:"webhook_url"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Connector: ConnectorConfig{
			Provider: "proxy",
			Timeout:  10 * time.Minute,
		},
		Engine: EngineConfig{
			ChunkSize: 32 * 1024,
			Verbosity: "standard",
		},
		Output: OutputConfig{
			Format: "text",
		},
		LogLevel: "info",
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// IDEASTREAM_CONFIG (if set), then environment variables.
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv("IDEASTREAM_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Connector.Provider = getenv("IDEASTREAM_CONNECTOR", c.Connector.Provider)
	c.Connector.APIKey = getenv("IDEASTREAM_API_KEY", c.Connector.APIKey)
	c.Connector.Endpoint = getenv("IDEASTREAM_ENDPOINT", c.Connector.Endpoint)
	c.Connector.Timeout = getenvDuration("IDEASTREAM_TIMEOUT", c.Connector.Timeout)
	c.Connector.Extra = loadConnectorExtra(c.Connector.Extra)

	c.Engine.ChunkSize = getenvInt("IDEASTREAM_CHUNK_SIZE", c.Engine.ChunkSize)
	c.Engine.Verbosity = getenv("IDEASTREAM_VERBOSITY", c.Engine.Verbosity)
	c.Engine.FlushTrailing = getenvBool("IDEASTREAM_FLUSH_TRAILING", c.Engine.FlushTrailing)

	c.Output.Format = getenv("IDEASTREAM_OUTPUT", c.Output.Format)
	c.Output.Pretty = getenvBool("IDEASTREAM_OUTPUT_PRETTY", c.Output.Pretty)
	c.Output.WebhookURL = getenv("IDEASTREAM_WEBHOOK_URL", c.Output.WebhookURL)

	c.LogLevel = getenv("IDEASTREAM_LOG_LEVEL", c.LogLevel)
}

// Validate checks the configuration and reports every problem found.
func (c Config) Validate() error {
	var errs []error

	switch c.Connector.Provider {
	case "proxy":
		if c.Connector.Endpoint == "" {
			errs = append(errs, errors.New("IDEASTREAM_ENDPOINT is required for the proxy connector"))
		}
	case "replay":
	default:
		errs = append(errs, fmt.Errorf("unknown connector %q (want proxy or replay)", c.Connector.Provider))
	}
	if c.Connector.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative, got %v", c.Connector.Timeout))
	}
	if c.Engine.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("chunk size must be positive, got %d", c.Engine.ChunkSize))
	}
	switch strings.ToLower(c.Engine.Verbosity) {
	case "minimal", "standard", "full":
	default:
		errs = append(errs, fmt.Errorf("invalid verbosity %q (want minimal, standard or full)", c.Engine.Verbosity))
	}
	switch strings.ToLower(c.Output.Format) {
	case "text", "json", "yaml":
	default:
		errs = append(errs, fmt.Errorf("invalid output format %q (want text, json or yaml)", c.Output.Format))
	}

	return errors.Join(errs...)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// loadConnectorExtra overlays provider-specific env vars onto extra.
func loadConnectorExtra(extra map[string]string) map[string]string {
	vars := []struct {
		envVar   string
		extraKey string
	}{
		{"IDEASTREAM_REPLAY_CHUNK_SIZE", "chunk_size"},
		{"IDEASTREAM_REPLAY_DELAY", "delay"},
	}

	for _, v := range vars {
		if val := os.Getenv(v.envVar); val != "" {
			if extra == nil {
				extra = make(map[string]string)
			}
			extra[v.extraKey] = val
		}
	}
	return extra
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
