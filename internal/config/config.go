package config

import (
	"fmt"
	"strings"
	"time"

	coreconfig "github.com/hustlex/hustlexbot/core/config"
	coredatabase "github.com/hustlex/hustlexbot/core/database"
)

// PlatformConfig describes the HustleX web platform the bot links to.
type PlatformConfig struct {
	Name         string `yaml:"name" envconfig:"PLATFORM_NAME"`
	ClientURL    string `yaml:"client_url" envconfig:"CLIENT_URL"`
	SupportEmail string `yaml:"support_email" envconfig:"SUPPORT_EMAIL"`
}

// JobsConfig tunes the jobs browser.
type JobsConfig struct {
	// Limit caps how many latest jobs /jobs lists.
	Limit int `yaml:"limit" envconfig:"JOBS_LIMIT"`
	// SeedDemo inserts sample jobs into an empty table on startup.
	SeedDemo bool          `yaml:"seed_demo" envconfig:"JOBS_SEED_DEMO"`
	Timeout  time.Duration `yaml:"timeout" envconfig:"JOBS_TIMEOUT"`
}

// MetricsConfig enables the Prometheus listener when Listen is set.
type MetricsConfig struct {
	Listen string `yaml:"listen" envconfig:"METRICS_LISTEN"`
}

// SenderConfig sizes the outbound message dispatcher.
type SenderConfig struct {
	Workers    int `yaml:"workers" envconfig:"SENDER_WORKERS"`
	QueueSize  int `yaml:"queue_size" envconfig:"SENDER_QUEUE_SIZE"`
	MaxRetries int `yaml:"max_retries" envconfig:"SENDER_MAX_RETRIES"`
}

// Config is the full HustleX bot configuration.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Database coredatabase.Config `yaml:"database"`
	Platform PlatformConfig      `yaml:"platform"`
	Jobs     JobsConfig          `yaml:"jobs"`
	Metrics  MetricsConfig       `yaml:"metrics"`
	Sender   SenderConfig        `yaml:"sender"`
}

// CoreConfig exposes the framework part of the configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Config
}

// Load reads path, overlays the environment and validates the result.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := coreconfig.Decode(path, &cfg); err != nil {
		return nil, err
	}
	if err := coreconfig.Normalize(&cfg.Config); err != nil {
		return nil, err
	}
	if err := normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func normalize(cfg *Config) error {
	if strings.TrimSpace(cfg.Platform.Name) == "" {
		cfg.Platform.Name = "HustleX"
	}
	cfg.Platform.ClientURL = strings.TrimRight(strings.TrimSpace(cfg.Platform.ClientURL), "/")
	if cfg.Platform.ClientURL == "" {
		cfg.Platform.ClientURL = "https://www.hustlex.com"
	}
	if !strings.HasPrefix(cfg.Platform.ClientURL, "http://") && !strings.HasPrefix(cfg.Platform.ClientURL, "https://") {
		return fmt.Errorf("platform.client_url must be an http(s) URL, got %q", cfg.Platform.ClientURL)
	}
	if strings.TrimSpace(cfg.Platform.SupportEmail) == "" {
		cfg.Platform.SupportEmail = "support@hustleX.et"
	}

	switch {
	case cfg.Jobs.Limit < 0:
		return fmt.Errorf("jobs.limit must be >= 0")
	case cfg.Jobs.Limit == 0:
		cfg.Jobs.Limit = 5
	case cfg.Jobs.Limit > 20:
		cfg.Jobs.Limit = 20
	}
	if cfg.Jobs.Timeout <= 0 {
		cfg.Jobs.Timeout = 3 * time.Second
	}

	if cfg.Sender.Workers < 0 || cfg.Sender.QueueSize < 0 || cfg.Sender.MaxRetries < 0 {
		return fmt.Errorf("sender settings must be >= 0")
	}
	return nil
}
