package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

type envConfig struct {
	APIBaseURL     string        `env:"BNGRC_API_URL"`
	RequestTimeout time.Duration `env:"BNGRC_TIMEOUT"`
	DatabasePath   string        `env:"BNGRC_DB"`
	DownloadDir    string        `env:"BNGRC_DOWNLOAD_DIR"`
	LogLevel       string        `env:"BNGRC_LOG_LEVEL"`
}

// parseEnv overlays cfg with the BNGRC_* variables that are set.
func parseEnv(cfg *Config) error {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if ec.APIBaseURL != "" {
		cfg.APIBaseURL = ec.APIBaseURL
	}
	if ec.RequestTimeout > 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
	if ec.DatabasePath != "" {
		cfg.DatabasePath = ec.DatabasePath
	}
	if ec.DownloadDir != "" {
		cfg.DownloadDir = ec.DownloadDir
	}
	if ec.LogLevel != "" {
		cfg.LogLevel = ec.LogLevel
	}
	return nil
}
