package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/flagx"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/timex"
)

// JSONConfig is the on-disk shape of the config file. Intervals use
// timex.Duration so they can be written as "30s".
type JSONConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	DatabasePath   string         `json:"database_path"`
	DownloadDir    string         `json:"download_dir"`
	LogLevel       string         `json:"log_level"`
}

// parseJSON overlays cfg with the file given by -c/-config. Keys that are
// missing from the file keep their current value.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.DownloadDir != "" {
		cfg.DownloadDir = jc.DownloadDir
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	return nil
}
