package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds runtime settings for the BNGRC terminal client.
//
// Fields:
//   - APIBaseURL: root of the REST API, e.g. http://localhost:3001/serviceterritoriale.
//   - RequestTimeout: upper bound for a single HTTP exchange.
//   - DatabasePath: sqlite file that keeps the session between runs.
//   - DownloadDir: directory where downloaded files are written.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL     string        `validate:"required,url"`
	RequestTimeout time.Duration `validate:"gt=0"`
	DatabasePath   string        `validate:"required"`
	DownloadDir    string        `validate:"required"`
	LogLevel       string        `validate:"oneof=debug info warn error"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3001/serviceterritoriale"
	c.RequestTimeout = 30 * time.Second
	c.DatabasePath = "bngrc.db"
	c.DownloadDir = "downloads"
	c.LogLevel = "info"
}

// Validate reports the first invalid field, if any.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadConfig builds a Config from defaults, then the JSON file named by
// -c/-config, then BNGRC_* environment variables, then flags. Later sources
// take precedence over earlier ones. args are the program arguments without
// the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
