package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/flagx"
)

// parseFlags overlays cfg with command-line flags:
//
//	-a string   API base URL
//	-t int      request timeout (in seconds); left alone when absent
//	-d string   sqlite database path
//	-o string   download directory
//	-l string   log level
//
// Only these flags are looked at; the rest of args is ignored.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-d", "-o", "-l"})

	fs := flag.NewFlagSet("bngrc", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "sqlite database path")
	fs.StringVar(&cfg.DownloadDir, "o", cfg.DownloadDir, "download directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
