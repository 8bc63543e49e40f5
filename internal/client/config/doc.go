// Package config loads runtime configuration for the BNGRC terminal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. BNGRC_* environment variables.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   API base URL
//	-t int      request timeout (seconds)
//	-d string   sqlite database path
//	-o string   download directory
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:3001/serviceterritoriale",
//	  "request_timeout": "30s",
//	  "database_path": "bngrc.db",
//	  "download_dir": "downloads",
//	  "log_level": "info"
//	}
//
// Environment variables: BNGRC_API_URL, BNGRC_TIMEOUT (e.g. "15s"),
// BNGRC_DB, BNGRC_DOWNLOAD_DIR, BNGRC_LOG_LEVEL.
package config
