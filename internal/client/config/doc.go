// Package config loads runtime configuration for the catalog CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or --config.
//  3. CATALOG_* variables from the process environment, falling back to the
//     .env file named by --env.
//  4. Command-line flags (see Flags), which override earlier values.
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "3s" or
// integer nanoseconds. Keys left out keep their earlier value:
//
//	{
//	  "api_url": "https://upoad-image-db.vercel.app/api/product",
//	  "request_timeout": "10s",
//	  "refresh_interval": "0s",
//	  "cache_dsn": "catalog.db",
//	  "log_level": "info",
//	  "log_file": "",
//	  "date_layout": "02/01/2006",
//	  "merge_on_write": false
//	}
package config
