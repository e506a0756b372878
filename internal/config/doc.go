// Package config loads runtime configuration for the gophnotes CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file (see parseFile) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags).
//  4. The GOPHNOTES_STORE_SECRET environment variable (store secret only).
//
// Supported flags
//
//	-s string   credential store file
//	-d string   directory for document files
//	-l string   log level: debug, info, warn, error
//
// The store secret is not accepted as a flag so it does not show up in
// process listings.
//
// # File schema
//
//	{
//	  "store_path": "/home/ana/.config/gophnotes/users.store",
//	  "store_secret": "change me",
//	  "documents_dir": "/home/ana/notes",
//	  "log_level": "info"
//	}
//
// A file with the .toml extension is read as TOML with the same keys:
//
//	store_path = "/home/ana/.config/gophnotes/users.store"
//	log_level = "debug"
//
// Empty or missing fields keep the earlier value.
package config
