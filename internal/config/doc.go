// Package config handles configuration loading for notes-server.
//
// # Overview
//
// Every setting has a default, so the server runs with no file at all. A file
// may override the defaults, and the PORT environment variable overrides the
// port last.
//
// # Configuration File
//
// Locations (in order):
//
//  1. Path from NOTES_CONFIG environment variable
//  2. ./notes.yaml (current directory, only if present)
//
// Files ending in .toml are decoded as TOML; everything else as YAML.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	static:
//	  dir: "${NOTES_PUBLIC_DIR}"
//
// Syntax: ${VAR_NAME}
//
// # Configuration Sections
//
//	server:
//	  host: ""        # empty = all interfaces
//	  port: 3000      # overridden by PORT
//
//	store:
//	  backend: memory # memory, sqlite (both in-memory)
//
//	static:
//	  dir: ""         # empty = embedded assets
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// # Usage
//
//	cfg, err := config.Load(config.Path())
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
