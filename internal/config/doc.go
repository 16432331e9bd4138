// Package config loads runtime configuration for the userkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config (see parseJson).
//  3. Environment variables prefixed with USERKEEPER_ (see parseEnv).
//  4. Command-line flags (see parseFlags).
//
// Later sources override earlier ones.
//
// Supported flags
//
//	-a string   keyring service name
//	-d string   preference database path
//	-b string   comma-separated keyring backends (keychain, secret-service, kwallet, wincred, file, pass, keyctl)
//	-f string   directory of the encrypted file keyring
//	-p string   project identifier
//	-s          share the stored user across devices
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
//	{
//	  "service_name": "userkeeper",
//	  "database_path": "preferences.db",
//	  "keyring_backends": ["keychain", "file"],
//	  "keyring_file_dir": "~/.userkeeper/keyring",
//	  "project_identifier": "default",
//	  "share_across_devices": false,
//	  "log_level": "info"
//	}
package config
