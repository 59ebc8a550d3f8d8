// Package configs manages rollcall's configuration and file locations.
//
// Configuration is stored in TOML at $XDG_CONFIG_HOME/rollcall/config.toml:
//
//	[store]
//	store_uuid = "2f1c..."
//	created_at = 2025-01-01T09:00:00Z
//
//	[storage]
//	data_dir = "/srv/events"
//	data_file = "attendees.csv"
//	key_file = "key.key"
//
// The store UUID is generated on first use and tags audit entries. Every
// [storage] key is optional.
//
// # Settings
//
// RollcallSettings is initialized at startup with defaults:
//   - DataDir: $XDG_DATA_HOME/rollcall (or ~/.local/share/rollcall)
//   - DataFileName: attendees.csv
//   - KeyFileName: key.key
//
// Call InitSettings() to apply the config file, then the ROLLCALL_DATA_DIR
// environment variable, on top of those defaults.
package configs
