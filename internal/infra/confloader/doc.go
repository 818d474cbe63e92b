// Package confloader loads layered configuration with koanf.
//
// Sources, lowest to highest priority:
//
//  1. Defaults registered with WithDefaults
//  2. YAML configuration file
//  3. Environment variables (SHOP_ prefix)
//
// Command-line flags are applied by the caller on top of the result.
//
// Environment keys map to koanf paths by splitting off a known section:
// with section "api", SHOP_API_CA_FILE becomes api.ca_file; keys outside
// any section keep their underscores (SHOP_STATE_DIR is state_dir).
//
// Watcher notifies callbacks when a watched file is rewritten, so
// long-lived processes can re-apply settings such as the log level.
package confloader
