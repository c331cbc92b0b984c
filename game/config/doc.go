// Package config provides configuration management for the local chess server.
//
// The config package handles:
//   - Loading game configurations from JSON files
//   - Configuration validation
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Game configurations are stored as JSON files in the configs directory.
// Each configuration names a glyph set ("unicode" or "letters") used to
// render pieces and the messages shown on welcome, move, capture,
// rejection and reset. The board layout itself is always the standard
// starting position.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("letters")
//	defaultConfig := manager.GetDefault()
//	configs, err := manager.ListConfigs()
//
// When the directory holds no classic.json, the first valid file becomes the
// default; when it holds none at all, the built-in classic configuration is
// used.
package config
