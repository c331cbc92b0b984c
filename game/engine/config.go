package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateGameConfig validates a game configuration for correctness
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}

	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	switch config.GlyphSet {
	case "", GlyphsUnicode, GlyphsLetters:
	default:
		return fmt.Errorf("config validation: glyph_set must be %q or %q, got %q", GlyphsUnicode, GlyphsLetters, config.GlyphSet)
	}

	// Validate messages
	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}
	if config.Messages.Moved == "" {
		return fmt.Errorf("config validation: messages.moved is required")
	}
	if config.Messages.Rejected == "" {
		return fmt.Errorf("config validation: messages.rejected is required")
	}

	return nil
}

// LoadGameConfig loads a game configuration from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	// Support CONFIG_DIR environment variable for alternative config directory
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// DefaultConfig returns the built-in classic configuration
func DefaultConfig() *GameConfig {
	config := &GameConfig{
		Name:        "classic",
		Description: "Standard starting position with unicode glyphs",
		GlyphSet:    GlyphsUnicode,
	}
	config.Messages.Welcome = "New game. White starts at the bottom (rows 6-7)."
	config.Messages.Moved = "Move applied."
	config.Messages.Captured = "Capture!"
	config.Messages.Rejected = "Illegal move."
	config.Messages.Reset = "Board reset to the starting position."
	return config
}

// glyphSet returns the configured glyph set, defaulting to unicode
func (c *GameConfig) glyphSet() GlyphSet {
	if c == nil || c.GlyphSet == "" {
		return GlyphsUnicode
	}
	return c.GlyphSet
}
