package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateGameConfig(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *GameConfig)
		wantErr bool
	}{
		{"valid", func(c *GameConfig) {}, false},
		{"empty glyph set", func(c *GameConfig) { c.GlyphSet = "" }, false},
		{"missing name", func(c *GameConfig) { c.Name = "" }, true},
		{"missing description", func(c *GameConfig) { c.Description = "" }, true},
		{"bad glyph set", func(c *GameConfig) { c.GlyphSet = "emoji" }, true},
		{"missing welcome", func(c *GameConfig) { c.Messages.Welcome = "" }, true},
		{"missing moved", func(c *GameConfig) { c.Messages.Moved = "" }, true},
		{"missing rejected", func(c *GameConfig) { c.Messages.Rejected = "" }, true},
		{"optional captured", func(c *GameConfig) { c.Messages.Captured = "" }, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := createTestConfig()
			test.modify(config)
			err := ValidateGameConfig(config)
			if (err != nil) != test.wantErr {
				t.Errorf("Expected error=%v, got %v", test.wantErr, err)
			}
		})
	}

	if err := ValidateGameConfig(nil); err == nil {
		t.Error("Expected error for nil config")
	}
}

func TestDefaultConfig(t *testing.T) {
	if err := ValidateGameConfig(DefaultConfig()); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestLoadGameConfig(t *testing.T) {
	dir := t.TempDir()
	content := `{
		"name": "Letters",
		"description": "ASCII pieces",
		"glyph_set": "letters",
		"messages": {"welcome": "Hi", "moved": "Ok", "rejected": "No"}
	}`
	if err := os.WriteFile(filepath.Join(dir, "letters.json"), []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Run("direct path", func(t *testing.T) {
		config, err := LoadGameConfig(filepath.Join(dir, "letters.json"))
		if err != nil {
			t.Fatalf("LoadGameConfig: %v", err)
		}
		if config.GlyphSet != GlyphsLetters {
			t.Errorf("Expected letters glyph set, got %q", config.GlyphSet)
		}
	})

	t.Run("CONFIG_DIR override", func(t *testing.T) {
		t.Setenv("CONFIG_DIR", dir)
		config, err := LoadGameConfig("configs/letters.json")
		if err != nil {
			t.Fatalf("LoadGameConfig: %v", err)
		}
		if config.Name != "Letters" {
			t.Errorf("Expected Letters, got %q", config.Name)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadGameConfig(filepath.Join(dir, "nope.json")); err == nil {
			t.Error("Expected error for missing file")
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		os.WriteFile(path, []byte(`{"name": "x"}`), 0644)
		if _, err := LoadGameConfig(path); err == nil {
			t.Error("Expected validation error")
		}
	})
}
