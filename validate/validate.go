// Command validate checks the game configuration JSON files in a directory
// (../configs unless one is given as the first argument). It checks:
//   - JSON structure and required fields
//   - The glyph set (unicode or letters)
//   - Required message keys, present and non-empty
//   - That an engine built from the config sets up 32 pieces and plays e2-e4
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/wricardo/mcp-training/localchess/game/engine"
	"github.com/wricardo/mcp-training/localchess/game/notation"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

var requiredMessages = []string{"welcome", "moved", "captured", "rejected", "reset"}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single configuration JSON file
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	if !gjson.ValidBytes(data) {
		result.fail("Invalid JSON")
		return result
	}

	var config engine.GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	raw := gjson.ParseBytes(data)

	for _, field := range []string{"name", "description"} {
		if strings.TrimSpace(raw.Get(field).String()) == "" {
			result.fail("Missing required field: %s", field)
		}
	}

	glyphs := raw.Get("glyph_set")
	switch engine.GlyphSet(glyphs.String()) {
	case engine.GlyphsUnicode, engine.GlyphsLetters:
	default:
		if glyphs.Exists() {
			result.fail("glyph_set must be %q or %q, got %q", engine.GlyphsUnicode, engine.GlyphsLetters, glyphs.String())
		}
	}

	for _, key := range requiredMessages {
		msg := raw.Get("messages." + key)
		if !msg.Exists() {
			result.fail("Missing required message: %s", key)
		} else if strings.TrimSpace(msg.String()) == "" {
			result.fail("Message %s is empty", key)
		}
	}

	if !result.Valid {
		return result
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		result.fail("%v", err)
		return result
	}

	if errs := smokeTest(&config); len(errs) > 0 {
		for _, e := range errs {
			result.fail("%s", e)
		}
		return result
	}

	// Add informational data
	glyphSet := config.GlyphSet
	if glyphSet == "" {
		glyphSet = engine.GlyphsUnicode
		result.Errors = append(result.Errors, "✓ glyph_set not set, defaults to unicode")
	}
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Glyphs: %s (%s%s)", glyphSet,
		engine.Glyph(engine.King, engine.White, glyphSet), engine.Glyph(engine.King, engine.Black, glyphSet)))
	result.Errors = append(result.Errors, "✓ Engine: 32 pieces, e2-e4 applied")

	return result
}

// smokeTest builds an engine from the config and plays one opening move
func smokeTest(config *engine.GameConfig) []string {
	var errs []string

	eng, err := engine.NewEngine(config)
	if err != nil {
		return []string{fmt.Sprintf("Engine rejected config: %v", err)}
	}

	board := eng.Board()
	for _, color := range []engine.Color{engine.White, engine.Black} {
		if n := board.CountPieces(color); n != 16 {
			errs = append(errs, fmt.Sprintf("Expected 16 %s pieces, got %d", color, n))
		}
	}

	from, _ := notation.ParseSquare("e2")
	to, _ := notation.ParseSquare("e4")
	if !eng.TryMove(from, to, eng.PieceAt(from.Row, from.Col)) {
		errs = append(errs, "Opening move e2-e4 was rejected")
	}

	return errs
}

// main validates each *.json file, printing a concise report and exiting
// with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No configuration files found in %s\n", configDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Println("  ❌ " + err)
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
