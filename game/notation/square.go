package notation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wricardo/mcp-training/localchess/game/engine"
)

// ErrInvalidSquare is returned when a square name cannot be parsed
var ErrInvalidSquare = errors.New("invalid square")

// ParseSquare parses an algebraic square name like "e2" into a board position
func ParseSquare(name string) (engine.Position, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	if len(s) != 2 {
		return engine.Position{}, fmt.Errorf("%w: %q", ErrInvalidSquare, name)
	}

	file, rank := s[0], s[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return engine.Position{}, fmt.Errorf("%w: %q", ErrInvalidSquare, name)
	}

	return engine.Position{
		Row: int('8' - rank),
		Col: int(file - 'a'),
	}, nil
}

// SquareName returns the algebraic name of a position, or "" when it is off the board
func SquareName(p engine.Position) string {
	if !p.InBounds() {
		return ""
	}
	return fmt.Sprintf("%c%c", 'a'+p.Col, '8'-p.Row)
}

// SquareNames converts a list of positions, preserving order
func SquareNames(positions []engine.Position) []string {
	names := make([]string, 0, len(positions))
	for _, p := range positions {
		names = append(names, SquareName(p))
	}
	return names
}
