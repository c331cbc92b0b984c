package service

import (
	"time"

	"github.com/wricardo/mcp-training/localchess/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// MoveRequest names a move by its source and destination squares ("e2", "e4").
// The piece is whatever stands on From when the move is attempted.
type MoveRequest struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Reset bool   `json:"reset,omitempty"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Success   bool                `json:"success"`
	Reason    engine.RejectReason `json:"reason,omitempty"`
	From      string              `json:"from"`
	To        string              `json:"to"`
	Piece     *engine.Piece       `json:"piece,omitempty"`
	Captured  *engine.Piece       `json:"captured,omitempty"`
	GameState *engine.GameState   `json:"game_state"`
	Message   string              `json:"message"`
	Events    []GameEvent         `json:"events,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"` // "move", "capture", "reset"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Square    string    `json:"square,omitempty"`
}

// PieceInfo describes the occupant of one square
type PieceInfo struct {
	Square   string          `json:"square"`
	Position engine.Position `json:"position"`
	Piece    *engine.Piece   `json:"piece"`
}

// LegalMovesResult lists the squares a piece may move to right now
type LegalMovesResult struct {
	Square  string        `json:"square"`
	Piece   *engine.Piece `json:"piece"`
	Targets []string      `json:"targets"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	GlyphSet    string `json:"glyph_set"`
}
