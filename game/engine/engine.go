package engine

import (
	"fmt"
	"sync"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Board access
	Board() *Board
	PieceAt(row, col int) *Piece

	// Movement operations
	TryMove(from, to Position, piece *Piece) bool
	Attempt(from, to Position, piece *Piece) MoveOutcome
	LegalTargets(from Position) []Position

	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Reset() *GameState
	MoveCount() int

	// Configuration
	GetConfig() *GameConfig
	SetConfig(config *GameConfig) error
}

// GameEngine implements the Engine interface. A single mutex guards the
// board so that a legality check and the mutation it allows happen as one
// step for every caller.
type GameEngine struct {
	mu       sync.Mutex
	board    *Board
	config   *GameConfig
	moves    int
	message  string
	lastMove *LastMove
}

// NewEngine creates a new game engine with the provided configuration
func NewEngine(config *GameConfig) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	engine := &GameEngine{config: config}
	engine.resetLocked(config.Messages.Welcome)
	return engine, nil
}

// NewEngineWithDefaults creates a new game engine with the built-in classic configuration
func NewEngineWithDefaults() *GameEngine {
	config := DefaultConfig()
	engine := &GameEngine{config: config}
	engine.resetLocked(config.Messages.Welcome)
	return engine
}

// Board returns a deep copy of the current board
func (e *GameEngine) Board() *Board {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.board.Clone()
}

// PieceAt returns the live piece at row,col, or nil
func (e *GameEngine) PieceAt(row, col int) *Piece {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.board.PieceAt(row, col)
}

// TryMove moves piece from one square to another when the move is legal.
// It returns false and leaves the board untouched otherwise.
func (e *GameEngine) TryMove(from, to Position, piece *Piece) bool {
	return e.Attempt(from, to, piece).Applied
}

// Attempt is TryMove with the rejection reason and capture details
func (e *GameEngine) Attempt(from, to Position, piece *Piece) MoveOutcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	if reason := Validate(e.board, from, to, piece); reason != ReasonNone {
		e.message = fmt.Sprintf("%s [%s]", e.config.Messages.Rejected, reason)
		return MoveOutcome{Reason: reason}
	}

	captured := e.apply(from, to, piece)

	e.moves++
	e.lastMove = &LastMove{
		From:     from,
		To:       to,
		Kind:     piece.Kind,
		Color:    piece.Color,
		Captured: captured.Clone(),
	}
	if captured != nil {
		msg := e.config.Messages.Captured
		if msg == "" {
			msg = e.config.Messages.Moved
		}
		e.message = fmt.Sprintf("%s [%s takes %s at (%d,%d)]", msg, piece, captured, to.Row, to.Col)
	} else {
		e.message = fmt.Sprintf("%s [%s (%d,%d)->(%d,%d)]", e.config.Messages.Moved, piece, from.Row, from.Col, to.Row, to.Col)
	}

	return MoveOutcome{
		Applied:  true,
		Piece:    piece.Clone(),
		Captured: captured.Clone(),
	}
}

// apply performs an already validated move: the destination takes the piece,
// the source is emptied and a captured occupant is marked dead and dropped.
func (e *GameEngine) apply(from, to Position, piece *Piece) *Piece {
	dst := e.board.CellAt(to.Row, to.Col)
	captured := dst.Piece
	if captured != nil {
		captured.Alive = false
	}
	dst.Piece = piece
	e.board.CellAt(from.Row, from.Col).Piece = nil
	if !piece.HasMoved {
		piece.HasMoved = true
	}
	return captured
}

// LegalTargets returns every square the piece on from may move to right now
func (e *GameEngine) LegalTargets(from Position) []Position {
	e.mu.Lock()
	defer e.mu.Unlock()

	piece := e.board.at(from)
	if piece == nil {
		return nil
	}

	var targets []Position
	for _, to := range AllPositions() {
		if Validate(e.board, from, to, piece) == ReasonNone {
			targets = append(targets, to)
		}
	}
	return targets
}

// GetState returns a snapshot of the current game state
func (e *GameEngine) GetState() *GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

func (e *GameEngine) stateLocked() *GameState {
	state := &GameState{
		Board:      e.board.Clone(),
		Moves:      e.moves,
		Message:    e.message,
		ConfigName: e.config.Name,
	}
	if e.lastMove != nil {
		lm := *e.lastMove
		lm.Captured = e.lastMove.Captured.Clone()
		state.LastMove = &lm
	}
	return state
}

// SetState sets the game state (used for persistence loading)
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if state.Board == nil {
		return fmt.Errorf("state board cannot be nil")
	}
	if state.Moves < 0 {
		return fmt.Errorf("state moves cannot be negative, got %d", state.Moves)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.board = state.Board.Clone()
	e.moves = state.Moves
	e.message = state.Message
	e.lastMove = nil
	if state.LastMove != nil {
		lm := *state.LastMove
		lm.Captured = state.LastMove.Captured.Clone()
		e.lastMove = &lm
	}
	return nil
}

// Reset discards the board and sets up the starting position again
func (e *GameEngine) Reset() *GameState {
	e.mu.Lock()
	defer e.mu.Unlock()

	msg := e.config.Messages.Reset
	if msg == "" {
		msg = e.config.Messages.Welcome
	}
	e.resetLocked(msg)
	return e.stateLocked()
}

func (e *GameEngine) resetLocked(message string) {
	e.board = NewBoard(e.config.glyphSet())
	e.moves = 0
	e.lastMove = nil
	e.message = message
}

// MoveCount returns the number of moves applied since the last reset
func (e *GameEngine) MoveCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.moves
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config
}

// SetConfig sets a new game configuration and resets the game
func (e *GameEngine) SetConfig(config *GameConfig) error {
	if err := ValidateGameConfig(config); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.config = config
	e.resetLocked(config.Messages.Welcome)
	return nil
}
