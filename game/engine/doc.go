// Package engine provides the chess rules engine for the local chess server.
//
// The engine package implements:
//   - The 8x8 board of cells and the standard starting position
//   - Pieces of six kinds with color, alive, has-moved and glyph data
//   - Path tracing over the four diagonal and four lateral directions
//   - Per-kind move legality and the board mutation that follows it
//   - Configuration loading and validation
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. Board owns 64 Cells; a Cell holds at most one
// Piece. A piece does not know where it stands: the cell referencing it is
// the only record of its position.
//
// Usage:
//
//	gameEngine, err := engine.NewEngine(engine.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	from := engine.Position{Row: 6, Col: 4}
//	to := engine.Position{Row: 4, Col: 4}
//	ok := gameEngine.TryMove(from, to, gameEngine.PieceAt(from.Row, from.Col))
//
// Rules:
//
// A move is applied if and only if it is legal for the moving piece's kind;
// a rejected move leaves the board exactly as it was. Pawns push one square
// (two from an unmoved pawn) and capture one square diagonally forward.
// Knights jump. Bishops, rooks and queens need every square strictly between
// source and destination to be empty. Kings step one square in any
// direction. Check, castling, en passant and promotion are not modelled, and
// either side may move at any time.
package engine
