package notation

import (
	"github.com/corentings/chess/v2"

	"github.com/wricardo/mcp-training/localchess/game/engine"
)

// The engine tracks neither side to move, castling rights nor en passant
// squares, so every FEN carries the same fixed trailing fields.
const fenSuffix = " w - - 0 1"

var chessPieces = map[engine.Color]map[engine.Kind]chess.Piece{
	engine.White: {
		engine.King:   chess.WhiteKing,
		engine.Queen:  chess.WhiteQueen,
		engine.Rook:   chess.WhiteRook,
		engine.Bishop: chess.WhiteBishop,
		engine.Knight: chess.WhiteKnight,
		engine.Pawn:   chess.WhitePawn,
	},
	engine.Black: {
		engine.King:   chess.BlackKing,
		engine.Queen:  chess.BlackQueen,
		engine.Rook:   chess.BlackRook,
		engine.Bishop: chess.BlackBishop,
		engine.Knight: chess.BlackKnight,
		engine.Pawn:   chess.BlackPawn,
	},
}

// toChessBoard mirrors an engine board into a chess library board
func toChessBoard(b *engine.Board) *chess.Board {
	pieces := make(map[chess.Square]chess.Piece)
	for _, cell := range b.Occupied() {
		p, ok := chessPieces[cell.Piece.Color][cell.Piece.Kind]
		if !ok {
			continue
		}
		sq := chess.NewSquare(chess.File(cell.Col), chess.Rank(engine.MaxIndex-cell.Row))
		pieces[sq] = p
	}
	return chess.NewBoard(pieces)
}

// Placement returns the FEN piece placement field for the board
func Placement(b *engine.Board) string {
	return toChessBoard(b).String()
}

// FEN returns a full FEN record for the board
func FEN(b *engine.Board) string {
	return Placement(b) + fenSuffix
}

// Diagram renders the board as a text diagram with rank and file labels
func Diagram(b *engine.Board) string {
	return toChessBoard(b).Draw()
}
