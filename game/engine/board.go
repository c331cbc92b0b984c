package engine

import (
	"encoding/json"
	"fmt"
)

// Cell is one addressable square of the board
type Cell struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Piece *Piece `json:"piece,omitempty"`
}

// IsEmpty reports whether no piece occupies the cell
func (c *Cell) IsEmpty() bool {
	return c.Piece == nil
}

// Position returns the coordinates of the cell
func (c *Cell) Position() Position {
	return Position{Row: c.Row, Col: c.Col}
}

// Board is the fixed 8x8 grid of cells
type Board struct {
	cells [BoardSize][BoardSize]Cell
}

// backRank is the piece order on both back ranks, column 0 to 7
var backRank = [BoardSize]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewEmptyBoard creates a board with 64 empty cells
func NewEmptyBoard() *Board {
	b := &Board{}
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			b.cells[row][col] = Cell{Row: row, Col: col}
		}
	}
	return b
}

// NewBoard creates a board holding the standard starting position
func NewBoard(glyphs GlyphSet) *Board {
	b := NewEmptyBoard()
	for col, kind := range backRank {
		b.cells[BlackBackRank][col].Piece = NewPiece(kind, Black, glyphs)
		b.cells[BlackPawnRank][col].Piece = NewPiece(Pawn, Black, glyphs)
		b.cells[WhitePawnRank][col].Piece = NewPiece(Pawn, White, glyphs)
		b.cells[WhiteBackRank][col].Piece = NewPiece(kind, White, glyphs)
	}
	return b
}

// InBounds reports whether row and col both lie in 0..7
func InBounds(row, col int) bool {
	return row >= MinIndex && row <= MaxIndex && col >= MinIndex && col <= MaxIndex
}

// CellAt returns the cell at row,col. Callers must check InBounds first.
func (b *Board) CellAt(row, col int) *Cell {
	return &b.cells[row][col]
}

// PieceAt returns the occupant of row,col, or nil when empty or out of range
func (b *Board) PieceAt(row, col int) *Piece {
	if !InBounds(row, col) {
		return nil
	}
	return b.cells[row][col].Piece
}

func (b *Board) at(p Position) *Piece {
	return b.PieceAt(p.Row, p.Col)
}

// Place puts a piece on a cell, replacing any occupant
func (b *Board) Place(row, col int, piece *Piece) error {
	if !InBounds(row, col) {
		return fmt.Errorf("position (%d,%d) is off the board", row, col)
	}
	b.cells[row][col].Piece = piece
	return nil
}

// Clear empties a cell
func (b *Board) Clear(row, col int) error {
	return b.Place(row, col, nil)
}

// Clone returns a deep copy: every piece is copied too
func (b *Board) Clone() *Board {
	cp := NewEmptyBoard()
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			cp.cells[row][col].Piece = b.cells[row][col].Piece.Clone()
		}
	}
	return cp
}

// Occupied returns the cells that hold a piece, row by row
func (b *Board) Occupied() []Cell {
	var cells []Cell
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if b.cells[row][col].Piece != nil {
				cells = append(cells, b.cells[row][col])
			}
		}
	}
	return cells
}

// CountPieces counts the pieces of a color on the board
func (b *Board) CountPieces(color Color) int {
	count := 0
	for _, cell := range b.Occupied() {
		if cell.Piece.Color == color {
			count++
		}
	}
	return count
}

// MarshalJSON encodes the board as 8 rows of 8 piece-or-null entries
func (b *Board) MarshalJSON() ([]byte, error) {
	rows := make([][]*Piece, BoardSize)
	for row := 0; row < BoardSize; row++ {
		rows[row] = make([]*Piece, BoardSize)
		for col := 0; col < BoardSize; col++ {
			rows[row][col] = b.cells[row][col].Piece
		}
	}
	return json.Marshal(rows)
}

// UnmarshalJSON decodes the format written by MarshalJSON
func (b *Board) UnmarshalJSON(data []byte) error {
	var rows [][]*Piece
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	if len(rows) != BoardSize {
		return fmt.Errorf("board must have %d rows, got %d", BoardSize, len(rows))
	}

	decoded := NewEmptyBoard()
	for row, pieces := range rows {
		if len(pieces) != BoardSize {
			return fmt.Errorf("board row %d must have %d cells, got %d", row, BoardSize, len(pieces))
		}
		for col, piece := range pieces {
			if piece == nil {
				continue
			}
			if !piece.Kind.Valid() {
				return fmt.Errorf("unknown piece kind %q at (%d,%d)", piece.Kind, row, col)
			}
			if !piece.Color.Valid() {
				return fmt.Errorf("unknown piece color %q at (%d,%d)", piece.Color, row, col)
			}
			decoded.cells[row][col].Piece = piece
		}
	}

	*b = *decoded
	return nil
}
