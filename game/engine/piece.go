package engine

import "fmt"

// Piece is a single chess piece. Its location is not stored here:
// the cell that references it is the only record of where it stands.
type Piece struct {
	Kind     Kind   `json:"kind"`
	Color    Color  `json:"color"`
	Alive    bool   `json:"alive"`
	HasMoved bool   `json:"has_moved"`
	Icon     string `json:"icon"`
}

var unicodeGlyphs = map[Color]map[Kind]string{
	White: {
		King:   "♔",
		Queen:  "♕",
		Rook:   "♖",
		Bishop: "♗",
		Knight: "♘",
		Pawn:   "♙",
	},
	Black: {
		King:   "♚",
		Queen:  "♛",
		Rook:   "♜",
		Bishop: "♝",
		Knight: "♞",
		Pawn:   "♟",
	},
}

var letterGlyphs = map[Color]map[Kind]string{
	White: {King: "K", Queen: "Q", Rook: "R", Bishop: "B", Knight: "N", Pawn: "P"},
	Black: {King: "k", Queen: "q", Rook: "r", Bishop: "b", Knight: "n", Pawn: "p"},
}

// NewPiece creates a live, unmoved piece with the glyph for its kind and color
func NewPiece(kind Kind, color Color, glyphs GlyphSet) *Piece {
	return &Piece{
		Kind:  kind,
		Color: color,
		Alive: true,
		Icon:  Glyph(kind, color, glyphs),
	}
}

// Glyph returns the display glyph for a kind and color
func Glyph(kind Kind, color Color, glyphs GlyphSet) string {
	table := unicodeGlyphs
	if glyphs == GlyphsLetters {
		table = letterGlyphs
	}
	return table[color][kind]
}

// Clone returns an independent copy of the piece
func (p *Piece) Clone() *Piece {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

func (p *Piece) String() string {
	if p == nil {
		return "empty"
	}
	return fmt.Sprintf("%s %s", p.Color, p.Kind)
}

// Valid reports whether the kind is one of the six known kinds
func (k Kind) Valid() bool {
	switch k {
	case Pawn, Knight, Bishop, Rook, Queen, King:
		return true
	}
	return false
}

// Sliding reports whether the kind moves along an unblocked line
func (k Kind) Sliding() bool {
	return k == Bishop || k == Rook || k == Queen
}

// Valid reports whether the color is White or Black
func (c Color) Valid() bool {
	return c == White || c == Black
}

// Opponent returns the other side
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// Forward is the row step a pawn of this color advances by
func (c Color) Forward() int {
	if c == White {
		return -1
	}
	return 1
}
