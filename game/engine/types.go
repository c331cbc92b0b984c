package engine

// Kind identifies which movement rule applies to a piece
type Kind string

const (
	Pawn   Kind = "pawn"
	Knight Kind = "knight"
	Bishop Kind = "bishop"
	Rook   Kind = "rook"
	Queen  Kind = "queen"
	King   Kind = "king"
)

// Kinds lists every piece kind in a stable order
var Kinds = []Kind{Pawn, Knight, Bishop, Rook, Queen, King}

// Color is the side a piece belongs to
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// GlyphSet selects how piece icons are rendered
type GlyphSet string

const (
	GlyphsUnicode GlyphSet = "unicode"
	GlyphsLetters GlyphSet = "letters"

	// Board geometry
	BoardSize = 8
	MinIndex  = 0
	MaxIndex  = BoardSize - 1

	// Starting ranks
	BlackBackRank = 0
	BlackPawnRank = 1
	WhitePawnRank = 6
	WhiteBackRank = 7

	WebSocketBufferSize = 256
)

// Position represents row,col board coordinates.
// Row 0 is Black's back rank, row 7 is White's back rank.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// GameConfig represents the game configuration from JSON
type GameConfig struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	GlyphSet    GlyphSet `json:"glyph_set"`
	Messages    struct {
		Welcome  string `json:"welcome"`
		Moved    string `json:"moved"`
		Captured string `json:"captured"`
		Rejected string `json:"rejected"`
		Reset    string `json:"reset"`
	} `json:"messages"`
}

// LastMove describes the most recently applied move
type LastMove struct {
	From     Position `json:"from"`
	To       Position `json:"to"`
	Kind     Kind     `json:"kind"`
	Color    Color    `json:"color"`
	Captured *Piece   `json:"captured,omitempty"`
}

// GameState represents the complete game state
type GameState struct {
	Board      *Board    `json:"board"`
	Moves      int       `json:"moves"`
	Message    string    `json:"message"`
	ConfigName string    `json:"config_name"`
	LastMove   *LastMove `json:"last_move,omitempty"`

	// Computed helper views (not required for core game logic)
	FEN     string `json:"fen,omitempty"`
	Diagram string `json:"diagram,omitempty"`
}

// MoveOutcome is the full result of a move attempt
type MoveOutcome struct {
	Applied  bool         `json:"applied"`
	Reason   RejectReason `json:"reason,omitempty"`
	Piece    *Piece       `json:"piece,omitempty"`
	Captured *Piece       `json:"captured,omitempty"`
}
