package engine

// Direction is a unit step across the board
type Direction struct {
	DRow int
	DCol int
}

var (
	Up        = Direction{DRow: -1, DCol: 0}
	Right     = Direction{DRow: 0, DCol: 1}
	Down      = Direction{DRow: 1, DCol: 0}
	Left      = Direction{DRow: 0, DCol: -1}
	UpRight   = Direction{DRow: -1, DCol: 1}
	DownRight = Direction{DRow: 1, DCol: 1}
	DownLeft  = Direction{DRow: 1, DCol: -1}
	UpLeft    = Direction{DRow: -1, DCol: -1}
)

// LateralDirections are the four rook directions
var LateralDirections = []Direction{Up, Right, Down, Left}

// DiagonalDirections are the four bishop directions
var DiagonalDirections = []Direction{UpRight, DownRight, DownLeft, UpLeft}

// Diagonal reports whether the step changes both row and column
func (d Direction) Diagonal() bool {
	return d.DRow != 0 && d.DCol != 0
}

// Step returns p moved one square in direction d
func (p Position) Step(d Direction) Position {
	return Position{Row: p.Row + d.DRow, Col: p.Col + d.DCol}
}

// InBounds reports whether the position lies on the board
func (p Position) InBounds() bool {
	return InBounds(p.Row, p.Col)
}

// lineDirection resolves the single direction that leads from one square to
// the other along a rank, file or diagonal. ok is false for any other
// displacement, including the null move.
func lineDirection(from, to Position) (Direction, bool) {
	dr := to.Row - from.Row
	dc := to.Col - from.Col
	if dr == 0 && dc == 0 {
		return Direction{}, false
	}
	if dr != 0 && dc != 0 && abs(dr) != abs(dc) {
		return Direction{}, false
	}
	return Direction{DRow: sign(dr), DCol: sign(dc)}, true
}

// pathClear walks from the square after `from` up to, but not including,
// `to` and reports whether every square on the way is empty. Both endpoints
// are excluded on every axis.
func pathClear(b *Board, from, to Position, d Direction) bool {
	for p := from.Step(d); p != to; p = p.Step(d) {
		if !p.InBounds() {
			return false
		}
		if b.at(p) != nil {
			return false
		}
	}
	return true
}

// Between returns the squares strictly between from and to along their
// shared line, or nil when they are not on one line
func Between(from, to Position) []Position {
	d, ok := lineDirection(from, to)
	if !ok {
		return nil
	}
	var squares []Position
	for p := from.Step(d); p != to && p.InBounds(); p = p.Step(d) {
		squares = append(squares, p)
	}
	return squares
}
