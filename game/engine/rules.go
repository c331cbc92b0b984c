package engine

// RejectReason is a machine-friendly code describing why a move was refused.
// The empty reason means the move is legal.
type RejectReason string

const (
	ReasonNone                RejectReason = ""
	ReasonOutOfBounds         RejectReason = "out_of_bounds"
	ReasonPieceMismatch       RejectReason = "piece_mismatch"
	ReasonNullMove            RejectReason = "null_move"
	ReasonIllegalGeometry     RejectReason = "illegal_geometry"
	ReasonPathBlocked         RejectReason = "path_blocked"
	ReasonFriendlyDestination RejectReason = "friendly_destination"
	ReasonDestinationOccupied RejectReason = "destination_occupied"
	ReasonNothingToCapture    RejectReason = "nothing_to_capture"
	ReasonUnknownKind         RejectReason = "unknown_kind"
)

// Validate decides whether piece may move from one square to another on b.
// It never mutates the board. piece must be the very piece standing on from.
func Validate(b *Board, from, to Position, piece *Piece) RejectReason {
	if !from.InBounds() || !to.InBounds() {
		return ReasonOutOfBounds
	}
	if piece == nil || b.at(from) != piece {
		return ReasonPieceMismatch
	}
	if from == to {
		return ReasonNullMove
	}

	switch piece.Kind {
	case Pawn:
		return checkPawn(b, from, to, piece)
	case Knight:
		return checkKnight(b, from, to, piece)
	case Bishop:
		return checkBishop(b, from, to, piece)
	case Rook:
		return checkRook(b, from, to, piece)
	case Queen:
		return checkQueen(b, from, to, piece)
	case King:
		return checkKing(b, from, to, piece)
	}
	return ReasonUnknownKind
}

// checkPawn splits on column displacement: straight pushes never capture,
// diagonal steps must capture.
func checkPawn(b *Board, from, to Position, pawn *Piece) RejectReason {
	forward := pawn.Color.Forward()
	dr := to.Row - from.Row
	dc := to.Col - from.Col

	switch abs(dc) {
	case 0:
		return pawnPush(b, from, to, pawn, dr*forward)
	case 1:
		if dr != forward {
			return ReasonIllegalGeometry
		}
		target := b.at(to)
		if target == nil {
			return ReasonNothingToCapture
		}
		if target.Color == pawn.Color {
			return ReasonFriendlyDestination
		}
		return ReasonNone
	}
	return ReasonIllegalGeometry
}

// pawnPush checks a same-column advance of `steps` squares forward
func pawnPush(b *Board, from, to Position, pawn *Piece, steps int) RejectReason {
	switch steps {
	case 1:
		if b.at(to) != nil {
			return ReasonDestinationOccupied
		}
		return ReasonNone
	case 2:
		if pawn.HasMoved {
			return ReasonIllegalGeometry
		}
		if b.at(from.Step(Direction{DRow: pawn.Color.Forward()})) != nil {
			return ReasonPathBlocked
		}
		if b.at(to) != nil {
			return ReasonDestinationOccupied
		}
		return ReasonNone
	}
	return ReasonIllegalGeometry
}

func checkKnight(b *Board, from, to Position, knight *Piece) RejectReason {
	dr := abs(to.Row - from.Row)
	dc := abs(to.Col - from.Col)
	if !(dr == 2 && dc == 1) && !(dr == 1 && dc == 2) {
		return ReasonIllegalGeometry
	}
	return destination(b, to, knight)
}

func checkBishop(b *Board, from, to Position, bishop *Piece) RejectReason {
	d, ok := lineDirection(from, to)
	if !ok || !d.Diagonal() {
		return ReasonIllegalGeometry
	}
	return slide(b, from, to, d, bishop)
}

func checkRook(b *Board, from, to Position, rook *Piece) RejectReason {
	d, ok := lineDirection(from, to)
	if !ok || d.Diagonal() {
		return ReasonIllegalGeometry
	}
	return slide(b, from, to, d, rook)
}

// checkQueen accepts anything the bishop or rook rule accepts
func checkQueen(b *Board, from, to Position, queen *Piece) RejectReason {
	d, ok := lineDirection(from, to)
	if !ok {
		return ReasonIllegalGeometry
	}
	return slide(b, from, to, d, queen)
}

// checkKing is the queen's eight directions limited to one square
func checkKing(b *Board, from, to Position, king *Piece) RejectReason {
	if max(abs(to.Row-from.Row), abs(to.Col-from.Col)) != 1 {
		return ReasonIllegalGeometry
	}
	return destination(b, to, king)
}

// slide requires an empty path strictly between the endpoints before
// looking at the destination
func slide(b *Board, from, to Position, d Direction, piece *Piece) RejectReason {
	if !pathClear(b, from, to, d) {
		return ReasonPathBlocked
	}
	return destination(b, to, piece)
}

// destination accepts an empty square or an opposite-color occupant
func destination(b *Board, to Position, piece *Piece) RejectReason {
	target := b.at(to)
	if target != nil && target.Color == piece.Color {
		return ReasonFriendlyDestination
	}
	return ReasonNone
}
