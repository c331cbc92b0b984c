package engine

// abs returns the absolute value of x
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// sign returns -1, 0 or 1 matching the sign of x
func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// AllPositions returns the 64 board positions row by row
func AllPositions() []Position {
	positions := make([]Position, 0, BoardSize*BoardSize)
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			positions = append(positions, Position{Row: row, Col: col})
		}
	}
	return positions
}

// CountKind counts pieces of a kind and color on the board
func CountKind(b *Board, kind Kind, color Color) int {
	count := 0
	for _, cell := range b.Occupied() {
		if cell.Piece.Kind == kind && cell.Piece.Color == color {
			count++
		}
	}
	return count
}
