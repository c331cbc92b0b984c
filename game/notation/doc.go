// Package notation converts between engine coordinates and the notations
// players and tools expect: algebraic square names such as "e2", FEN piece
// placement, and a printable board diagram.
//
// Row 0 is rank 8 and column 0 is file a, so the engine's (6,4) is "e2".
package notation
