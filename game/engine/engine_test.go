package engine

import (
	"encoding/json"
	"reflect"
	"strings"
	"sync"
	"testing"
)

func createTestConfig() *GameConfig {
	config := &GameConfig{
		Name:        "Test",
		Description: "Test configuration",
		GlyphSet:    GlyphsLetters,
	}
	config.Messages.Welcome = "Welcome!"
	config.Messages.Moved = "Moved"
	config.Messages.Captured = "Captured"
	config.Messages.Rejected = "Rejected"
	config.Messages.Reset = "Reset"
	return config
}

func newTestEngine(t *testing.T) *GameEngine {
	t.Helper()
	engine, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return engine
}

// vacate empties squares directly, bypassing move rules
func vacate(e *GameEngine, squares ...Position) {
	for _, sq := range squares {
		e.board.Clear(sq.Row, sq.Col)
	}
}

func put(e *GameEngine, sq Position, piece *Piece) *Piece {
	e.board.Place(sq.Row, sq.Col, piece)
	return piece
}

func boardJSON(t *testing.T, e *GameEngine) string {
	t.Helper()
	data, err := json.Marshal(e.Board())
	if err != nil {
		t.Fatalf("marshal board: %v", err)
	}
	return string(data)
}

func pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// move attempts a move with whatever stands on from and asserts the board is
// untouched when the move is rejected
func move(t *testing.T, e *GameEngine, from, to Position) bool {
	t.Helper()
	before := boardJSON(t, e)
	ok := e.TryMove(from, to, e.PieceAt(from.Row, from.Col))
	if !ok && boardJSON(t, e) != before {
		t.Errorf("rejected move %v->%v changed the board", from, to)
	}
	return ok
}

func TestNewEngine(t *testing.T) {
	engine := newTestEngine(t)

	state := engine.GetState()
	if state.Moves != 0 {
		t.Errorf("Expected 0 moves, got %d", state.Moves)
	}
	if state.Message != "Welcome!" {
		t.Errorf("Expected welcome message, got %q", state.Message)
	}
	if state.ConfigName != "Test" {
		t.Errorf("Expected config name Test, got %q", state.ConfigName)
	}
	if got := engine.PieceAt(7, 4).Icon; got != "K" {
		t.Errorf("Expected letter glyph K for white king, got %q", got)
	}
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	config := createTestConfig()
	config.Name = ""
	if _, err := NewEngine(config); err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestScenario_PawnDoubleStepOnce(t *testing.T) {
	engine := newTestEngine(t)
	pawn := engine.PieceAt(6, 1)

	if !engine.TryMove(pos(6, 1), pos(4, 1), pawn) {
		t.Fatal("Expected first double step to succeed")
	}
	if engine.PieceAt(6, 1) != nil {
		t.Error("Expected source cell to be empty")
	}
	if engine.PieceAt(4, 1) != pawn {
		t.Error("Expected destination to hold the moved pawn")
	}
	if !pawn.HasMoved {
		t.Error("Expected has_moved to be set")
	}

	if move(t, engine, pos(4, 1), pos(2, 1)) {
		t.Error("Expected second double step to fail")
	}
	if engine.PieceAt(4, 1) != pawn {
		t.Error("Expected pawn to stay on (4,1)")
	}
}

func TestScenario_KnightJumps(t *testing.T) {
	engine := newTestEngine(t)

	if !move(t, engine, pos(7, 1), pos(5, 0)) {
		t.Error("Expected knight (7,1)->(5,0) to succeed over the pawn rank")
	}
	if !move(t, engine, pos(7, 6), pos(5, 5)) {
		t.Error("Expected knight (7,6)->(5,5) to succeed")
	}
}

func TestScenario_RookNeedsClearFile(t *testing.T) {
	tests := []struct {
		name     string
		vacated  []Position
		from, to Position
		expected bool
	}{
		{"file clear", []Position{pos(6, 0), pos(5, 0)}, pos(7, 0), pos(4, 0), true},
		{"pawn still on (6,0)", nil, pos(7, 0), pos(4, 0), false},
		{"only (6,0) vacated", []Position{pos(6, 0)}, pos(7, 0), pos(4, 0), true},
		{"not lateral", []Position{pos(6, 0), pos(6, 1)}, pos(7, 0), pos(5, 1), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			engine := newTestEngine(t)
			vacate(engine, test.vacated...)
			if got := move(t, engine, test.from, test.to); got != test.expected {
				t.Errorf("Expected %v, got %v", test.expected, got)
			}
		})
	}

	t.Run("occupied intermediate blocks", func(t *testing.T) {
		engine := newTestEngine(t)
		vacate(engine, pos(6, 0))
		put(engine, pos(5, 0), NewPiece(Knight, Black, GlyphsLetters))
		if move(t, engine, pos(7, 0), pos(4, 0)) {
			t.Error("Expected rook to be blocked by (5,0)")
		}
	})
}

func TestScenario_BishopDiagonal(t *testing.T) {
	engine := newTestEngine(t)

	if move(t, engine, pos(7, 2), pos(5, 0)) {
		t.Error("Expected bishop to be blocked while (6,1) is occupied")
	}

	vacate(engine, pos(6, 1))
	if !move(t, engine, pos(7, 2), pos(5, 0)) {
		t.Error("Expected bishop (7,2)->(5,0) to succeed once (6,1) is empty")
	}
}

func TestScenario_QueenAndKing(t *testing.T) {
	tests := []struct {
		name     string
		vacated  []Position
		from, to Position
		expected bool
	}{
		{"queen file clear", []Position{pos(6, 3)}, pos(7, 3), pos(3, 3), true},
		{"queen file blocked", nil, pos(7, 3), pos(3, 3), false},
		{"queen diagonal clear", []Position{pos(6, 4)}, pos(7, 3), pos(4, 6), true},
		{"queen diagonal blocked", []Position{pos(6, 2)}, pos(7, 3), pos(4, 6), false},
		{"queen knight shape", []Position{pos(6, 3), pos(6, 4)}, pos(7, 3), pos(5, 4), false},
		{"queen captures down file", []Position{pos(6, 3), pos(1, 3)}, pos(7, 3), pos(0, 3), true},
		{"king one step", []Position{pos(6, 4)}, pos(7, 4), pos(6, 4), true},
		{"king one diagonal", []Position{pos(6, 5)}, pos(7, 4), pos(6, 5), true},
		{"king two steps", []Position{pos(6, 4)}, pos(7, 4), pos(5, 4), false},
		{"king onto own pawn", nil, pos(7, 4), pos(6, 4), false},
		{"king onto own piece", nil, pos(7, 4), pos(7, 3), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			engine := newTestEngine(t)
			vacate(engine, test.vacated...)
			if got := move(t, engine, test.from, test.to); got != test.expected {
				t.Errorf("Expected %v, got %v", test.expected, got)
			}
		})
	}
}

func TestValidate_Reasons(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(e *GameEngine)
		from, to Position
		expected RejectReason
	}{
		{"legal push", nil, pos(6, 4), pos(5, 4), ReasonNone},
		{"destination off board", nil, pos(7, 1), pos(8, 0), ReasonOutOfBounds},
		{"source off board", nil, pos(-1, 0), pos(0, 0), ReasonOutOfBounds},
		{"empty source", nil, pos(4, 4), pos(3, 4), ReasonPieceMismatch},
		{"null move", nil, pos(6, 4), pos(6, 4), ReasonNullMove},
		{"pawn backwards", func(e *GameEngine) { vacate(e, pos(7, 4)) }, pos(6, 4), pos(7, 4), ReasonIllegalGeometry},
		{"pawn triple step", nil, pos(6, 4), pos(3, 4), ReasonIllegalGeometry},
		{"pawn sideways", func(e *GameEngine) { vacate(e, pos(6, 5)) }, pos(6, 4), pos(6, 5), ReasonIllegalGeometry},
		{"pawn diagonal empty", nil, pos(6, 4), pos(5, 5), ReasonNothingToCapture},
		{"pawn diagonal friendly", func(e *GameEngine) { put(e, pos(5, 5), NewPiece(Knight, White, GlyphsLetters)) }, pos(6, 4), pos(5, 5), ReasonFriendlyDestination},
		{"pawn push blocked", func(e *GameEngine) { put(e, pos(5, 4), NewPiece(Knight, Black, GlyphsLetters)) }, pos(6, 4), pos(5, 4), ReasonDestinationOccupied},
		{"pawn double step jumps", func(e *GameEngine) { put(e, pos(5, 4), NewPiece(Knight, Black, GlyphsLetters)) }, pos(6, 4), pos(4, 4), ReasonPathBlocked},
		{"pawn double step onto piece", func(e *GameEngine) { put(e, pos(4, 4), NewPiece(Knight, Black, GlyphsLetters)) }, pos(6, 4), pos(4, 4), ReasonDestinationOccupied},
		{"black pawn forward", nil, pos(1, 3), pos(3, 3), ReasonNone},
		{"knight onto own pawn", nil, pos(7, 1), pos(6, 3), ReasonFriendlyDestination},
		{"knight straight", nil, pos(7, 1), pos(5, 1), ReasonIllegalGeometry},
		{"rook blocked", nil, pos(7, 0), pos(5, 0), ReasonPathBlocked},
		{"bishop straight", func(e *GameEngine) { vacate(e, pos(6, 2)) }, pos(7, 2), pos(5, 2), ReasonIllegalGeometry},
		{"king far", nil, pos(7, 4), pos(5, 4), ReasonIllegalGeometry},
		{"unknown kind", func(e *GameEngine) { e.board.PieceAt(7, 4).Kind = "dragon" }, pos(7, 4), pos(6, 4), ReasonUnknownKind},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			engine := newTestEngine(t)
			if test.setup != nil {
				test.setup(engine)
			}
			piece := engine.board.PieceAt(test.from.Row, test.from.Col)
			if got := Validate(engine.board, test.from, test.to, piece); got != test.expected {
				t.Errorf("Expected reason %q, got %q", test.expected, got)
			}
		})
	}
}

func TestTryMove_PieceMismatch(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name  string
		piece *Piece
	}{
		{"nil piece", nil},
		{"detached copy", engine.PieceAt(6, 4).Clone()},
		{"piece from another square", engine.PieceAt(7, 1)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			before := boardJSON(t, engine)
			outcome := engine.Attempt(pos(6, 4), pos(5, 4), test.piece)
			if outcome.Applied {
				t.Fatal("Expected move to be rejected")
			}
			if outcome.Reason != ReasonPieceMismatch {
				t.Errorf("Expected %q, got %q", ReasonPieceMismatch, outcome.Reason)
			}
			if boardJSON(t, engine) != before {
				t.Error("Expected board to be unchanged")
			}
		})
	}
}

func TestTryMove_SlidingBlockedRegardlessOfTarget(t *testing.T) {
	engine := newTestEngine(t)
	// Rook on (7,0) with own pawn on (6,0) and an enemy pawn at (1,0)
	for _, kind := range []Kind{Rook, Queen} {
		rook := put(engine, pos(7, 0), NewPiece(kind, White, GlyphsLetters))
		if engine.TryMove(pos(7, 0), pos(1, 0), rook) {
			t.Errorf("Expected %s to be blocked by the pawn on (6,0)", kind)
		}
	}
}

func TestTryMove_CaptureKillsOccupant(t *testing.T) {
	engine := newTestEngine(t)
	victim := put(engine, pos(5, 2), NewPiece(Knight, Black, GlyphsLetters))
	pawn := engine.PieceAt(6, 1)

	outcome := engine.Attempt(pos(6, 1), pos(5, 2), pawn)
	if !outcome.Applied {
		t.Fatalf("Expected capture to succeed, reason %q", outcome.Reason)
	}
	if victim.Alive {
		t.Error("Expected captured piece to be marked dead")
	}
	if outcome.Captured == nil || outcome.Captured.Kind != Knight {
		t.Errorf("Expected captured knight in outcome, got %v", outcome.Captured)
	}
	if engine.PieceAt(5, 2) != pawn || !pawn.Alive {
		t.Error("Expected capturing pawn to stand alive on (5,2)")
	}

	state := engine.GetState()
	if state.LastMove == nil || state.LastMove.Captured == nil {
		t.Fatal("Expected last move to record the capture")
	}
	if !strings.HasPrefix(state.Message, "Captured") {
		t.Errorf("Expected capture message, got %q", state.Message)
	}
	if engine.Board().CountPieces(Black) != 16 {
		t.Errorf("Expected 16 black pieces after capturing the extra knight, got %d", engine.Board().CountPieces(Black))
	}
}

func TestTryMove_SuccessInvariant(t *testing.T) {
	engine := newTestEngine(t)

	moves := [][2]Position{
		{pos(6, 4), pos(4, 4)},
		{pos(1, 4), pos(3, 4)},
		{pos(7, 6), pos(5, 5)},
		{pos(0, 1), pos(2, 2)},
		{pos(7, 5), pos(4, 2)},
		{pos(0, 3), pos(4, 7)},
		{pos(7, 4), pos(6, 4)},
		{pos(4, 7), pos(4, 4)},
	}

	for i, m := range moves {
		piece := engine.PieceAt(m[0].Row, m[0].Col)
		if !engine.TryMove(m[0], m[1], piece) {
			t.Fatalf("move %d %v->%v: expected success", i, m[0], m[1])
		}
		if engine.PieceAt(m[0].Row, m[0].Col) != nil {
			t.Errorf("move %d: expected source empty", i)
		}
		if engine.PieceAt(m[1].Row, m[1].Col) != piece || !piece.HasMoved {
			t.Errorf("move %d: expected moved piece with has_moved at destination", i)
		}
	}

	if engine.MoveCount() != len(moves) {
		t.Errorf("Expected %d moves, got %d", len(moves), engine.MoveCount())
	}
}

func TestTryMove_RejectLeavesBoardUnchanged(t *testing.T) {
	engine := newTestEngine(t)

	for _, from := range AllPositions() {
		piece := engine.PieceAt(from.Row, from.Col)
		if piece == nil {
			continue
		}
		for _, to := range AllPositions() {
			if Validate(engine.board, from, to, piece) == ReasonNone {
				continue
			}
			before := engine.Board()
			if engine.TryMove(from, to, piece) {
				t.Fatalf("%v->%v: expected rejection", from, to)
			}
			if !reflect.DeepEqual(before, engine.Board()) {
				t.Fatalf("%v->%v: board changed after rejection", from, to)
			}
		}
	}
	if engine.MoveCount() != 0 {
		t.Errorf("Expected no applied moves, got %d", engine.MoveCount())
	}
}

func TestTryMove_ConcurrentSameMove(t *testing.T) {
	engine := newTestEngine(t)
	pawn := engine.PieceAt(6, 4)

	const workers = 32
	var wg sync.WaitGroup
	results := make(chan bool, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- engine.TryMove(pos(6, 4), pos(4, 4), pawn)
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for ok := range results {
		if ok {
			succeeded++
		}
	}
	if succeeded != 1 {
		t.Errorf("Expected exactly one success, got %d", succeeded)
	}
	if engine.MoveCount() != 1 {
		t.Errorf("Expected 1 move, got %d", engine.MoveCount())
	}
}

func TestLegalTargets(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name     string
		from     Position
		expected []Position
	}{
		{"knight b1", pos(7, 1), []Position{pos(5, 0), pos(5, 2)}},
		{"pawn e2", pos(6, 4), []Position{pos(4, 4), pos(5, 4)}},
		{"boxed rook", pos(7, 0), nil},
		{"empty square", pos(4, 4), nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := engine.LegalTargets(test.from)
			if !reflect.DeepEqual(got, test.expected) {
				t.Errorf("Expected %v, got %v", test.expected, got)
			}
		})
	}
}

func TestBoard_ReturnsCopy(t *testing.T) {
	engine := newTestEngine(t)
	snapshot := engine.Board()
	snapshot.Clear(6, 4)

	if engine.PieceAt(6, 4) == nil {
		t.Error("Expected engine board to be unaffected by snapshot edits")
	}
}

func TestReset(t *testing.T) {
	engine := newTestEngine(t)
	fresh := boardJSON(t, engine)

	move(t, engine, pos(6, 4), pos(4, 4))
	move(t, engine, pos(7, 6), pos(5, 5))

	state := engine.Reset()
	if state.Moves != 0 {
		t.Errorf("Expected 0 moves after reset, got %d", state.Moves)
	}
	if state.LastMove != nil {
		t.Error("Expected no last move after reset")
	}
	if state.Message != "Reset" {
		t.Errorf("Expected reset message, got %q", state.Message)
	}
	if boardJSON(t, engine) != fresh {
		t.Error("Expected starting position after reset")
	}
}

func TestSetState(t *testing.T) {
	source := newTestEngine(t)
	move(t, source, pos(6, 4), pos(4, 4))
	saved := source.GetState()

	data, err := json.Marshal(saved)
	if err != nil {
		t.Fatalf("marshal state: %v", err)
	}
	var loaded GameState
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}

	target := newTestEngine(t)
	if err := target.SetState(&loaded); err != nil {
		t.Fatalf("SetState: %v", err)
	}
	if target.MoveCount() != 1 {
		t.Errorf("Expected 1 move, got %d", target.MoveCount())
	}
	if boardJSON(t, target) != boardJSON(t, source) {
		t.Error("Expected restored board to match")
	}
	if move(t, target, pos(4, 4), pos(2, 4)) {
		t.Error("Expected restored pawn to remember has_moved")
	}

	invalid := []*GameState{nil, {}, {Board: NewEmptyBoard(), Moves: -1}}
	for i, state := range invalid {
		if err := target.SetState(state); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}

func TestSetConfig(t *testing.T) {
	engine := newTestEngine(t)
	move(t, engine, pos(6, 4), pos(4, 4))

	if err := engine.SetConfig(DefaultConfig()); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}
	if engine.MoveCount() != 0 {
		t.Error("Expected SetConfig to reset the game")
	}
	if got := engine.PieceAt(7, 4).Icon; got != "♔" {
		t.Errorf("Expected unicode king after switching config, got %q", got)
	}
	if err := engine.SetConfig(&GameConfig{}); err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestBetween(t *testing.T) {
	tests := []struct {
		from, to Position
		expected []Position
	}{
		{pos(7, 0), pos(4, 0), []Position{pos(6, 0), pos(5, 0)}},
		{pos(7, 2), pos(5, 0), []Position{pos(6, 1)}},
		{pos(0, 0), pos(0, 1), nil},
		{pos(0, 0), pos(2, 1), nil},
		{pos(3, 3), pos(3, 3), nil},
	}

	for _, test := range tests {
		if got := Between(test.from, test.to); !reflect.DeepEqual(got, test.expected) {
			t.Errorf("Between(%v, %v): expected %v, got %v", test.from, test.to, test.expected, got)
		}
	}
}
