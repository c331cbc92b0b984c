package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/wricardo/mcp-training/localchess/game/engine"
)

func createTestConfig() *engine.GameConfig {
	config := &engine.GameConfig{
		Name:        "Test Config",
		Description: "Test configuration",
		GlyphSet:    engine.GlyphsLetters,
	}
	config.Messages.Welcome = "Welcome!"
	config.Messages.Moved = "Moved."
	config.Messages.Rejected = "Illegal move."
	return config
}

func TestManager_Create(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	t.Run("create with custom ID", func(t *testing.T) {
		session, err := manager.Create("test-session", config)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if session.ID != "test-session" {
			t.Errorf("Expected session ID 'test-session', got '%s'", session.ID)
		}
		if session.Engine == nil {
			t.Error("Expected engine to be initialized")
		}
	})

	t.Run("create with auto-generated ID", func(t *testing.T) {
		session, err := manager.Create("", config)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if len(session.ID) != 4 {
			t.Errorf("Expected 4-character session ID, got %q", session.ID)
		}
	})

	t.Run("duplicate session ID", func(t *testing.T) {
		_, err := manager.Create("test-session", config)
		if err != ErrSessionAlreadyExists {
			t.Errorf("Expected ErrSessionAlreadyExists, got %v", err)
		}
	})

	t.Run("case-insensitive duplicate check", func(t *testing.T) {
		_, err := manager.Create("TEST-SESSION", config)
		if err != ErrSessionAlreadyExists {
			t.Errorf("Expected ErrSessionAlreadyExists for case variant, got %v", err)
		}
	})

	t.Run("invalid ID", func(t *testing.T) {
		for _, id := range []string{"../etc", "a b", "slash/id"} {
			if _, err := manager.Create(id, config); !errors.Is(err, ErrInvalidSessionID) {
				t.Errorf("Create(%q): expected ErrInvalidSessionID, got %v", id, err)
			}
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		invalidConfig := createTestConfig()
		invalidConfig.Name = ""
		if _, err := manager.Create("invalid-test", invalidConfig); err == nil {
			t.Error("Expected error for invalid config")
		}
	})
}

func TestManager_SessionsAreIndependent(t *testing.T) {
	manager := NewManager()
	a, _ := manager.Create("aaaa", createTestConfig())
	b, _ := manager.Create("bbbb", createTestConfig())

	from := engine.Position{Row: 6, Col: 4}
	to := engine.Position{Row: 4, Col: 4}
	if !a.Engine.TryMove(from, to, a.Engine.PieceAt(6, 4)) {
		t.Fatal("Expected move to succeed")
	}

	if b.Engine.PieceAt(6, 4) == nil {
		t.Error("Expected the other session's board to be untouched")
	}
	if b.Engine.MoveCount() != 0 {
		t.Errorf("Expected 0 moves in other session, got %d", b.Engine.MoveCount())
	}
}

func TestManager_Get(t *testing.T) {
	manager := NewManager()
	created, _ := manager.Create("get-test", createTestConfig())

	t.Run("get existing session", func(t *testing.T) {
		session, err := manager.Get("get-test")
		if err != nil {
			t.Fatalf("Failed to get session: %v", err)
		}
		if session != created {
			t.Error("Expected the same session instance")
		}
	})

	t.Run("case-insensitive get", func(t *testing.T) {
		session, err := manager.Get("GET-TEST")
		if err != nil {
			t.Fatalf("Failed to get session with different case: %v", err)
		}
		if session != created {
			t.Error("Expected the same session instance")
		}
	})

	t.Run("get non-existent session", func(t *testing.T) {
		if _, err := manager.Get("nope"); err != ErrSessionNotFound {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})
}

func TestManager_GetOrCreate(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	first, err := manager.GetOrCreate("goc", config)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	second, err := manager.GetOrCreate("goc", config)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if first != second {
		t.Error("Expected GetOrCreate to return the existing session")
	}
	if manager.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", manager.Count())
	}
}

func TestManager_List(t *testing.T) {
	manager := NewManager()
	for _, id := range []string{"one", "two", "three"} {
		manager.Create(id, createTestConfig())
		time.Sleep(time.Millisecond)
	}

	sessions := manager.List()
	if len(sessions) != 3 {
		t.Fatalf("Expected 3 sessions, got %d", len(sessions))
	}
	if sessions[0].ID != "one" || sessions[2].ID != "three" {
		t.Errorf("Expected sessions in creation order, got %s,%s,%s", sessions[0].ID, sessions[1].ID, sessions[2].ID)
	}
}

func TestManager_Delete(t *testing.T) {
	manager := NewManager()
	manager.Create("del", createTestConfig())

	if err := manager.Delete("DEL"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := manager.Get("del"); err != ErrSessionNotFound {
		t.Errorf("Expected deleted session to be gone, got %v", err)
	}
	if err := manager.Delete("del"); err != ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound deleting twice, got %v", err)
	}
	if err := manager.DeleteFromMemory("del"); err != ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_UpdateLastAccessed(t *testing.T) {
	manager := NewManager()
	session, _ := manager.Create("touch", createTestConfig())
	before := session.LastAccessedAt

	time.Sleep(5 * time.Millisecond)
	if err := manager.UpdateLastAccessed("touch"); err != nil {
		t.Fatalf("UpdateLastAccessed: %v", err)
	}
	if !session.LastAccessedAt.After(before) {
		t.Error("Expected last accessed time to advance")
	}
	if err := manager.UpdateLastAccessed("missing"); err != ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_Touch(t *testing.T) {
	manager := NewManager()
	session, _ := manager.Create("touch", createTestConfig())
	before := session.LastAccessedAt

	time.Sleep(5 * time.Millisecond)
	touched, err := manager.Touch("TOUCH")
	if err != nil {
		t.Fatalf("Touch: %v", err)
	}
	if touched == session {
		t.Error("Expected a copy, got the managed session")
	}
	if touched.Engine != session.Engine {
		t.Error("Expected the copy to share the live engine")
	}
	if !touched.LastAccessedAt.After(before) {
		t.Error("Expected last accessed time to advance")
	}
	if _, err := manager.Touch("missing"); err != ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_ConcurrentTouchAndList(t *testing.T) {
	manager := NewManager()
	manager.Create("busy", createTestConfig())

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			if s, err := manager.Touch("busy"); err == nil {
				_ = s.LastAccessedAt
			}
		}()
		go func() {
			defer wg.Done()
			for _, s := range manager.List() {
				_ = s.LastAccessedAt
			}
		}()
		go func() {
			defer wg.Done()
			manager.CleanupExpiredSessions(time.Hour)
		}()
	}
	wg.Wait()

	if manager.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", manager.Count())
	}
}

func TestManager_CleanupExpiredSessions(t *testing.T) {
	manager := NewManager()
	old, _ := manager.Create("old", createTestConfig())
	manager.Create("new", createTestConfig())

	old.LastAccessedAt = time.Now().Add(-2 * time.Hour)

	removed := manager.CleanupExpiredSessions(time.Hour)
	if removed != 1 {
		t.Errorf("Expected 1 removed session, got %d", removed)
	}
	if _, err := manager.Get("old"); err != ErrSessionNotFound {
		t.Error("Expected expired session to be removed")
	}
	if _, err := manager.Get("new"); err != nil {
		t.Error("Expected fresh session to remain")
	}
}

func TestManager_SaveWithoutPersistence(t *testing.T) {
	manager := NewManager()
	manager.Create("mem", createTestConfig())

	if err := manager.Save("mem"); err != nil {
		t.Errorf("Expected Save to be a no-op without persistence, got %v", err)
	}
	if err := manager.SaveAllSessions(); err != nil {
		t.Errorf("Expected SaveAllSessions to be a no-op, got %v", err)
	}
	if err := manager.LoadPersistedSessions(); err != nil {
		t.Errorf("Expected LoadPersistedSessions to be a no-op, got %v", err)
	}
	if manager.SyncWithStorage() != 0 {
		t.Error("Expected SyncWithStorage to prune nothing")
	}
}

func TestManager_ConcurrentCreate(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	const workers = 50
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := manager.Create("", config); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Unexpected error: %v", err)
	}
	if manager.Count() != workers {
		t.Errorf("Expected %d unique sessions, got %d", workers, manager.Count())
	}
}
