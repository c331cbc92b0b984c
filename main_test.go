package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"
)

func TestConstants(t *testing.T) {
	if Version != "1.0.0" {
		t.Errorf("Expected version 1.0.0, got %s", Version)
	}
	if AppName != "Local Chess Server" {
		t.Errorf("Expected app name Local Chess Server, got %s", AppName)
	}
}

func testSettings(t *testing.T, store string) settings {
	t.Helper()
	dir := t.TempDir()
	return settings{
		host:        "localhost",
		port:        8080,
		configDir:   "configs",
		store:       store,
		sessionsDir: filepath.Join(dir, "sessions"),
		dbPath:      filepath.Join(dir, "sessions.db"),
	}
}

// runWithCapture runs the root command with its actions replaced by one
// that records the resolved settings
func runWithCapture(t *testing.T, args ...string) (settings, string, error) {
	t.Helper()
	app := newApp()

	var got settings
	var mode string
	capture := func(name string) func(context.Context, *cli.Command) error {
		return func(ctx context.Context, cmd *cli.Command) error {
			got = settingsFrom(cmd)
			mode = name
			return nil
		}
	}
	app.Action = capture("default")
	for _, sub := range app.Commands {
		sub.Action = capture(sub.Name)
	}

	err := app.Run(context.Background(), append([]string{"localchess"}, args...))
	return got, mode, err
}

func TestFlagDefaults(t *testing.T) {
	s, mode, err := runWithCapture(t)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if mode != "default" {
		t.Errorf("Expected default action, got %s", mode)
	}
	if s.port != 8080 || s.host != "localhost" {
		t.Errorf("Unexpected address %s", s.addr())
	}
	if s.configDir != "configs" || s.store != storeFile || s.sessionsDir != "sessions" {
		t.Errorf("Unexpected defaults %+v", s)
	}
	if s.ngrokEnabled {
		t.Error("ngrok should be off by default")
	}
}

func TestSubcommandsAndAliases(t *testing.T) {
	tests := []struct {
		args []string
		mode string
	}{
		{[]string{"server"}, "server"},
		{[]string{"http"}, "server"},
		{[]string{"stdio-mcp"}, "stdio-mcp"},
		{[]string{"mcp-stdio"}, "stdio-mcp"},
		{[]string{"mcp"}, "stdio-mcp"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			_, mode, err := runWithCapture(t, tt.args...)
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			if mode != tt.mode {
				t.Errorf("Expected mode %s, got %s", tt.mode, mode)
			}
		})
	}
}

func TestFlagsAndEnvironment(t *testing.T) {
	t.Setenv("CONFIG_DIR", "/tmp/chess-configs")
	t.Setenv("NGROK_AUTHTOKEN", "token")

	s, _, err := runWithCapture(t, "--port", "9090", "--store", "sqlite", "--db", "x.db", "server")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if s.addr() != "localhost:9090" {
		t.Errorf("addr = %s, want localhost:9090", s.addr())
	}
	if s.store != storeSQLite || s.dbPath != "x.db" {
		t.Errorf("Unexpected store settings %+v", s)
	}
	if s.configDir != "/tmp/chess-configs" {
		t.Errorf("CONFIG_DIR not honored: %s", s.configDir)
	}
	if s.ngrokAuth != "token" {
		t.Errorf("NGROK_AUTHTOKEN not honored: %q", s.ngrokAuth)
	}
}

func TestInvalidStore(t *testing.T) {
	if _, _, err := runWithCapture(t, "--store", "redis"); err == nil {
		t.Error("Expected error for unknown store")
	}
}

func TestInitializeServices(t *testing.T) {
	if _, err := os.Stat("configs"); os.IsNotExist(err) {
		t.Skip("Skipping test - configs directory not found")
	}

	for _, store := range []string{storeFile, storeSQLite} {
		t.Run(store, func(t *testing.T) {
			svcs, err := initializeServices(testSettings(t, store))
			if err != nil {
				t.Fatalf("Failed to initialize services: %v", err)
			}
			defer svcs.Close()

			info, err := svcs.game.CreateSession(context.Background(), "")
			if err != nil {
				t.Fatalf("CreateSession failed: %v", err)
			}
			if !svcs.persistence.Exists(info.ID) {
				t.Error("Created session should be stored")
			}
		})
	}
}

func TestInitializeServices_InvalidConfigDir(t *testing.T) {
	s := testSettings(t, storeFile)
	s.configDir = "/non/existent/path"

	if _, err := initializeServices(s); err == nil {
		t.Error("Expected error for non-existent config directory")
	}
}

func TestRootHandler(t *testing.T) {
	svcs, err := initializeServices(testSettings(t, storeFile))
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	defer svcs.Close()

	handler := newRootHandler(svcs.game, nil, "http://localhost:8080", io.Discard)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("health: expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/mcp", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /mcp: expected 405, got %d", w.Code)
	}

	initialize := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"1.0"}}}`
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("POST", "/mcp", strings.NewReader(initialize)))
	if w.Code != http.StatusOK {
		t.Fatalf("POST /mcp: expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Local Chess") {
		t.Errorf("initialize response missing server name: %s", w.Body.String())
	}

	list := `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("POST", "/mcp", strings.NewReader(list)))
	for _, tool := range []string{"move", "legal_moves", "piece_at", "board_state"} {
		if !strings.Contains(w.Body.String(), `"`+tool+`"`) {
			t.Errorf("tools/list missing %s", tool)
		}
	}
}
