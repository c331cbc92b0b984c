package session

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/wricardo/mcp-training/localchess/game/service"
)

const createSessionsTable = `CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	config_name TEXT NOT NULL,
	created_at TEXT NOT NULL,
	last_accessed_at TEXT NOT NULL,
	game_state TEXT NOT NULL
);`

// SQLitePersistence implements SessionPersistence with a single sqlite table
type SQLitePersistence struct {
	db       *sql.DB
	resolver configResolver
}

// NewSQLitePersistence opens (or creates) the database at path and ensures
// the sessions table exists
func NewSQLitePersistence(path string, configManager service.ConfigManager) (*SQLitePersistence, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}
	// sqlite allows one writer; a single connection keeps writes ordered
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createSessionsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create sessions table: %w", err)
	}

	return &SQLitePersistence{
		db:       db,
		resolver: configResolver{configs: configManager},
	}, nil
}

// Save upserts the session row
func (sp *SQLitePersistence) Save(session *service.Session) error {
	data, err := sp.resolver.record(session)
	if err != nil {
		return err
	}

	state, err := json.Marshal(data.GameState)
	if err != nil {
		return fmt.Errorf("failed to marshal game state: %w", err)
	}

	_, err = sp.db.Exec(`INSERT INTO sessions
		(id, config_name, created_at, last_accessed_at, game_state)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			config_name = excluded.config_name,
			last_accessed_at = excluded.last_accessed_at,
			game_state = excluded.game_state;`,
		normalizeID(data.ID),
		data.ConfigName,
		data.CreatedAt.UTC().Format(time.RFC3339Nano),
		data.LastAccessedAt.UTC().Format(time.RFC3339Nano),
		string(state))
	if err != nil {
		return fmt.Errorf("failed to save session %s: %w", data.ID, err)
	}
	return nil
}

// Load reads one session row and rebuilds the session
func (sp *SQLitePersistence) Load(id string) (*service.Session, error) {
	var (
		data                PersistedSessionData
		createdAt, accessed string
		state               string
	)

	err := sp.db.QueryRow(`SELECT id, config_name, created_at, last_accessed_at, game_state
		FROM sessions WHERE id = ?;`, normalizeID(id)).
		Scan(&data.ID, &data.ConfigName, &createdAt, &accessed, &state)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}

	if data.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("invalid created_at for session %s: %w", id, err)
	}
	if data.LastAccessedAt, err = time.Parse(time.RFC3339Nano, accessed); err != nil {
		return nil, fmt.Errorf("invalid last_accessed_at for session %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(state), &data.GameState); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game state: %w", err)
	}

	return sp.resolver.restore(&data)
}

// Delete removes the session row
func (sp *SQLitePersistence) Delete(id string) error {
	res, err := sp.db.Exec(`DELETE FROM sessions WHERE id = ?;`, normalizeID(id))
	if err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// ListAll returns every stored session ID
func (sp *SQLitePersistence) ListAll() ([]string, error) {
	rows, err := sp.db.Query(`SELECT id FROM sessions ORDER BY created_at;`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan session id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Exists reports whether a row with the ID exists
func (sp *SQLitePersistence) Exists(id string) bool {
	var one int
	err := sp.db.QueryRow(`SELECT 1 FROM sessions WHERE id = ?;`, normalizeID(id)).Scan(&one)
	return err == nil
}

// Close closes the database
func (sp *SQLitePersistence) Close() error {
	return sp.db.Close()
}
