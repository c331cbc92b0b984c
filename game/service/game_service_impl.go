package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wricardo/mcp-training/localchess/game/engine"
	"github.com/wricardo/mcp-training/localchess/game/notation"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "classic"
	}
	return configName
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			availableConfigs, listErr := s.configs.ListConfigs()
			if listErr == nil && len(availableConfigs) > 0 {
				var configIDs []string
				for _, cfg := range availableConfigs {
					configIDs = append(configIDs, cfg.ConfigID)
				}
				return nil, fmt.Errorf("config '%s' not available (%w). Available configs: %v", configName, err, configIDs)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	log.Printf("[SESSION] created session=%s config=%s", session.ID, configID)

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     configID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      enrich(session.Engine.GetState()),
		GameConfig:     session.Config,
	}, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     s.getConfigID(session.Config.Name),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      enrich(session.Engine.GetState()),
		GameConfig:     session.Config,
	}, nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &SessionInfo{
			ID:             sess.ID,
			ConfigName:     s.getConfigID(sess.Config.Name),
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			GameState:      enrich(sess.Engine.GetState()),
			GameConfig:     sess.Config,
		})
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("%w: %v", ErrSessionNotFound, err)
	}
	log.Printf("[SESSION] deleted session=%s", sessionID)
	return nil
}

// Move attempts one move for a session. An illegal move is not an error: it
// comes back with Success false and a reason.
func (s *gameServiceImpl) Move(ctx context.Context, sessionID string, req MoveRequest) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	from, err := parseSquare(req.From)
	if err != nil {
		return nil, err
	}
	to, err := parseSquare(req.To)
	if err != nil {
		return nil, err
	}

	events := []GameEvent{}

	if req.Reset {
		state := sess.Engine.Reset()
		events = append(events, newEvent("reset", state.Message, ""))
	}

	piece := sess.Engine.PieceAt(from.Row, from.Col)
	outcome := sess.Engine.Attempt(from, to, piece)
	state := enrich(sess.Engine.GetState())

	result := &MoveResult{
		Success:   outcome.Applied,
		Reason:    outcome.Reason,
		From:      notation.SquareName(from),
		To:        notation.SquareName(to),
		Piece:     outcome.Piece,
		Captured:  outcome.Captured,
		GameState: state,
		Message:   state.Message,
		Events:    events,
	}

	status := "OK"
	if outcome.Applied {
		result.Events = append(result.Events, newEvent("move",
			fmt.Sprintf("%s %s->%s", outcome.Piece, result.From, result.To), result.To))
		if outcome.Captured != nil {
			result.Events = append(result.Events, newEvent("capture",
				fmt.Sprintf("%s captured on %s", outcome.Captured, result.To), result.To))
		}
	} else {
		status = "REJECTED:" + string(outcome.Reason)
	}
	log.Printf("[MOVE] session=%s %s->%s status=%s moves=%d", sessionID, result.From, result.To, status, state.Moves)

	if outcome.Applied || req.Reset {
		s.persist(sessionID, "move")
	}

	return result, nil
}

// Reset resets a game session to the starting position
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	state := enrich(sess.Engine.Reset())
	log.Printf("[RESET] session=%s", sessionID)
	s.persist(sessionID, "reset")

	return state, nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	return enrich(sess.Engine.GetState()), nil
}

// GetPiece returns the occupant of a square, with a nil piece for an empty one
func (s *gameServiceImpl) GetPiece(ctx context.Context, sessionID, square string) (*PieceInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	pos, err := parseSquare(square)
	if err != nil {
		return nil, err
	}

	return &PieceInfo{
		Square:   notation.SquareName(pos),
		Position: pos,
		Piece:    sess.Engine.PieceAt(pos.Row, pos.Col).Clone(),
	}, nil
}

// LegalMoves lists every square the piece on square may move to
func (s *gameServiceImpl) LegalMoves(ctx context.Context, sessionID, square string) (*LegalMovesResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	pos, err := parseSquare(square)
	if err != nil {
		return nil, err
	}

	piece := sess.Engine.PieceAt(pos.Row, pos.Col).Clone()
	if piece == nil {
		return nil, fmt.Errorf("%w: %s", ErrEmptySquare, notation.SquareName(pos))
	}

	return &LegalMovesResult{
		Square:  notation.SquareName(pos),
		Piece:   piece,
		Targets: notation.SquareNames(sess.Engine.LegalTargets(pos)),
	}, nil
}

// GetFEN returns the FEN record of the current board
func (s *gameServiceImpl) GetFEN(ctx context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return "", err
	}

	return notation.FEN(sess.Engine.Board()), nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// getSession looks a session up and marks it as accessed
func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	sess, err := s.sessions.Touch(sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionNotFound, err)
	}
	return sess, nil
}

func (s *gameServiceImpl) persist(sessionID, after string) {
	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after %s: %v", sessionID, after, err)
	}
}

func parseSquare(square string) (engine.Position, error) {
	pos, err := notation.ParseSquare(square)
	if err != nil {
		return engine.Position{}, fmt.Errorf("%w: %q", ErrInvalidSquare, square)
	}
	return pos, nil
}

func newEvent(eventType, message, square string) GameEvent {
	return GameEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Message:   message,
		Timestamp: time.Now(),
		Square:    square,
	}
}

// enrich fills the computed FEN and diagram views of a state
func enrich(state *engine.GameState) *engine.GameState {
	if state == nil || state.Board == nil {
		return state
	}
	state.FEN = notation.FEN(state.Board)
	state.Diagram = notation.Diagram(state.Board)
	return state
}

// IsNotFound reports whether err means the session does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound)
}
