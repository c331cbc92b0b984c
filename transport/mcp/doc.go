// Package mcp exposes the chess server to AI agents over the Model Context
// Protocol.
//
// The Client is a thin proxy: every tool call becomes a request to the REST
// API and the JSON response is read with gjson and rendered as text.
//
// MCP Tools:
//   - create_session: Create a new session, optionally with a config_id
//   - list_sessions: List active sessions
//   - get_session: Session details and board
//   - board_state: Diagram, FEN, move count and last move
//   - move: Attempt a move given from and to squares ("e2", "e4")
//   - reset_game: Restore the starting position
//   - piece_at: Describe the occupant of a square
//   - legal_moves: Destinations open to the piece on a square
//   - list_configs: Available configurations
//   - game_instructions: Movement rules and reason codes
//
// Transport Modes:
//   - Stdio: the stdio-mcp command serves GetMCPServer() on stdin/stdout
//   - HTTP: the server command mounts it on POST /mcp
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
