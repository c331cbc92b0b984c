// Package api provides the HTTP REST API for the local chess server.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session ({"config_id": "classic"})
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Board, move count, FEN and diagram
//   - POST /api/sessions/{id}/move - Attempt a move ({"from":"e2","to":"e4","reset":false})
//   - POST /api/sessions/{id}/reset - Restore the starting position
//   - GET /api/sessions/{id}/pieces/{square} - Occupant of one square
//   - GET /api/sessions/{id}/legal/{square} - Destinations open to a piece
//   - GET /api/sessions/{id}/fen - FEN record of the board
//
// Configuration:
//   - GET /api/configs - List available configurations
//   - POST /api/configs - Save a configuration
//   - GET /api/configs/{name} - Get one configuration
//
// Other:
//   - GET /api/health - Liveness probe
//   - GET /ws?session={id} - WebSocket upgrade for live board updates
//
// A move that breaks the rules is not an HTTP error. The response is 200
// with "success": false and a machine readable "reason" such as
// "path_blocked" or "friendly_destination"; the board is unchanged.
//
// Errors are returned as JSON with an HTTP status code:
//
//	{
//	  "error": "session not found: ...",
//	  "code": 404
//	}
//
// Unknown sessions, configs and empty squares answer 404. Malformed squares
// and invalid configurations answer 400.
package api
