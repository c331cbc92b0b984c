// Package websocket pushes live board updates to browsers and other watchers.
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection has a read pump and a write
// pump goroutine; the hub's Run loop owns the client registry.
//
// Message Protocol:
//
// Clients connect to /ws?session=<id> and only receive. Every outgoing
// message is a JSON object:
//
//	{
//	  "id": "2f1c...",            // unique per message
//	  "session_id": "ab12",
//	  "event": "state_update",
//	  "game_state": { ... },      // board, moves, message, fen, diagram
//	  "timestamp": "..."
//	}
//
// Custom events sent with BroadcastEvent carry "data" instead of
// "game_state".
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	defer hub.Stop()
//
//	hub.ServeWS(w, r, sessionID)
//	hub.BroadcastToSession(sessionID, state)
package websocket
