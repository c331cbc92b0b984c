// Package service provides the business logic layer for the local chess server.
//
// The service package implements:
//   - Multi-session game management
//   - Configuration management and loading
//   - Move processing by square name ("e2" to "e4")
//   - Session lifecycle management
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages game configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. Each session owns its own engine and board. A service-wide
// RWMutex orders session operations, and each engine serializes its own
// legality check and board mutation.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	sessionInfo, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Move(ctx, sessionInfo.ID, service.MoveRequest{From: "e2", To: "e4"})
//
// An illegal move is reported as a MoveResult with Success false and a
// reason code. Errors are reserved for unknown sessions and unparsable
// squares.
package service
