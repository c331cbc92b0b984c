// Package session provides session management for the local chess server.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session persistence to JSON files or a sqlite database
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each session owns an independent engine and board. SessionPersistence is
// implemented by FilePersistence (one JSON file per session) and
// SQLitePersistence (one row per session in a "sessions" table).
//
// Session Identifiers:
//
// Generated IDs are 4 hex characters from crypto/rand. Lookups ignore case.
// Caller-chosen IDs may use letters, digits, dashes and underscores.
//
// Usage:
//
//	persistence, err := session.NewSQLitePersistence("sessions.db", configManager)
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager := session.NewManagerWithPersistence(persistence)
//
//	sess, err := manager.Create("", config)
//	sess, err = manager.Get(sess.ID)
//	err = manager.Save(sess.ID)
//
// Cleanup:
//
// CleanupExpiredSessions drops idle sessions from memory; their stored copy
// reloads on the next Get. SyncWithStorage drops sessions whose stored copy
// was removed from outside the server.
package session
