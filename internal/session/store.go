// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

package session

// # Persistence Contract

// Store is the durable local storage behind the session manager. It survives
// process restarts, is read once at startup, written on login/refresh, and
// cleared on logout.
type Store interface {
	// Load restores the persisted session. It returns (nil, nil) when no
	// session has been persisted.
	Load() (*Session, error)

	// Save persists the session, replacing any previous record.
	Save(session *Session) error

	// Clear removes the persisted session. Clearing an empty store is not an
	// error.
	Clear() error
}
