// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileStore implements [Store] on a single JSON file under the client data
// directory.
//
// # Wire Shape
//
// The file mirrors the {user, token} keys the marketplace web client keeps in
// localStorage, so the two clients stay interchangeable against the same API.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a [FileStore] persisting to the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// envelope is the on-disk session record.
type envelope struct {
	User struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		UserType Role   `json:"userType"`
	} `json:"user"`
	Token string `json:"token"`
}

/*
Load restores the persisted session from disk.

Returns:
  - *Session: nil when no session file exists
  - error: Read or decode failures
*/
func (store *FileStore) Load() (*Session, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	raw, err := os.ReadFile(store.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session_store_read_failed: %w", err)
	}

	var record envelope
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("session_store_decode_failed: %w", err)
	}

	return &Session{
		UserID:      record.User.ID,
		Name:        record.User.Name,
		Email:       record.User.Email,
		Role:        record.User.UserType,
		AccessToken: record.Token,
	}, nil
}

/*
Save persists the session, creating the data directory on first use.

The file is written 0600: it holds a live bearer token.
*/
func (store *FileStore) Save(session *Session) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	var record envelope
	record.User.ID = session.UserID
	record.User.Name = session.Name
	record.User.Email = session.Email
	record.User.UserType = session.Role
	record.Token = session.AccessToken

	raw, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("session_store_encode_failed: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(store.path), 0o700); err != nil {
		return fmt.Errorf("session_store_mkdir_failed: %w", err)
	}
	if err := os.WriteFile(store.path, raw, 0o600); err != nil {
		return fmt.Errorf("session_store_write_failed: %w", err)
	}
	return nil
}

// Clear removes the persisted session. Idempotent.
func (store *FileStore) Clear() error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if err := os.Remove(store.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session_store_clear_failed: %w", err)
	}
	return nil
}
