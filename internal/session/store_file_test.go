// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestFileStore_RoundTrip persists a session and restores it byte-for-byte.
*/
func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)

	original := &Session{
		UserID:      "u-42",
		Name:        "Asha Verma",
		Email:       "asha@example.com",
		Role:        RoleOwner,
		AccessToken: "tok-1",
	}
	require.NoError(t, store.Save(original))

	restored, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, original, restored)

	// The file carries a live bearer token: owner-only access.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

/*
TestFileStore_LoadMissing returns (nil, nil) when nothing was persisted.
*/
func TestFileStore_LoadMissing(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))

	restored, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, restored)
}

/*
TestFileStore_LoadCorrupt surfaces a decode error instead of a partial session.
*/
func TestFileStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))

	store := NewFileStore(path)
	restored, err := store.Load()
	assert.Error(t, err)
	assert.Nil(t, restored)
}

/*
TestFileStore_ClearIdempotent clears twice without error.
*/
func TestFileStore_ClearIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(&Session{UserID: "u-1", AccessToken: "t"}))
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())

	restored, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, restored)
}
