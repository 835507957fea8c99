// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

/*
Package session implements the authenticated-session and token-lifecycle
manager for the Rentora client.

It owns the single source of truth for "am I logged in, and with what
credential", persists identity across process restarts, detects access-token
expiry, and collapses concurrent refreshes into one upstream call.

Architecture:

  - Manager: Orchestrates login, registration, refresh, and logout against the
    marketplace auth endpoints.
  - Store: Abstracted durable local storage (JSON file on disk), the desktop
    analogue of the browser's localStorage {user, token} keys.
  - Claims: Unverified JWT expiry decoding; the client trusts the server's
    signature checks and only needs the exp timestamp.

The Session is mutated exclusively by this package; every other component
holds a read-only copy and must fetch the current valid token immediately
before use.
*/
package session

// Role identifies the two marketplace account types.
type Role string

const (
	// RoleSeeker is a renter browsing and booking listings.
	RoleSeeker Role = "Property Seeker"

	// RoleOwner is a landlord publishing listings.
	RoleOwner Role = "Property Owner"
)

// Valid reports whether the role is one of the two marketplace account types.
func (r Role) Valid() bool {
	return r == RoleSeeker || r == RoleOwner
}

// Session is the in-memory record of the current authenticated user.
//
// At most one Session is live per process. The AccessToken is either valid and
// unexpired, or the Manager is actively refreshing it; callers never see a
// token silently used past expiry.
type Session struct {
	UserID      string
	Name        string
	Email       string
	Role        Role
	AccessToken string
}
