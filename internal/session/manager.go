// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rentora/rentora/internal/platform/apperr"
	"github.com/rentora/rentora/internal/platform/constants"
	"github.com/rentora/rentora/internal/platform/validate"
)

// # Contracts & Types

// Gateway is the slice of the request gateway the session manager needs.
type Gateway interface {
	DoJSON(ctx context.Context, method, path, token string, body, out interface{}) error
}

// RegistrationFailure classifies why a registration attempt did not succeed.
type RegistrationFailure string

const (
	// FailureNone marks a successful registration.
	FailureNone RegistrationFailure = ""

	// FailureValidation is a 4xx rejection carrying the server's message.
	FailureValidation RegistrationFailure = "validation"

	// FailureServer is any non-4xx, non-2xx response.
	FailureServer RegistrationFailure = "server"

	// FailureNetwork means no response was received at all.
	FailureNetwork RegistrationFailure = "network"
)

// RegistrationResult is the discriminated outcome of a registration attempt.
// Registration never creates a Session; a subsequent login is required.
type RegistrationResult struct {
	Success bool
	Message string
	Failure RegistrationFailure
}

// Manager owns the single live [Session] of the process.
//
// # Concurrency
//
// Manager is safe for concurrent use. Overlapping token refreshes are
// collapsed into one upstream call via singleflight, so independent
// operations hitting an expired token trigger exactly one network request.
type Manager struct {
	gateway Gateway
	store   Store
	log     *slog.Logger
	now     func() time.Time

	mu      sync.RWMutex
	session *Session

	refreshGroup singleflight.Group
}

// NewManager constructs a [Manager] and restores any persisted session.
//
// A corrupt or unreadable session file is logged and treated as "logged out"
// rather than failing startup.
func NewManager(gw Gateway, store Store, log *slog.Logger) *Manager {
	manager := &Manager{
		gateway: gw,
		store:   store,
		log:     log,
		now:     time.Now,
	}

	restored, err := store.Load()
	if err != nil {
		log.Warn("session_restore_failed", slog.Any("error", err))
		return manager
	}
	if restored != nil {
		manager.session = restored
		log.Debug("session_restored", slog.String("user_id", restored.UserID))
	}
	return manager
}

// # Identity

// Current returns a read-only copy of the live session, or nil when logged
// out. Callers must not cache the AccessToken; fetch it via [Manager.GetValidToken]
// immediately before use instead.
func (m *Manager) Current() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.session == nil {
		return nil
	}
	snapshot := *m.session
	return &snapshot
}

// IsAuthenticated reports whether a session is live.
func (m *Manager) IsAuthenticated() bool {
	return m.Current() != nil
}

// # Authentication Flow

// loginResponse mirrors the auth endpoint's success body.
type loginResponse struct {
	Token string `json:"token"`
	User  struct {
		ID       string `json:"_id"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		UserType Role   `json:"userType"`
	} `json:"user"`
}

/*
Login exchanges credentials for a [Session].

Description: Sends credentials to the auth endpoint; on success constructs the
Session, persists it to durable storage, and makes it the live session.

Parameters:
  - ctx: context.Context
  - email: Account email
  - password: Account password

Returns:
  - *Session: The established session
  - error: INVALID_CREDENTIALS on rejection, UNREACHABLE on transport failure,
    SERVER_ERROR otherwise, never an unstructured fault
*/
func (m *Manager) Login(ctx context.Context, email, password string) (*Session, error) {

	// Cheap local validation before any network round trip.
	if err := (&validate.Validator{}).
		Required("email", email).
		Email("email", email).
		Required("password", password).
		Err(); err != nil {
		return nil, err
	}

	payload := map[string]string{"email": email, "password": password}
	var response loginResponse
	err := m.gateway.DoJSON(ctx, http.MethodPost, constants.PathLogin, "", payload, &response)
	if err != nil {
		// Any upstream rejection of the credentials reads as "invalid login";
		// transport and 5xx failures keep their own classification.
		if apperr.IsCode(err, apperr.CodeUnauthorized) || apperr.IsCode(err, apperr.CodeValidationRejected) {
			return nil, apperr.InvalidCredentials()
		}
		return nil, err
	}

	// A 2xx without a token is an upstream defect.
	if response.Token == "" {
		appError := apperr.Server(http.StatusOK)
		appError.Cause = errors.New("login response missing token")
		return nil, appError
	}

	established := &Session{
		UserID:      response.User.ID,
		Name:        response.User.Name,
		Email:       response.User.Email,
		Role:        response.User.UserType,
		AccessToken: response.Token,
	}

	m.mu.Lock()
	m.session = established
	m.mu.Unlock()

	// Persistence failure must not undo a successful login; the session just
	// won't survive a restart.
	if err := m.store.Save(established); err != nil {
		m.log.Warn("session_persist_failed", slog.Any("error", err))
	}

	m.log.Info("session_established", slog.String("user_id", established.UserID))

	snapshot := *established
	return &snapshot, nil
}

/*
Register creates a marketplace account.

Description: Pure request/response pass-through to the registration endpoint.
No Session is created; the caller must log in afterwards.

Parameters:
  - ctx: context.Context
  - name, email, password: Account fields
  - role: Seeker or Owner

Returns:
  - RegistrationResult: Discriminated success/failure, never an error value
*/
func (m *Manager) Register(ctx context.Context, name, email, password string, role Role) RegistrationResult {

	if err := (&validate.Validator{}).
		Required("name", name).
		Required("email", email).
		Email("email", email).
		MinLen("password", password, 6).
		OneOf("userType", string(role), string(RoleSeeker), string(RoleOwner)).
		Err(); err != nil {
		return RegistrationResult{Success: false, Message: err.Error(), Failure: FailureValidation}
	}

	payload := map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
		"userType": string(role),
	}

	var response struct {
		Message string `json:"message"`
	}
	err := m.gateway.DoJSON(ctx, http.MethodPost, constants.PathRegister, "", payload, &response)
	if err == nil {
		message := response.Message
		if message == "" {
			message = "Registration successful"
		}
		return RegistrationResult{Success: true, Message: message}
	}

	appError := apperr.As(err)
	switch {
	case appError != nil && appError.Code == apperr.CodeUnreachable:
		return RegistrationResult{
			Success: false,
			Message: "Cannot connect to the Rentora service. Please check your connection.",
			Failure: FailureNetwork,
		}
	case appError != nil && (appError.Code == apperr.CodeValidationRejected || appError.Code == apperr.CodeUnauthorized):
		return RegistrationResult{Success: false, Message: appError.Message, Failure: FailureValidation}
	default:
		return RegistrationResult{
			Success: false,
			Message: "Registration failed. Please try again later.",
			Failure: FailureServer,
		}
	}
}

// # Token Lifecycle

/*
GetValidToken returns an access token that is unexpired at time of return.

Description: Decodes the held token's exp claim; when expired or undecodable
it refreshes first and only then returns. The token is never silently used
past expiry.

Returns:
  - string: A currently valid token, or "" when none can be obtained
  - error: UNAUTHORIZED when the session is gone or the refresh failed
*/
func (m *Manager) GetValidToken(ctx context.Context) (string, error) {
	m.mu.RLock()
	live := m.session
	var current string
	if live != nil {
		current = live.AccessToken
	}
	m.mu.RUnlock()

	if live == nil {
		return "", apperr.Unauthorized("You must be logged in")
	}

	if !tokenExpired(current, m.now()) {
		return current, nil
	}

	refreshed, err := m.Refresh(ctx)
	if err != nil {
		return "", err
	}
	return refreshed, nil
}

/*
Refresh replaces the session's access token via the refresh endpoint.

Description: Authenticates with the ambient refresh cookie held by the
gateway's cookie jar, never with the expired bearer token. Overlapping calls
are collapsed into a single upstream request; every caller receives the same
result. On failure the session is left unchanged.

Returns:
  - string: The fresh token
  - error: UNAUTHORIZED when no session exists or the upstream refused
*/
func (m *Manager) Refresh(ctx context.Context) (string, error) {
	token, err, _ := m.refreshGroup.Do("refresh", func() (interface{}, error) {
		m.mu.RLock()
		live := m.session
		m.mu.RUnlock()
		if live == nil {
			return "", apperr.Unauthorized("You must be logged in")
		}

		var response struct {
			Token string `json:"token"`
		}
		if err := m.gateway.DoJSON(ctx, http.MethodPost, constants.PathRefresh, "", nil, &response); err != nil {
			m.log.Debug("session_refresh_failed", slog.Any("error", err))
			return "", apperr.Unauthorized("Session expired. Please log in again.")
		}
		if response.Token == "" {
			return "", apperr.Unauthorized("Session expired. Please log in again.")
		}

		m.mu.Lock()
		if m.session != nil {
			m.session.AccessToken = response.Token
		}
		snapshot := m.session
		var copied *Session
		if snapshot != nil {
			c := *snapshot
			copied = &c
		}
		m.mu.Unlock()

		if copied != nil {
			if err := m.store.Save(copied); err != nil {
				m.log.Warn("session_persist_failed", slog.Any("error", err))
			}
		}

		m.log.Debug("session_refreshed")
		return response.Token, nil
	})
	if err != nil {
		return "", err
	}
	return token.(string), nil
}

// Logout clears the in-memory session and durable storage. Idempotent.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.session = nil
	m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		m.log.Warn("session_clear_failed", slog.Any("error", err))
	}
	m.log.Info("session_ended")
}
