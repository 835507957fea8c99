// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentora/rentora/internal/platform/apperr"
	"github.com/rentora/rentora/internal/platform/gateway"
)

func newClient(t *testing.T, baseURL string) *gateway.Client {
	t.Helper()
	client, err := gateway.New(gateway.Options{BaseURL: baseURL})
	require.NoError(t, err)
	return client
}

/*
TestDoJSON_Success verifies marshaling, headers, and response decoding.
*/
func TestDoJSON_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "hello", in["message"])

		json.NewEncoder(w).Encode(map[string]string{"echo": in["message"]})
	}))
	defer server.Close()

	client := newClient(t, server.URL)

	var out map[string]string
	err := client.DoJSON(context.Background(), http.MethodPost, "/api/contact", "token-123",
		map[string]string{"message": "hello"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "hello", out["echo"])
}

/*
TestDoJSON_AnonymousOmitsBearer ensures no Authorization header leaks on
unauthenticated calls.
*/
func TestDoJSON_AnonymousOmitsBearer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newClient(t, server.URL)
	err := client.DoJSON(context.Background(), http.MethodGet, "/api/properties", "", nil, nil)
	require.NoError(t, err)
}

/*
TestClassification maps upstream statuses onto the client error taxonomy.
*/
func TestClassification(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantCode   string
		wantRegexp string
	}{
		{"unauthorized", http.StatusUnauthorized, `{}`, apperr.CodeUnauthorized, "log in"},
		{"rejected_with_message", http.StatusBadRequest, `{"message":"Price must be positive"}`, apperr.CodeValidationRejected, "Price must be positive"},
		{"rejected_without_message", http.StatusUnprocessableEntity, `not-json`, apperr.CodeValidationRejected, "status 422"},
		{"server_error", http.StatusBadGateway, ``, apperr.CodeServerError, "try again later"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newClient(t, server.URL)
			err := client.DoJSON(context.Background(), http.MethodPost, "/api/properties", "t", nil, nil)

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantCode, ae.Code)
			assert.Contains(t, ae.Message, tt.wantRegexp)
			assert.Equal(t, tt.status, ae.UpstreamStatus)
		})
	}
}

/*
TestUnreachable classifies transport-level failures.
*/
func TestUnreachable(t *testing.T) {
	// Grab a port that refuses connections.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newClient(t, server.URL)
	err := client.DoJSON(context.Background(), http.MethodGet, "/api/properties", "", nil, nil)

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeUnreachable))
}

/*
TestDoJSON_MalformedSuccessBody treats an undecodable 2xx body as a server
error rather than a crash.
*/
func TestDoJSON_MalformedSuccessBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>definitely not json</html>"))
	}))
	defer server.Close()

	client := newClient(t, server.URL)

	var out map[string]string
	err := client.DoJSON(context.Background(), http.MethodGet, "/api/properties", "", nil, &out)

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeServerError))
}

/*
TestDoMultipart_PassesContentType verifies the multipart boundary header
reaches the server intact.
*/
func TestDoMultipart_PassesContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data; boundary="))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := newClient(t, server.URL)
	err := client.DoMultipart(context.Background(), http.MethodPost, "/api/bookings/booking", "t",
		"multipart/form-data; boundary=xyz", strings.NewReader("--xyz--"), nil)

	require.NoError(t, err)
}

/*
TestCookiePersistence ensures the refresh cookie set by one call is presented
on the next.
*/
func TestCookiePersistence(t *testing.T) {
	var sawCookie bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			http.SetCookie(w, &http.Cookie{Name: "refresh", Value: "cookie-1", Path: "/"})
			w.WriteHeader(http.StatusOK)
		case "/api/auth/refresh":
			if c, err := r.Cookie("refresh"); err == nil && c.Value == "cookie-1" {
				sawCookie = true
			}
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer server.Close()

	client := newClient(t, server.URL)
	require.NoError(t, client.DoJSON(context.Background(), http.MethodPost, "/api/auth/login", "", nil, nil))
	require.NoError(t, client.DoJSON(context.Background(), http.MethodPost, "/api/auth/refresh", "", nil, nil))

	assert.True(t, sawCookie)
}
