// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

package contact_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentora/rentora/internal/contact"
	"github.com/rentora/rentora/internal/platform/apperr"
	"github.com/rentora/rentora/internal/platform/constants"
	"github.com/rentora/rentora/internal/platform/gateway"
)

var testLog = slog.New(slog.NewTextHandler(discard{}, &slog.HandlerOptions{Level: slog.LevelError}))

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

type staticTokens struct {
	token string
}

func (s staticTokens) GetValidToken(ctx context.Context) (string, error) { return s.token, nil }

func newTestService(t *testing.T, baseURL string) *contact.Service {
	t.Helper()
	client, err := gateway.New(gateway.Options{
		BaseURL:           baseURL,
		RequestsPerSecond: 100,
		Logger:            testLog,
	})
	require.NoError(t, err)
	return contact.NewService(client, staticTokens{token: "access-token"}, testLog)
}

func validMessage() contact.Message {
	return contact.Message{
		Name:    "Asha",
		Email:   "asha@example.com",
		Subject: "Viewing request",
		Message: "Is the apartment available next week?",
	}
}

/*
TestService_Send posts the inquiry anonymously as JSON.
*/
func TestService_Send(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, constants.PathContact, r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Asha", body["name"])
		assert.Equal(t, "Is the apartment available next week?", body["message"])
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	service := newTestService(t, server.URL)
	require.NoError(t, service.Send(context.Background(), validMessage()))
}

/*
TestService_SendValidation rejects incomplete inquiries locally.
*/
func TestService_SendValidation(t *testing.T) {
	service := newTestService(t, "http://unused.invalid")

	tests := []struct {
		name   string
		mutate func(*contact.Message)
	}{
		{name: "missing name", mutate: func(m *contact.Message) { m.Name = "" }},
		{name: "bad email", mutate: func(m *contact.Message) { m.Email = "not-an-email" }},
		{name: "missing message", mutate: func(m *contact.Message) { m.Message = " " }},
		{name: "bad phone", mutate: func(m *contact.Message) { m.Phone = "abc" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			message := validMessage()
			tt.mutate(&message)
			err := service.Send(context.Background(), message)
			require.Error(t, err)
			assert.True(t, apperr.IsCode(err, apperr.CodeValidationError))
		})
	}
}

/*
TestService_ChatFlow opens a chat, sends a message, and settles the purchase
offer against a fake marketplace.
*/
func TestService_ChatFlow(t *testing.T) {
	chat := contact.Chat{ID: "c-1", BookingID: "b-1"}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access-token", r.Header.Get("Authorization"))

		switch {
		case r.Method == http.MethodPost && r.URL.Path == constants.PathChat:
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "b-1", body["bookingId"])
			json.NewEncoder(w).Encode(chat)

		case r.Method == http.MethodPost && r.URL.Path == constants.PathChat+"/c-1/message":
			var body contact.ChatMessage
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "u-1", body.SenderID)
			updated := chat
			updated.Messages = []contact.ChatMessage{body}
			json.NewEncoder(w).Encode(updated)

		case r.Method == http.MethodPut && r.URL.Path == constants.PathChat+"/c-1/purchase":
			var body map[string]contact.PurchaseDetails
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			updated := chat
			updated.PurchaseDetails = body["purchaseDetails"]
			json.NewEncoder(w).Encode(updated)

		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	service := newTestService(t, server.URL)
	ctx := context.Background()

	opened, err := service.OpenChat(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, "c-1", opened.ID)

	withMessage, err := service.SendChatMessage(ctx, "c-1", "u-1", "Can you do 14000?")
	require.NoError(t, err)
	require.Len(t, withMessage.Messages, 1)
	assert.Equal(t, "Can you do 14000?", withMessage.Messages[0].Message)

	offer := contact.PurchaseDetails{FinalPrice: "14000", MoveInDate: "2026-10-01"}
	proposed, err := service.ProposePurchase(ctx, "c-1", offer)
	require.NoError(t, err)
	assert.False(t, proposed.PurchaseDetails.IsConfirmed)

	settled, err := service.ConfirmPurchase(ctx, "c-1", proposed.PurchaseDetails)
	require.NoError(t, err)
	assert.True(t, settled.PurchaseDetails.IsConfirmed)
	assert.Equal(t, "14000", settled.PurchaseDetails.FinalPrice)
}

/*
TestService_SendChatMessageEmpty rejects blank messages without a network
call.
*/
func TestService_SendChatMessageEmpty(t *testing.T) {
	service := newTestService(t, "http://unused.invalid")

	_, err := service.SendChatMessage(context.Background(), "c-1", "u-1", "   ")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeValidationError))
}
