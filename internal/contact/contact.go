// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

/*
Package contact implements the support contact form and the negotiation chat
attached to a booking.
*/
package contact

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/rentora/rentora/internal/platform/constants"
	"github.com/rentora/rentora/internal/platform/validate"
)

// # Contracts & Types

// Gateway is the slice of the request gateway the contact service needs.
type Gateway interface {
	DoJSON(ctx context.Context, method, path, token string, body, out interface{}) error
}

// TokenSource yields a valid access token for authenticated calls.
type TokenSource interface {
	GetValidToken(ctx context.Context) (string, error)
}

// Message is one support inquiry.
type Message struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Service sends support inquiries and drives booking chats.
type Service struct {
	gateway Gateway
	tokens  TokenSource
	log     *slog.Logger
}

// NewService constructs a contact [Service].
func NewService(gw Gateway, tokens TokenSource, log *slog.Logger) *Service {
	return &Service{gateway: gw, tokens: tokens, log: log}
}

/*
Send validates and submits one support inquiry.

Description: Anonymous endpoint; phone and subject are optional.
*/
func (service *Service) Send(ctx context.Context, message Message) error {
	v := (&validate.Validator{}).
		Required("name", message.Name).
		MaxLen("name", message.Name, 100).
		Required("email", message.Email).
		Email("email", message.Email).
		Required("message", message.Message).
		MaxLen("message", message.Message, 2000)
	if message.Phone != "" {
		v.Phone("phone", message.Phone)
	}
	if err := v.Err(); err != nil {
		return err
	}

	if err := service.gateway.DoJSON(ctx, http.MethodPost, constants.PathContact, "", message, nil); err != nil {
		return err
	}
	service.log.Info("contact_message_sent", slog.String("email", message.Email))
	return nil
}
