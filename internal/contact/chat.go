// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

package contact

import (
	"context"
	"net/http"

	"github.com/rentora/rentora/internal/platform/constants"
	"github.com/rentora/rentora/internal/platform/validate"
)

// # Chat Types

// ChatMessage is one message inside a negotiation chat.
type ChatMessage struct {
	SenderID string `json:"senderId"`
	Message  string `json:"message"`
	SentAt   string `json:"timestamp,omitempty"`
}

// PurchaseDetails is the negotiated purchase offer attached to a chat. The
// offer is settled once IsConfirmed is set.
type PurchaseDetails struct {
	FinalPrice        string `json:"finalPrice,omitempty"`
	MoveInDate        string `json:"moveInDate,omitempty"`
	SecurityDeposit   string `json:"securityDeposit,omitempty"`
	AgreementDuration string `json:"agreementDuration,omitempty"`
	SpecialTerms      string `json:"specialTerms,omitempty"`
	IsConfirmed       bool   `json:"isConfirmed,omitempty"`
}

// Chat is one booking's negotiation thread.
type Chat struct {
	ID              string          `json:"_id"`
	BookingID       string          `json:"bookingId"`
	Messages        []ChatMessage   `json:"messages"`
	PurchaseDetails PurchaseDetails `json:"purchaseDetails"`
}

// # Chat Operations

/*
OpenChat opens (or resumes) the negotiation chat for a booking.
*/
func (service *Service) OpenChat(ctx context.Context, bookingID string) (*Chat, error) {
	token, err := service.tokens.GetValidToken(ctx)
	if err != nil {
		return nil, err
	}

	var chat Chat
	payload := map[string]string{"bookingId": bookingID}
	if err := service.gateway.DoJSON(ctx, http.MethodPost, constants.PathChat, token, payload, &chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

/*
SendChatMessage appends one message to a chat and returns the updated thread.
*/
func (service *Service) SendChatMessage(ctx context.Context, chatID, senderID, text string) (*Chat, error) {
	if err := (&validate.Validator{}).
		Required("message", text).
		MaxLen("message", text, 2000).
		Err(); err != nil {
		return nil, err
	}

	token, err := service.tokens.GetValidToken(ctx)
	if err != nil {
		return nil, err
	}

	var chat Chat
	payload := ChatMessage{SenderID: senderID, Message: text}
	path := constants.PathChat + "/" + chatID + "/message"
	if err := service.gateway.DoJSON(ctx, http.MethodPost, path, token, payload, &chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

/*
ProposePurchase replaces the chat's purchase offer.
*/
func (service *Service) ProposePurchase(ctx context.Context, chatID string, details PurchaseDetails) (*Chat, error) {
	return service.putPurchase(ctx, chatID, details)
}

/*
ConfirmPurchase accepts the standing purchase offer as-is.
*/
func (service *Service) ConfirmPurchase(ctx context.Context, chatID string, details PurchaseDetails) (*Chat, error) {
	details.IsConfirmed = true
	return service.putPurchase(ctx, chatID, details)
}

func (service *Service) putPurchase(ctx context.Context, chatID string, details PurchaseDetails) (*Chat, error) {
	token, err := service.tokens.GetValidToken(ctx)
	if err != nil {
		return nil, err
	}

	var chat Chat
	payload := map[string]PurchaseDetails{"purchaseDetails": details}
	path := constants.PathChat + "/" + chatID + "/purchase"
	if err := service.gateway.DoJSON(ctx, http.MethodPut, path, token, payload, &chat); err != nil {
		return nil, err
	}
	return &chat, nil
}
