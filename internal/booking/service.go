// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

package booking

import (
	"context"
	"log/slog"

	"github.com/rentora/rentora/internal/platform/constants"
	"github.com/rentora/rentora/internal/wizard"
)

// Service orchestrates booking submission.
type Service struct {
	poster wizard.Poster
	tokens wizard.TokenSource
	log    *slog.Logger
}

// NewService constructs a booking [Service].
func NewService(poster wizard.Poster, tokens wizard.TokenSource, log *slog.Logger) *Service {
	return &Service{poster: poster, tokens: tokens, log: log}
}

// NewWizard starts a fresh booking flow for one listing at step 1.
func (service *Service) NewWizard(propertyID string) *wizard.Wizard {
	return wizard.New(SubmissionSchema(propertyID), service.log)
}

/*
Submit executes the booking wizard's final submission.

Description: Delegates the state machine, payload serialization, and the
single authentication retry to the wizard controller.

Returns:
  - *Booking: The booking as the marketplace confirmed it
  - error: The classified failure recorded on the wizard
*/
func (service *Service) Submit(ctx context.Context, w *wizard.Wizard) (*Booking, error) {
	var confirmed Booking
	if err := w.Submit(ctx, service.tokens, service.poster, constants.PathBooking, &confirmed); err != nil {
		return nil, err
	}
	return &confirmed, nil
}
