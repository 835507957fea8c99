// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

package booking_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentora/rentora/internal/booking"
	"github.com/rentora/rentora/internal/platform/constants"
	"github.com/rentora/rentora/internal/platform/gateway"
	"github.com/rentora/rentora/internal/wizard"
)

var testLog = slog.New(slog.NewTextHandler(discard{}, &slog.HandlerOptions{Level: slog.LevelError}))

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

type staticTokens struct {
	token string
}

func (s staticTokens) GetValidToken(ctx context.Context) (string, error) { return s.token, nil }
func (s staticTokens) Refresh(ctx context.Context) (string, error)       { return s.token, nil }

func newTestService(t *testing.T, baseURL string) *booking.Service {
	t.Helper()
	client, err := gateway.New(gateway.Options{
		BaseURL:           baseURL,
		RequestsPerSecond: 100,
		Logger:            testLog,
	})
	require.NoError(t, err)
	return booking.NewService(client, staticTokens{token: "access-token"}, testLog)
}

func TestPlatformCharge(t *testing.T) {
	assert.Equal(t, 4500.0, booking.PlatformCharge(15000))
	assert.Equal(t, 2999.7, booking.PlatformCharge(9999))
	assert.Equal(t, 0.0, booking.PlatformCharge(0))
}

/*
TestWizard_AgreementGate blocks the flow until the rental agreement is
accepted.
*/
func TestWizard_AgreementGate(t *testing.T) {
	service := newTestService(t, "http://unused.invalid")
	w := service.NewWizard("p-1")

	err := w.Next()
	require.Error(t, err)
	assert.Equal(t, 1, w.CurrentStep())

	require.NoError(t, w.SetField("agreementAccepted", "true"))
	require.NoError(t, w.Next())
	assert.Equal(t, 2, w.CurrentStep())
}

// fillBooking drives the flow to the final step with valid input.
func fillBooking(t *testing.T, w *wizard.Wizard) {
	t.Helper()

	require.NoError(t, w.SetField("agreementAccepted", "true"))
	require.NoError(t, w.Next())

	require.NoError(t, w.SetField("renterName", "Ravi Kumar"))
	require.NoError(t, w.SetField("renterEmail", "ravi@example.com"))
	require.NoError(t, w.SetField("renterPhone", "+91 98765 43210"))
	require.NoError(t, w.SetField("renterDocumentType", "Passport"))
	require.NoError(t, w.SetField("renterDocumentNumber", "P1234567"))
	require.NoError(t, w.Attach(booking.RoleDocumentImage, wizard.Attachment{
		Role: booking.RoleDocumentImage, Filename: "passport.jpg",
		ContentType: "image/jpeg", Data: []byte("scan-bytes"),
	}))
	require.NoError(t, w.Next())

	require.NoError(t, w.Attach(booking.RolePaymentProof, wizard.Attachment{
		Role: booking.RolePaymentProof, Filename: "payment.png",
		ContentType: "image/png", Data: []byte("png-bytes"),
	}))
}

/*
TestWizard_DocumentValidation rejects an unknown document type and a missing
document scan.
*/
func TestWizard_DocumentValidation(t *testing.T) {
	service := newTestService(t, "http://unused.invalid")
	w := service.NewWizard("p-1")

	require.NoError(t, w.SetField("agreementAccepted", "true"))
	require.NoError(t, w.Next())

	require.NoError(t, w.SetField("renterName", "Ravi Kumar"))
	require.NoError(t, w.SetField("renterEmail", "ravi@example.com"))
	require.NoError(t, w.SetField("renterPhone", "+91 98765 43210"))
	require.NoError(t, w.SetField("renterDocumentType", "Library Card"))
	require.NoError(t, w.SetField("renterDocumentNumber", "L-1"))

	err := w.Next()
	require.Error(t, err)
	assert.Equal(t, 2, w.CurrentStep())

	require.NoError(t, w.SetField("renterDocumentType", "Passport"))
	err = w.Next()
	require.Error(t, err, "document scan still missing")

	require.NoError(t, w.Attach(booking.RoleDocumentImage, wizard.Attachment{
		Role: booking.RoleDocumentImage, Filename: "passport.jpg", Data: []byte("scan"),
	}))
	require.NoError(t, w.Next())
	assert.Equal(t, 3, w.CurrentStep())
}

/*
TestService_Submit runs the whole booking flow against a fake marketplace and
checks the multipart payload, including that the agreement flag stays local.
*/
func TestService_Submit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, constants.PathBooking, r.URL.Path)
		assert.Equal(t, "Bearer access-token", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Ravi Kumar", r.FormValue("renterName"))
		assert.Equal(t, "Passport", r.FormValue("renterDocumentType"))
		assert.Equal(t, "p-1", r.FormValue("propertyId"))
		assert.Empty(t, r.FormValue("agreementAccepted"))

		_, scan, err := r.FormFile(booking.RoleDocumentImage)
		require.NoError(t, err)
		assert.Equal(t, "passport.jpg", scan.Filename)
		_, proof, err := r.FormFile(booking.RolePaymentProof)
		require.NoError(t, err)
		assert.Equal(t, "payment.png", proof.Filename)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(booking.Booking{
			ID: "b-1", PropertyID: "p-1", RenterName: "Ravi Kumar", Status: "pending",
		})
	}))
	defer server.Close()

	service := newTestService(t, server.URL)
	w := service.NewWizard("p-1")
	fillBooking(t, w)

	confirmed, err := service.Submit(context.Background(), w)
	require.NoError(t, err)
	assert.Equal(t, "b-1", confirmed.ID)
	assert.Equal(t, wizard.StatusSucceeded, w.Status())
}

/*
TestService_SubmitRejected surfaces the marketplace message verbatim and
keeps the draft for another attempt.
*/
func TestService_SubmitRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "Property already booked"})
	}))
	defer server.Close()

	service := newTestService(t, server.URL)
	w := service.NewWizard("p-1")
	fillBooking(t, w)

	_, err := service.Submit(context.Background(), w)
	require.Error(t, err)
	assert.Equal(t, wizard.StatusFailed, w.Status())
	assert.Equal(t, "Property already booked", w.LastError())
	assert.Equal(t, "Ravi Kumar", w.Field("renterName"))
}
