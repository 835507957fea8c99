// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

// Package constants centralizes client-wide literals so the CLI, the session
// manager, and the wizard flows agree on API paths and marketplace policy
// values.
package constants

// # API Paths

const (
	// PathLogin is the credential exchange endpoint.
	PathLogin = "/api/auth/login"

	// PathRegister is the account creation endpoint.
	PathRegister = "/api/auth/register"

	// PathRefresh is the token refresh endpoint. It authenticates via the
	// ambient refresh cookie, never via the (possibly expired) bearer token.
	PathRefresh = "/api/auth/refresh"

	// PathProperties serves listing search and multipart listing submission.
	PathProperties = "/api/properties"

	// PathOwnerProperties is the per-owner listing collection. Append the
	// owner ID.
	PathOwnerProperties = "/api/properties/owner/"

	// PathRentalAgreement requests a purchase of the rental agreement.
	PathRentalAgreement = "/api/properties/rental-agreement"

	// PathBooking accepts the multipart booking submission.
	PathBooking = "/api/bookings/booking"

	// PathContact accepts support/contact messages.
	PathContact = "/api/contact"

	// PathChat opens a negotiation chat for a booking.
	PathChat = "/api/chat"
)

// # Marketplace Policy

const (
	// SecurityDepositRate is the fraction of the monthly rent charged as the
	// security deposit when the owner does not override the amount.
	SecurityDepositRate = 0.30

	// PlatformChargeRate is the fraction of the listing price collected as
	// the booking platform charge.
	PlatformChargeRate = 0.30

	// MaxGalleryImages caps the number of photos attached to one listing.
	MaxGalleryImages = 10
)
