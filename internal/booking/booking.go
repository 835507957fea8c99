// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

/*
Package booking implements the property-booking flow of the Rentora client:
the rental agreement gate, renter identity collection with a government ID
document, and the platform-charge payment step.
*/
package booking

import (
	"math"

	"github.com/rentora/rentora/internal/platform/constants"
	"github.com/rentora/rentora/internal/wizard"
)

// # Attachment Roles

const (
	// RoleDocumentImage is the part name for the renter's ID document scan.
	RoleDocumentImage = "renterDocumentImage"

	// RolePaymentProof is the part name for the platform-charge payment
	// screenshot.
	RolePaymentProof = "paymentProofImage"
)

// DocumentTypes are the accepted government ID documents.
var DocumentTypes = []string{"Aadhar", "PAN", "Passport", "Driving License"}

// Booking mirrors one confirmed booking as the API returns it.
type Booking struct {
	ID                   string `json:"_id"`
	PropertyID           string `json:"propertyId"`
	RenterName           string `json:"renterName"`
	RenterEmail          string `json:"renterEmail"`
	RenterPhone          string `json:"renterPhone"`
	RenterDocumentType   string `json:"renterDocumentType"`
	RenterDocumentNumber string `json:"renterDocumentNumber"`
	AdditionalDetails    string `json:"additionalDetails"`
	Status               string `json:"status"`
}

// PlatformCharge is the amount due before a booking is accepted, a fixed
// fraction of the monthly rent.
func PlatformCharge(price float64) float64 {
	return math.Round(price*constants.PlatformChargeRate*100) / 100
}

/*
SubmissionSchema describes the 3-step booking flow for one listing.

Description: The rental agreement must be accepted before any renter data is
collected; the agreement field itself never leaves the client. The renter
step captures identity plus the ID document scan, and the final step requires
the platform-charge payment screenshot.
*/
func SubmissionSchema(propertyID string) wizard.Schema {
	return wizard.Schema{
		Name: "book-property",
		Steps: []wizard.Step{
			{
				Title: "Rental Agreement",
				Fields: []wizard.FieldRule{
					{
						Name: "agreementAccepted", Label: "Rental agreement",
						Kind: wizard.KindChoice, Required: true,
						Choices: []string{"true"}, Local: true,
					},
				},
			},
			{
				Title: "Renter Details",
				Fields: []wizard.FieldRule{
					{Name: "renterName", Label: "Full name", Kind: wizard.KindText, Required: true, MaxLen: 100},
					{Name: "renterEmail", Label: "Email", Kind: wizard.KindEmail, Required: true},
					{Name: "renterPhone", Label: "Phone", Kind: wizard.KindPhone, Required: true},
					{Name: "renterDocumentType", Label: "Document type", Kind: wizard.KindChoice, Required: true, Choices: DocumentTypes},
					{Name: "renterDocumentNumber", Label: "Document number", Kind: wizard.KindText, Required: true, MaxLen: 40},
					{Name: "additionalDetails", Label: "Additional details", Kind: wizard.KindText, MaxLen: 1000},
				},
				RequireAttachments: []string{RoleDocumentImage},
			},
			{
				Title:              "Platform Charge Payment",
				RequireAttachments: []string{RolePaymentProof},
			},
		},
		AttachmentCaps: map[string]int{
			RoleDocumentImage: 1,
			RolePaymentProof:  1,
		},
		Constants: map[string]string{
			"propertyId": propertyID,
		},
	}
}
