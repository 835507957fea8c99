// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

package listing

import (
	"strconv"

	"github.com/rentora/rentora/internal/platform/constants"
	"github.com/rentora/rentora/internal/wizard"
)

// # Attachment Roles

const (
	// RoleGalleryImage is the part name for listing photos.
	RoleGalleryImage = "images"

	// RolePaymentProof is the part name for the security-deposit payment
	// screenshot.
	RolePaymentProof = "qrPaymentScreenshot"
)

/*
SubmissionSchema describes the 4-step add-property flow.

Description: Basics, details, owner contact with the deposit payment proof,
then photos. The security deposit amount defaults to 30% of the monthly rent
at payload-build time unless the owner overrides it.
*/
func SubmissionSchema() wizard.Schema {
	return wizard.Schema{
		Name: "add-property",
		Steps: []wizard.Step{
			{
				Title: "Basic Property Information",
				Fields: []wizard.FieldRule{
					{Name: "type", Label: "Property type", Kind: wizard.KindChoice, Required: true, Choices: PropertyTypes},
					{Name: "title", Label: "Title", Kind: wizard.KindText, Required: true, MaxLen: 120},
					{Name: "description", Label: "Description", Kind: wizard.KindText, Required: true, MaxLen: 2000},
					{Name: "location", Label: "Location", Kind: wizard.KindText, Required: true, MaxLen: 200},
					{Name: "price", Label: "Monthly rent", Kind: wizard.KindInteger, Required: true},
				},
			},
			{
				Title: "Property Details",
				Fields: []wizard.FieldRule{
					{Name: "bedrooms", Label: "Bedrooms", Kind: wizard.KindInteger, Required: true},
					{Name: "bathrooms", Label: "Bathrooms", Kind: wizard.KindInteger, Required: true},
					{Name: "area", Label: "Area", Kind: wizard.KindInteger, Required: true},
					{Name: "areaUnit", Label: "Area unit", Kind: wizard.KindChoice, Required: true, Choices: AreaUnits},
					{Name: "furnished", Label: "Furnishing", Kind: wizard.KindChoice, Required: true, Choices: FurnishedOptions},
					{Name: "roomType", Label: "Room type", Kind: wizard.KindChoice, Choices: RoomTypes},
					{Name: "amenities", Label: "Amenities", Kind: wizard.KindMultiChoice, Choices: AmenityOptions},
					{Name: "propertyAge", Label: "Property age (years)", Kind: wizard.KindInteger},
					{Name: "floorNumber", Label: "Floor", Kind: wizard.KindInteger},
					{Name: "totalFloors", Label: "Total floors", Kind: wizard.KindInteger},
					{Name: "facingDirection", Label: "Facing", Kind: wizard.KindText, MaxLen: 30},
					{Name: "waterSupply", Label: "Water supply", Kind: wizard.KindText, MaxLen: 60},
					{Name: "electricity", Label: "Electricity", Kind: wizard.KindText, MaxLen: 60},
					{Name: "availableFrom", Label: "Available from", Kind: wizard.KindDate},
					{Name: "maintenanceCharges", Label: "Maintenance charges", Kind: wizard.KindCurrency},
				},
			},
			{
				Title: "Owner & Security Deposit",
				Fields: []wizard.FieldRule{
					{Name: "ownerName", Label: "Owner name", Kind: wizard.KindText, Required: true, MaxLen: 100},
					{Name: "ownerPhone", Label: "Owner phone", Kind: wizard.KindPhone, Required: true},
					{Name: "ownerEmail", Label: "Owner email", Kind: wizard.KindEmail, Required: true},
					{Name: "ownerAlternatePhone", Label: "Alternate phone", Kind: wizard.KindPhone},
					{Name: "ownerAddress", Label: "Owner address", Kind: wizard.KindText, MaxLen: 300},
					{Name: "securityDepositAmount", Label: "Security deposit", Kind: wizard.KindCurrency},
				},
				RequireAttachments: []string{RolePaymentProof},
			},
			{
				Title:              "Photos",
				RequireAttachments: []string{RoleGalleryImage},
			},
		},
		AttachmentCaps: map[string]int{
			RoleGalleryImage: constants.MaxGalleryImages,
			RolePaymentProof: 1,
		},
		Derived: []wizard.DerivedRule{
			{Name: "securityDepositAmount", From: "price", Rate: constants.SecurityDepositRate},
		},
		Constants: map[string]string{
			"securityDepositPaid": strconv.FormatBool(true),
		},
	}
}
