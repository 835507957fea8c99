// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

/*
Package listing implements the property-listing domain of the Rentora client:
browsing the marketplace catalog, the multi-step listing-submission wizard,
and a local SQLite cache that keeps the catalog browsable offline.

Architecture:

  - Service: Orchestrates catalog reads and wizard submission against the
    marketplace API.
  - Cache: Local SQLite mirror of fetched listings, keyed by ID with
    human-friendly slug handles for the CLI.
  - Schema: The declarative 4-step submission flow fed to the generic wizard
    controller.
*/
package listing

// Property mirrors one marketplace listing as the API serves it.
type Property struct {
	ID          string   `json:"_id"`
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Price       float64  `json:"price"`
	Bedrooms    int      `json:"bedrooms"`
	Bathrooms   int      `json:"bathrooms"`
	Area        float64  `json:"area"`
	AreaUnit    string   `json:"areaUnit"`
	Furnished   string   `json:"furnished"`
	RoomType    string   `json:"roomType"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
	OwnerName   string   `json:"ownerName"`
}

// # Choice Sets

// PropertyTypes are the listing categories the marketplace accepts.
var PropertyTypes = []string{"Apartment", "House", "Villa", "Studio", "Room"}

// AreaUnits are the accepted floor-area units.
var AreaUnits = []string{"sqft", "sqm"}

// FurnishedOptions describe the furnishing state of a listing.
var FurnishedOptions = []string{"Furnished", "Semi-Furnished", "Unfurnished"}

// RoomTypes describe the occupancy arrangement.
var RoomTypes = []string{"Private Room", "Shared Room", "Entire Place"}

// AmenityOptions are the selectable listing amenities.
var AmenityOptions = []string{
	"WiFi",
	"Parking",
	"Swimming Pool",
	"Gym",
	"Security",
	"Garden",
	"Balcony",
	"Air Conditioning",
	"Heating",
	"Furnished",
	"Pet Friendly",
}
