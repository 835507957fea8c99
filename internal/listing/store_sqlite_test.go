// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

package listing_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentora/rentora/internal/listing"
)

func openTestCache(t *testing.T) *listing.Cache {
	t.Helper()
	cache, err := listing.OpenCache(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func sampleListings() []listing.Property {
	return []listing.Property{
		{
			ID: "p-1", Type: "Apartment", Title: "Sea View Apartment",
			Location: "Goa", Price: 15000, Bedrooms: 2, Bathrooms: 1,
			Area: 900, AreaUnit: "sqft", Furnished: "Furnished",
			Amenities: []string{"WiFi", "Balcony"}, OwnerName: "Asha",
		},
		{
			ID: "p-2", Type: "Studio", Title: "City Centre Studio",
			Location: "Pune", Price: 9000, Amenities: []string{},
		},
	}
}

/*
TestCache_ReplaceAllAndAll round-trips a fetched catalog through the cache.
*/
func TestCache_ReplaceAllAndAll(t *testing.T) {
	cache := openTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.ReplaceAll(ctx, sampleListings()))

	cached, err := cache.All(ctx)
	require.NoError(t, err)
	require.Len(t, cached, 2)

	// Ordered by title.
	assert.Equal(t, "City Centre Studio", cached[0].Title)
	assert.Equal(t, "Sea View Apartment", cached[1].Title)
	assert.Equal(t, []string{"WiFi", "Balcony"}, cached[1].Amenities)

	// A second replace drops rows that disappeared upstream.
	require.NoError(t, cache.ReplaceAll(ctx, sampleListings()[:1]))
	cached, err = cache.All(ctx)
	require.NoError(t, err)
	assert.Len(t, cached, 1)
}

/*
TestCache_ByRef resolves listings by ID and by slug handle.
*/
func TestCache_ByRef(t *testing.T) {
	cache := openTestCache(t)
	ctx := context.Background()
	require.NoError(t, cache.ReplaceAll(ctx, sampleListings()))

	byID, err := cache.ByRef(ctx, "p-1")
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "Sea View Apartment", byID.Title)

	bySlug, err := cache.ByRef(ctx, "sea-view-apartment")
	require.NoError(t, err)
	require.NotNil(t, bySlug)
	assert.Equal(t, "p-1", bySlug.ID)

	miss, err := cache.ByRef(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, miss)
}

/*
TestCache_Upsert refreshes an existing row in place.
*/
func TestCache_Upsert(t *testing.T) {
	cache := openTestCache(t)
	ctx := context.Background()
	require.NoError(t, cache.ReplaceAll(ctx, sampleListings()))

	updated := sampleListings()[0]
	updated.Price = 16000
	require.NoError(t, cache.Upsert(ctx, updated))

	cached, err := cache.ByRef(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, float64(16000), cached.Price)

	all, err := cache.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

/*
TestCache_Slug exposes the handle used by the CLI.
*/
func TestCache_Slug(t *testing.T) {
	cache := openTestCache(t)
	ctx := context.Background()
	require.NoError(t, cache.ReplaceAll(ctx, sampleListings()))

	assert.Equal(t, "city-centre-studio", cache.Slug(ctx, "p-2"))
	assert.Equal(t, "", cache.Slug(ctx, "missing"))
}
