// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

package listing

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/rentora/rentora/pkg/slug"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Cache is the local SQLite mirror of the marketplace catalog. It keeps the
// CLI browsable when the marketplace is unreachable and gives every listing a
// stable, human-friendly slug handle.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (and migrates) the catalog cache at the given path.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("listing_cache_open_failed: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("listing_cache_ping_failed: %w", err)
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		db.Close()
		return nil, fmt.Errorf("listing_cache_dialect_failed: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("listing_cache_migrate_failed: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (cache *Cache) Close() error { return cache.db.Close() }

const listingCols = `id, slug, type, title, description, location, price,
	bedrooms, bathrooms, area, area_unit, furnished, room_type, amenities, owner_name`

// scanListing hydrates one row into a [Property].
func scanListing(scanner interface{ Scan(...any) error }) (Property, string, error) {
	var property Property
	var handle string
	var amenities string
	err := scanner.Scan(
		&property.ID, &handle, &property.Type, &property.Title, &property.Description,
		&property.Location, &property.Price, &property.Bedrooms, &property.Bathrooms,
		&property.Area, &property.AreaUnit, &property.Furnished, &property.RoomType,
		&amenities, &property.OwnerName,
	)
	if err != nil {
		return Property{}, "", err
	}
	if amenities != "" {
		if err := json.Unmarshal([]byte(amenities), &property.Amenities); err != nil {
			return Property{}, "", fmt.Errorf("listing_cache_amenities_decode_failed: %w", err)
		}
	}
	return property, handle, nil
}

// upsertTx writes one listing inside a transaction.
func upsertTx(ctx context.Context, tx *sql.Tx, property Property, syncedAt time.Time) error {
	amenities, err := json.Marshal(property.Amenities)
	if err != nil {
		return fmt.Errorf("listing_cache_amenities_encode_failed: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO listings (id, slug, type, title, description, location, price,
			bedrooms, bathrooms, area, area_unit, furnished, room_type, amenities,
			owner_name, synced_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			slug = excluded.slug, type = excluded.type, title = excluded.title,
			description = excluded.description, location = excluded.location,
			price = excluded.price, bedrooms = excluded.bedrooms,
			bathrooms = excluded.bathrooms, area = excluded.area,
			area_unit = excluded.area_unit, furnished = excluded.furnished,
			room_type = excluded.room_type, amenities = excluded.amenities,
			owner_name = excluded.owner_name, synced_at = excluded.synced_at`,
		property.ID, slug.From(property.Title), property.Type, property.Title,
		property.Description, property.Location, property.Price, property.Bedrooms,
		property.Bathrooms, property.Area, property.AreaUnit, property.Furnished,
		property.RoomType, string(amenities), property.OwnerName, syncedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("listing_cache_upsert_failed: %w", err)
	}
	return nil
}

/*
ReplaceAll swaps the cached catalog for a freshly fetched one atomically.
*/
func (cache *Cache) ReplaceAll(ctx context.Context, listings []Property) error {
	tx, err := cache.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("listing_cache_tx_failed: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM listings`); err != nil {
		return fmt.Errorf("listing_cache_clear_failed: %w", err)
	}

	now := time.Now()
	for _, property := range listings {
		if err := upsertTx(ctx, tx, property, now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Upsert writes or refreshes a single listing (optimistic update after a
// successful submission).
func (cache *Cache) Upsert(ctx context.Context, property Property) error {
	tx, err := cache.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("listing_cache_tx_failed: %w", err)
	}
	defer tx.Rollback()

	if err := upsertTx(ctx, tx, property, time.Now()); err != nil {
		return err
	}
	return tx.Commit()
}

// All returns every cached listing ordered by title.
func (cache *Cache) All(ctx context.Context) ([]Property, error) {
	rows, err := cache.db.QueryContext(ctx, `SELECT `+listingCols+` FROM listings ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("listing_cache_query_failed: %w", err)
	}
	defer rows.Close()

	var listings []Property
	for rows.Next() {
		property, _, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, property)
	}
	return listings, rows.Err()
}

// ByRef resolves one cached listing by ID or slug handle. It returns
// (nil, nil) on a miss.
func (cache *Cache) ByRef(ctx context.Context, ref string) (*Property, error) {
	row := cache.db.QueryRowContext(ctx,
		`SELECT `+listingCols+` FROM listings WHERE id = ? OR slug = ? LIMIT 1`, ref, ref)

	property, _, err := scanListing(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing_cache_lookup_failed: %w", err)
	}
	return &property, nil
}

// Slug returns the cached slug handle for a listing ID, or "".
func (cache *Cache) Slug(ctx context.Context, id string) string {
	row := cache.db.QueryRowContext(ctx, `SELECT slug FROM listings WHERE id = ?`, id)
	var handle string
	if err := row.Scan(&handle); err != nil {
		return ""
	}
	return handle
}
