// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

package listing

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/rentora/rentora/internal/platform/apperr"
	"github.com/rentora/rentora/internal/platform/constants"
	"github.com/rentora/rentora/internal/wizard"
)

// # Contracts & Types

// Gateway is the slice of the request gateway the listing service needs.
type Gateway interface {
	DoJSON(ctx context.Context, method, path, token string, body, out interface{}) error
	DoMultipart(ctx context.Context, method, path, token, contentType string, body io.Reader, out interface{}) error
}

// Service orchestrates catalog reads and listing submission.
type Service struct {
	gateway Gateway
	tokens  wizard.TokenSource
	cache   *Cache
	log     *slog.Logger
}

// NewService constructs a listing [Service]. The cache may be nil, which
// disables offline browsing but changes nothing else.
func NewService(gw Gateway, tokens wizard.TokenSource, cache *Cache, log *slog.Logger) *Service {
	return &Service{gateway: gw, tokens: tokens, cache: cache, log: log}
}

// NewWizard starts a fresh add-property flow at step 1.
func (service *Service) NewWizard() *wizard.Wizard {
	return wizard.New(SubmissionSchema(), service.log)
}

// # Catalog

/*
List fetches every public listing.

Description: Anonymous read. On success the local cache is replaced so the
catalog stays browsable offline; when the marketplace is unreachable the
cached listings are served instead.

Returns:
  - []Property: Listings (possibly from cache)
  - bool: fromCache, true when the result came from the offline cache
  - error: Classified failure when neither source can serve
*/
func (service *Service) List(ctx context.Context) ([]Property, bool, error) {
	var fetched []Property
	err := service.gateway.DoJSON(ctx, http.MethodGet, constants.PathProperties, "", nil, &fetched)
	if err == nil {
		if service.cache != nil {
			if cacheErr := service.cache.ReplaceAll(ctx, fetched); cacheErr != nil {
				service.log.Warn("listing_cache_refresh_failed", slog.Any("error", cacheErr))
			}
		}
		return fetched, false, nil
	}

	// Offline fallback only makes sense for transport failures.
	if service.cache != nil && apperr.IsCode(err, apperr.CodeUnreachable) {
		cached, cacheErr := service.cache.All(ctx)
		if cacheErr == nil && len(cached) > 0 {
			service.log.Info("listing_served_from_cache", slog.Int("count", len(cached)))
			return cached, true, nil
		}
	}
	return nil, false, err
}

/*
Get resolves one listing by ID or cached slug handle.

Description: Tries the cache first so slug handles work offline, then falls
back to the live catalog.
*/
func (service *Service) Get(ctx context.Context, ref string) (*Property, error) {
	if service.cache != nil {
		if cached, err := service.cache.ByRef(ctx, ref); err == nil && cached != nil {
			return cached, nil
		}
	}

	listings, _, err := service.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range listings {
		if listings[i].ID == ref {
			return &listings[i], nil
		}
	}
	return nil, apperr.NotFound("Property")
}

/*
OwnerListings fetches the authenticated owner's listings.
*/
func (service *Service) OwnerListings(ctx context.Context, ownerID string) ([]Property, error) {
	token, err := service.tokens.GetValidToken(ctx)
	if err != nil {
		return nil, err
	}

	var fetched []Property
	if err := service.gateway.DoJSON(ctx, http.MethodGet, constants.PathOwnerProperties+ownerID, token, nil, &fetched); err != nil {
		return nil, err
	}
	return fetched, nil
}

// # Submission

/*
Submit executes the add-property wizard's final submission.

Description: Delegates the state machine, payload serialization, and the
single authentication retry to the wizard controller; on success the created
listing is appended to the local cache (optimistic catalog update).

Returns:
  - *Property: The listing as the marketplace created it
  - error: The classified failure recorded on the wizard
*/
func (service *Service) Submit(ctx context.Context, w *wizard.Wizard) (*Property, error) {
	var created Property
	if err := w.Submit(ctx, service.tokens, service.gateway, constants.PathProperties, &created); err != nil {
		return nil, err
	}

	if service.cache != nil && created.ID != "" {
		if err := service.cache.Upsert(ctx, created); err != nil {
			service.log.Warn("listing_cache_upsert_failed", slog.Any("error", err))
		}
	}
	return &created, nil
}

/*
RequestRentalAgreement asks the marketplace to issue a rental agreement for a
listing.
*/
func (service *Service) RequestRentalAgreement(ctx context.Context, propertyID string) error {
	token, err := service.tokens.GetValidToken(ctx)
	if err != nil {
		return err
	}

	payload := map[string]string{"propertyId": propertyID}
	return service.gateway.DoJSON(ctx, http.MethodPost, constants.PathRentalAgreement, token, payload, nil)
}
