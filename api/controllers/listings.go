package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/secondnest/api/responses"
	"github.com/angelmondragon/secondnest/api/validators"
	"github.com/angelmondragon/secondnest/internal/catalog"
	"github.com/angelmondragon/secondnest/internal/search"
	"github.com/angelmondragon/secondnest/pkg/enums"
	pkgerrors "github.com/angelmondragon/secondnest/pkg/errors"
	"github.com/angelmondragon/secondnest/pkg/logger"
	"github.com/angelmondragon/secondnest/pkg/metrics"
	"github.com/angelmondragon/secondnest/pkg/pagination"
)

const (
	maxQueryLength  = 200
	maxFilterLength = 100
)

type listingResponse struct {
	catalog.Listing
	DiscountPercent *int `json:"discountPercent,omitempty"`
}

func newListingResponse(l catalog.Listing) listingResponse {
	resp := listingResponse{Listing: l}
	if pct, ok := search.DiscountPercent(l); ok {
		resp.DiscountPercent = &pct
	}
	return resp
}

func newListingResponses(listings []catalog.Listing) []listingResponse {
	out := make([]listingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, newListingResponse(l))
	}
	return out
}

// ListingsSearch filters, sorts and pages the catalog.
func ListingsSearch(store catalog.Store, m *metrics.Storefront, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		filters, err := parseFilters(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 1_000_000)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		query := validators.SanitizeString(r.URL.Query().Get("q"), maxQueryLength)
		start := time.Now()
		results := search.Search(store, query, filters)

		sortLabel := ""
		if filters.SortBy != nil {
			sortLabel = filters.SortBy.String()
		}
		m.ObserveSearch(sortLabel, len(results), time.Since(start))

		items, page := pagination.Slice(results, pagination.Params{Limit: limit, Offset: offset})
		responses.WritePage(w, newListingResponses(items), page)
	}
}

// ListingDetail returns a single listing by id.
func ListingDetail(store catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := strings.TrimSpace(chi.URLParam(r, "listingID"))
		listing, ok := lookupListing(store, id)
		if !ok {
			responses.WriteError(ctx, logg, w, listingNotFound(id))
			return
		}
		responses.WriteSuccess(w, newListingResponse(listing))
	}
}

func parseFilters(r *http.Request) (search.Filters, error) {
	var filters search.Filters

	filters.Category = validators.OptionalQueryString(r, "category", maxFilterLength)
	filters.Location = validators.OptionalQueryString(r, "location", maxFilterLength)

	// Unknown conditions are passed through and simply match nothing.
	if raw := validators.OptionalQueryString(r, "condition", maxFilterLength); raw != nil {
		condition := enums.ListingCondition(*raw)
		filters.Condition = &condition
	}

	minPrice, err := validators.ParseQueryFloat(r, "min_price")
	if err != nil {
		return filters, err
	}
	maxPrice, err := validators.ParseQueryFloat(r, "max_price")
	if err != nil {
		return filters, err
	}
	filters.MinPrice, filters.MaxPrice = minPrice, maxPrice

	if raw := strings.TrimSpace(r.URL.Query().Get("sort")); raw != "" {
		sortBy, err := search.ParseSort(raw)
		if err != nil {
			return filters, err
		}
		filters.SortBy = sortBy
	}
	return filters, nil
}

func lookupListing(store catalog.Store, id string) (catalog.Listing, bool) {
	if store == nil || id == "" {
		return catalog.Listing{}, false
	}
	return store.Get(id)
}

func listingNotFound(id string) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "listing not found").
		WithDetails(map[string]any{"listing_id": id})
}
