package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/secondnest/api/responses"
	"github.com/angelmondragon/secondnest/internal/catalog"
	"github.com/angelmondragon/secondnest/internal/favorites"
	"github.com/angelmondragon/secondnest/internal/state"
	"github.com/angelmondragon/secondnest/pkg/logger"
	"github.com/angelmondragon/secondnest/pkg/metrics"
)

type favoritesResponse struct {
	IDs      []string          `json:"ids"`
	Listings []listingResponse `json:"listings"`
}

type toggleFavoriteResponse struct {
	ListingID string `json:"listingId"`
	Favorited bool   `json:"favorited"`
}

// FavoritesList returns the saved ids together with the listings still in the catalog.
func FavoritesList(catalogStore catalog.Store, stateStore state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		store, err := sessionState(ctx, stateStore)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		favs := favorites.New(store)

		ids, err := favs.Snapshot(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, stateError(err, "favorites.snapshot"))
			return
		}
		listings := make([]catalog.Listing, 0, len(ids))
		if catalogStore != nil {
			listings, err = favs.Listings(ctx, catalogStore)
			if err != nil {
				responses.WriteError(ctx, logg, w, stateError(err, "favorites.listings"))
				return
			}
		}

		responses.WriteSuccess(w, favoritesResponse{IDs: ids, Listings: newListingResponses(listings)})
	}
}

// FavoritesToggle flips the favorite flag for a listing.
func FavoritesToggle(catalogStore catalog.Store, stateStore state.Store, m *metrics.Storefront, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := strings.TrimSpace(chi.URLParam(r, "listingID"))
		if _, ok := lookupListing(catalogStore, id); !ok {
			responses.WriteError(ctx, logg, w, listingNotFound(id))
			return
		}

		store, err := sessionState(ctx, stateStore)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		favorited, err := favorites.New(store).Toggle(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, stateError(err, "favorites.toggle"))
			return
		}
		m.IncFavoriteToggle(favorited)
		responses.WriteSuccess(w, toggleFavoriteResponse{ListingID: id, Favorited: favorited})
	}
}
