package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/secondnest/internal/state"
)

func TestFavoritesToggleAndList(t *testing.T) {
	catalogStore := seedCatalog(t)
	stateStore := state.NewMemoryStore()
	toggle := FavoritesToggle(catalogStore, stateStore, nil, nil)

	var toggled toggleFavoriteResponse
	for _, id := range []string{"5", "2"} {
		resp := httptest.NewRecorder()
		toggle.ServeHTTP(resp, newRequest(http.MethodPost, "/api/v1/favorites/"+id+"/toggle", "", map[string]string{"listingID": id}))
		require.Equal(t, http.StatusOK, resp.Code)
		decodeData(t, resp, &toggled)
		assert.True(t, toggled.Favorited)
	}

	resp := httptest.NewRecorder()
	FavoritesList(catalogStore, stateStore, nil).ServeHTTP(resp, newRequest(http.MethodGet, "/api/v1/favorites", "", nil))
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		IDs      []string `json:"ids"`
		Listings []struct {
			ID string `json:"id"`
		} `json:"listings"`
	}
	decodeData(t, resp, &body)
	assert.Equal(t, []string{"5", "2"}, body.IDs)
	require.Len(t, body.Listings, 2)
	assert.Equal(t, "5", body.Listings[0].ID)

	resp = httptest.NewRecorder()
	toggle.ServeHTTP(resp, newRequest(http.MethodPost, "/api/v1/favorites/5/toggle", "", map[string]string{"listingID": "5"}))
	decodeData(t, resp, &toggled)
	assert.False(t, toggled.Favorited)
}

func TestFavoritesToggleUnknownListing(t *testing.T) {
	resp := httptest.NewRecorder()
	FavoritesToggle(seedCatalog(t), state.NewMemoryStore(), nil, nil).
		ServeHTTP(resp, newRequest(http.MethodPost, "/api/v1/favorites/77/toggle", "", map[string]string{"listingID": "77"}))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestFavoritesListEmpty(t *testing.T) {
	resp := httptest.NewRecorder()
	FavoritesList(seedCatalog(t), state.NewMemoryStore(), nil).ServeHTTP(resp, newRequest(http.MethodGet, "/api/v1/favorites", "", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"data":{"ids":[],"listings":[]}}`, resp.Body.String())
}
