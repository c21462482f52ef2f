package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	pkgerrors "github.com/angelmondragon/secondnest/pkg/errors"
	"github.com/angelmondragon/secondnest/pkg/metrics"
	"github.com/angelmondragon/secondnest/pkg/pagination"
)

type listingPage struct {
	Data []struct {
		ID              string  `json:"id"`
		Price           float64 `json:"price"`
		DiscountPercent *int    `json:"discountPercent"`
	} `json:"data"`
	Page pagination.Page `json:"page"`
}

func TestListingsSearchSortsAndPages(t *testing.T) {
	handler := ListingsSearch(seedCatalog(t), metrics.NewStorefront(prometheus.NewRegistry()), nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, newRequest(http.MethodGet, "/api/v1/listings?sort=price_asc&limit=2&offset=1", "", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	var body listingPage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data) != 2 || body.Data[0].ID != "4" || body.Data[1].ID != "2" {
		t.Fatalf("unexpected page %+v", body.Data)
	}
	if body.Page.Total != 6 || body.Page.NextOffset == nil || *body.Page.NextOffset != 3 {
		t.Fatalf("unexpected page meta %+v", body.Page)
	}
	if body.Data[0].DiscountPercent == nil {
		t.Fatalf("expected discount badge on listing 4")
	}
}

func TestListingsSearchFilters(t *testing.T) {
	handler := ListingsSearch(seedCatalog(t), nil, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, newRequest(http.MethodGet, "/api/v1/listings?q=chair&max_price=200", "", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var body listingPage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, l := range body.Data {
		if l.Price > 200 {
			t.Fatalf("listing %s above max price", l.ID)
		}
	}
}

func TestListingsSearchUnknownConditionIsEmpty(t *testing.T) {
	handler := ListingsSearch(seedCatalog(t), nil, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, newRequest(http.MethodGet, "/api/v1/listings?condition=Mint", "", nil))

	var body listingPage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != http.StatusOK || len(body.Data) != 0 || body.Data == nil {
		t.Fatalf("expected empty non-nil page, got %d %+v", resp.Code, body.Data)
	}
}

func TestListingsSearchRejectsBadInput(t *testing.T) {
	handler := ListingsSearch(seedCatalog(t), nil, nil)

	for _, target := range []string{
		"/api/v1/listings?sort=cheapest",
		"/api/v1/listings?min_price=ten",
		"/api/v1/listings?limit=0",
	} {
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, newRequest(http.MethodGet, target, "", nil))
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 got %d", target, resp.Code)
		}
		if code := decodeErrorCode(t, resp); code != string(pkgerrors.CodeValidation) {
			t.Fatalf("%s: unexpected code %s", target, code)
		}
	}
}

func TestListingDetail(t *testing.T) {
	handler := ListingDetail(seedCatalog(t), nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, newRequest(http.MethodGet, "/api/v1/listings/2", "", map[string]string{"listingID": "2"}))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var listing struct {
		ID         string `json:"id"`
		ListedDate string `json:"listedDate"`
	}
	decodeData(t, resp, &listing)
	if listing.ID != "2" || listing.ListedDate == "" {
		t.Fatalf("unexpected listing %+v", listing)
	}

	missing := httptest.NewRecorder()
	handler.ServeHTTP(missing, newRequest(http.MethodGet, "/api/v1/listings/99", "", map[string]string{"listingID": "99"}))
	if missing.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", missing.Code)
	}
}
