package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/angelmondragon/secondnest/pkg/config"
	"github.com/angelmondragon/secondnest/pkg/enums"
	pkgerrors "github.com/angelmondragon/secondnest/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestDefaultListingsLoadInOrder(t *testing.T) {
	listings, err := DefaultListings()
	require.NoError(t, err)
	require.Len(t, listings, 6)

	wantIDs := []string{"1", "2", "3", "4", "5", "6"}
	for i, l := range listings {
		require.Equal(t, wantIDs[i], l.ID)
	}

	malm := listings[0]
	require.Equal(t, "MALM Bed Frame", malm.Title)
	require.Equal(t, 199.0, malm.Price)
	require.Equal(t, enums.ListingConditionLikeNew, malm.Condition)
	require.Equal(t, "2024-03-15", malm.ListedDate.String())
	require.Len(t, malm.Images, 2)
}

func TestParseListingsRejectsSchemaViolations(t *testing.T) {
	doc := `[{"id":"1","title":"X","description":"","price":10,"retailPrice":12,
		"category":"Storage","condition":"Broken","location":"","listedDate":"2024-01-01"}]`
	_, err := ParseListings([]byte(doc))
	require.Error(t, err)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestParseListingsRejectsBadDate(t *testing.T) {
	doc := `[{"id":"1","title":"X","description":"","price":10,"retailPrice":12,
		"category":"Storage","condition":"Good","location":"","listedDate":"yesterday"}]`
	_, err := ParseListings([]byte(doc))
	require.Error(t, err)
}

func TestParseListingsAggregatesDuplicateIDs(t *testing.T) {
	doc := `[
		{"id":"1","title":"A","description":"","price":10,"retailPrice":12,"category":"Storage","condition":"Good","location":"","listedDate":"2024-01-01"},
		{"id":"1","title":"B","description":"","price":11,"retailPrice":12,"category":"Storage","condition":"Good","location":"","listedDate":"2024-01-02"},
		{"id":"2","title":"C","description":"","price":1,"retailPrice":2,"category":"Storage","condition":"Fair","location":"","listedDate":"2024-01-03"},
		{"id":"2","title":"D","description":"","price":1,"retailPrice":2,"category":"Storage","condition":"Fair","location":"","listedDate":"2024-01-03"}
	]`
	_, err := ParseListings([]byte(doc))
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	problems, ok := typed.Details().([]string)
	require.True(t, ok)
	require.Len(t, problems, 2)
}

func TestMemoryStoreGetAndIsolation(t *testing.T) {
	listings, err := DefaultListings()
	require.NoError(t, err)
	store := NewMemoryStore(listings)

	got, ok := store.Get("3")
	require.True(t, ok)
	require.Equal(t, "BILLY Bookcase", got.Title)

	got.Images[0] = "mutated"
	again, _ := store.Get("3")
	require.NotEqual(t, "mutated", again.Images[0])

	_, ok = store.Get("missing")
	require.False(t, ok)
	require.Equal(t, 6, store.Len())
}

func TestListingJSONUsesCamelCase(t *testing.T) {
	l := Listing{ID: "9", RetailPrice: 20, SellerName: "Ann", ListedDate: NewDate(2024, 3, 1)}
	raw, err := json.Marshal(l)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	require.Equal(t, 20.0, m["retailPrice"])
	require.Equal(t, "Ann", m["sellerName"])
	require.Equal(t, "2024-03-01", m["listedDate"])
}

func TestOpenUsesSeedPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	doc := `[{"id":"x","title":"Stool","description":"","price":5,"retailPrice":9,"category":"Dining","condition":"Fair","location":"Austin, TX","listedDate":"2024-05-01"}]`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	store, err := Open(context.Background(), config.CatalogConfig{Source: "seed", SeedPath: path}, nil)
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())
}

func TestOpenDBSourceRequiresRepository(t *testing.T) {
	_, err := Open(context.Background(), config.CatalogConfig{Source: "db"}, nil)
	require.Error(t, err)
}
