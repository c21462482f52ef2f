package search

import (
	"math"
	"slices"
	"strings"

	"github.com/angelmondragon/secondnest/internal/catalog"
	"github.com/angelmondragon/secondnest/pkg/enums"
	pkgerrors "github.com/angelmondragon/secondnest/pkg/errors"
	"golang.org/x/text/cases"
)

// Filters narrows a search. A nil field places no constraint on that dimension.
type Filters struct {
	Category  *string
	Condition *enums.ListingCondition
	MinPrice  *float64
	MaxPrice  *float64
	Location  *string
	SortBy    *enums.ListingSort
}

// ParseSort maps a raw sort option. An empty value means catalog order.
func ParseSort(raw string) (*enums.ListingSort, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	sort, err := enums.ParseListingSort(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unsupported sort option").
			WithDetails(map[string]any{"sort": raw})
	}
	return &sort, nil
}

// Search returns the catalog listings that match every query term and every
// present filter, optionally sorted. The result is never nil.
func Search(store catalog.Store, query string, filters Filters) []catalog.Listing {
	listings := store.All()
	out := make([]catalog.Listing, 0, len(listings))

	folder := cases.Fold()
	terms := strings.Fields(folder.String(query))

	var category, location string
	if filters.Category != nil {
		category = folder.String(*filters.Category)
	}
	if filters.Location != nil {
		location = folder.String(*filters.Location)
	}

	for _, l := range listings {
		if len(terms) > 0 && !matchesTerms(folder, l, terms) {
			continue
		}
		if filters.Category != nil && category != "" && folder.String(l.Category) != category {
			continue
		}
		if filters.Condition != nil && *filters.Condition != "" && l.Condition != *filters.Condition {
			continue
		}
		if filters.MinPrice != nil && l.Price < *filters.MinPrice {
			continue
		}
		if filters.MaxPrice != nil && l.Price > *filters.MaxPrice {
			continue
		}
		if filters.Location != nil && location != "" && !strings.Contains(folder.String(l.Location), location) {
			continue
		}
		out = append(out, l)
	}

	if filters.SortBy != nil {
		sortListings(out, *filters.SortBy)
	}
	return out
}

func matchesTerms(folder cases.Caser, l catalog.Listing, terms []string) bool {
	fields := []string{
		folder.String(l.Title),
		folder.String(l.Description),
		folder.String(l.Category),
	}
	for _, term := range terms {
		found := false
		for _, f := range fields {
			if strings.Contains(f, term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func sortListings(listings []catalog.Listing, by enums.ListingSort) {
	var cmp func(a, b catalog.Listing) int
	switch by {
	case enums.ListingSortPriceAsc:
		cmp = func(a, b catalog.Listing) int { return compareFloat(a.Price, b.Price) }
	case enums.ListingSortPriceDesc:
		cmp = func(a, b catalog.Listing) int { return compareFloat(b.Price, a.Price) }
	case enums.ListingSortDateDesc:
		cmp = func(a, b catalog.Listing) int { return b.ListedDate.Compare(a.ListedDate.Time) }
	case enums.ListingSortDiscountDesc:
		cmp = func(a, b catalog.Listing) int { return compareFloat(DiscountFraction(b), DiscountFraction(a)) }
	default:
		return
	}
	slices.SortStableFunc(listings, cmp)
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// DiscountFraction is (retailPrice - price) / retailPrice. A non-positive retail
// price or a price above retail counts as no discount.
func DiscountFraction(l catalog.Listing) float64 {
	if l.RetailPrice <= 0 || l.Price >= l.RetailPrice {
		return 0
	}
	return (l.RetailPrice - l.Price) / l.RetailPrice
}

// DiscountPercent returns the rounded badge percentage and whether a badge applies.
func DiscountPercent(l catalog.Listing) (int, bool) {
	if l.RetailPrice <= l.Price || l.RetailPrice <= 0 {
		return 0, false
	}
	return int(math.Round(DiscountFraction(l) * 100)), true
}
