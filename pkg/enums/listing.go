package enums

import (
	"fmt"
	"strings"
)

// ListingCondition is the wear grade a seller assigns to a listing.
type ListingCondition string

const (
	ListingConditionLikeNew ListingCondition = "Like New"
	ListingConditionGood    ListingCondition = "Good"
	ListingConditionFair    ListingCondition = "Fair"
)

var validListingConditions = []ListingCondition{
	ListingConditionLikeNew,
	ListingConditionGood,
	ListingConditionFair,
}

// String implements fmt.Stringer.
func (c ListingCondition) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ListingCondition.
func (c ListingCondition) IsValid() bool {
	for _, candidate := range validListingConditions {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseListingCondition converts raw input into a ListingCondition. Matching is exact.
func ParseListingCondition(value string) (ListingCondition, error) {
	for _, candidate := range validListingConditions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid listing condition %q", value)
}

// ListingSort enumerates the supported result orderings.
type ListingSort string

const (
	ListingSortPriceAsc     ListingSort = "price_asc"
	ListingSortPriceDesc    ListingSort = "price_desc"
	ListingSortDateDesc     ListingSort = "date_desc"
	ListingSortDiscountDesc ListingSort = "discount_desc"
)

var validListingSorts = []ListingSort{
	ListingSortPriceAsc,
	ListingSortPriceDesc,
	ListingSortDateDesc,
	ListingSortDiscountDesc,
}

// String implements fmt.Stringer.
func (s ListingSort) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ListingSort.
func (s ListingSort) IsValid() bool {
	for _, candidate := range validListingSorts {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseListingSort converts raw input into a ListingSort, ignoring case and surrounding space.
func ParseListingSort(value string) (ListingSort, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validListingSorts {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid listing sort %q", value)
}
