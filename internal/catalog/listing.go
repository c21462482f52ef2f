package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/secondnest/pkg/enums"
)

// DateLayout is the wire format of ListedDate.
const DateLayout = "2006-01-02"

// Date is a calendar day serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate builds a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD value.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Dimensions are in centimeters.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

// Listing is one item offered for sale. Values are never mutated once loaded.
type Listing struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Price       float64                `json:"price"`
	RetailPrice float64                `json:"retailPrice"`
	Dimensions  Dimensions             `json:"dimensions"`
	Material    string                 `json:"material"`
	Category    string                 `json:"category"`
	Condition   enums.ListingCondition `json:"condition"`
	Images      []string               `json:"images"`
	Location    string                 `json:"location"`
	SellerName  string                 `json:"sellerName"`
	ListedDate  Date                   `json:"listedDate"`
	Assembly    string                 `json:"assembly"`
	Weight      string                 `json:"weight"`
}

// clone copies the slice-valued fields so callers cannot reach shared backing arrays.
func (l Listing) clone() Listing {
	if l.Images != nil {
		l.Images = append([]string(nil), l.Images...)
	}
	return l
}
