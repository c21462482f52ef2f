package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/secondnest/pkg/errors"
)

type addItemBody struct {
	ListingID string `json:"listing_id" validate:"required"`
	Delta     int    `json:"delta" validate:"ne=0"`
}

func TestDecodeJSONBodyValidates(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"delta":0}`))
	var body addItemBody
	err := DecodeJSONBody(req, &body)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := pkgerrors.As(err).Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", pkgerrors.As(err).Details())
	}
	if details["listing_id"] != "is required" {
		t.Fatalf("unexpected listing_id detail %q", details["listing_id"])
	}
	if details["delta"] != "must not equal 0" {
		t.Fatalf("unexpected delta detail %q", details["delta"])
	}
}

func TestDecodeJSONBodyRejectsUnknownAndEmpty(t *testing.T) {
	var body addItemBody
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"listing_id":"1","delta":1,"extra":true}`))
	if err := DecodeJSONBody(req, &body); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected unknown field rejection, got %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	err := DecodeJSONBody(req, &body)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) || pkgerrors.As(err).Message() != "request body required" {
		t.Fatalf("expected empty body rejection, got %v", err)
	}
}

func TestParseQueryFloat(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?min_price=99.5&max_price=abc", nil)

	got, err := ParseQueryFloat(req, "min_price")
	if err != nil || got == nil || *got != 99.5 {
		t.Fatalf("unexpected min_price %v %v", got, err)
	}
	if _, err := ParseQueryFloat(req, "max_price"); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got, err := ParseQueryFloat(req, "absent"); got != nil || err != nil {
		t.Fatalf("expected nil for absent param, got %v %v", got, err)
	}
}

func TestParseQueryIntAndBool(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=500&membership=true&flag=maybe", nil)

	if _, err := ParseQueryInt(req, "limit", 24, 1, 100); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected out of range error, got %v", err)
	}
	if v, err := ParseQueryInt(req, "offset", 0, 0, 1000); err != nil || v != 0 {
		t.Fatalf("expected default offset, got %d %v", v, err)
	}
	if v, err := ParseQueryBool(req, "membership", false); err != nil || !v {
		t.Fatalf("expected membership true, got %v %v", v, err)
	}
	if _, err := ParseQueryBool(req, "flag", false); err == nil {
		t.Fatalf("expected invalid bool error")
	}
}

func TestOptionalQueryStringAndSanitize(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?category=%20Seating%20&location=", nil)
	if got := OptionalQueryString(req, "category", 64); got == nil || *got != "Seating" {
		t.Fatalf("unexpected category %v", got)
	}
	if got := OptionalQueryString(req, "location", 64); got != nil {
		t.Fatalf("expected nil for blank location, got %q", *got)
	}
	if got := SanitizeString("  POÄNG chair ", 5); got != "POÄNG" {
		t.Fatalf("expected rune-safe truncation, got %q", got)
	}
}
