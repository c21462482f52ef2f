package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	pkgerrors "github.com/angelmondragon/secondnest/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/multierr"
)

const schemaResource = "listings.schema.json"

var (
	//go:embed seed/listings.json
	seedListings []byte
	//go:embed seed/listings.schema.json
	seedSchema []byte

	schemaOnce  sync.Once
	schema      *jsonschema.Schema
	errSchemaUp error
)

func listingSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		compiler.AssertFormat = true
		if err := compiler.AddResource(schemaResource, bytes.NewReader(seedSchema)); err != nil {
			errSchemaUp = fmt.Errorf("add listing schema: %w", err)
			return
		}
		schema, errSchemaUp = compiler.Compile(schemaResource)
	})
	return schema, errSchemaUp
}

// SeedJSON returns the embedded seed document.
func SeedJSON() []byte {
	return append([]byte(nil), seedListings...)
}

// DefaultListings decodes the embedded seed catalog.
func DefaultListings() ([]Listing, error) {
	return ParseListings(seedListings)
}

// LoadFile reads and validates a catalog document from disk.
func LoadFile(path string) ([]Listing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read catalog file")
	}
	return ParseListings(data)
}

// ParseListings validates a catalog document against the listing schema and decodes it.
// Every semantic problem found is reported, not only the first.
func ParseListings(data []byte) ([]Listing, error) {
	compiled, err := listingSchema()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "compile listing schema")
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "catalog is not valid JSON")
	}
	if err := compiled.Validate(doc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "catalog failed schema validation")
	}

	var listings []Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode catalog")
	}
	if err := checkListings(listings); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "catalog failed consistency checks").
			WithDetails(problemList(err))
	}
	return listings, nil
}

func checkListings(listings []Listing) error {
	var errs error
	seen := make(map[string]int, len(listings))
	for i, l := range listings {
		if prev, ok := seen[l.ID]; ok {
			errs = multierr.Append(errs, fmt.Errorf("listing %d: duplicate id %q (first at %d)", i, l.ID, prev))
		} else {
			seen[l.ID] = i
		}
		if l.Price < 0 {
			errs = multierr.Append(errs, fmt.Errorf("listing %q: negative price", l.ID))
		}
		if l.RetailPrice < 0 {
			errs = multierr.Append(errs, fmt.Errorf("listing %q: negative retail price", l.ID))
		}
		if !l.Condition.IsValid() {
			errs = multierr.Append(errs, fmt.Errorf("listing %q: unknown condition %q", l.ID, l.Condition))
		}
		if l.ListedDate.IsZero() {
			errs = multierr.Append(errs, fmt.Errorf("listing %q: missing listed date", l.ID))
		}
	}
	return errs
}

func problemList(err error) []string {
	errs := multierr.Errors(err)
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Error())
	}
	return out
}
