package catalog

import (
	"context"
	"strings"

	"github.com/angelmondragon/secondnest/pkg/config"
	pkgerrors "github.com/angelmondragon/secondnest/pkg/errors"
)

// Open builds the in-memory catalog from the configured source: the listings
// table, a seed file on disk, or the embedded seed document.
func Open(ctx context.Context, cfg config.CatalogConfig, repo *Repository) (*MemoryStore, error) {
	if cfg.FromDB() {
		if repo == nil {
			return nil, pkgerrors.New(pkgerrors.CodeInternal, "catalog repository is required for the db source")
		}
		listings, err := repo.List(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load listings from database")
		}
		return NewMemoryStore(listings), nil
	}

	if path := strings.TrimSpace(cfg.SeedPath); path != "" {
		listings, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		return NewMemoryStore(listings), nil
	}

	listings, err := DefaultListings()
	if err != nil {
		return nil, err
	}
	return NewMemoryStore(listings), nil
}
