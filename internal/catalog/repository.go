package catalog

import (
	"context"

	"github.com/angelmondragon/secondnest/pkg/db/models"
	dbtypes "github.com/angelmondragon/secondnest/pkg/db/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists listings in the listings table.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a listing repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every listing ordered by catalog position.
func (r *Repository) List(ctx context.Context) ([]Listing, error) {
	var rows []models.Listing
	if err := r.db.WithContext(ctx).Order("position ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]Listing, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromModel(row))
	}
	return out, nil
}

// ImportResult summarizes an Import call.
type ImportResult struct {
	Upserted int
	Pruned   int64
}

// Import upserts listings keyed by id, assigning positions in slice order. With prune
// set, rows whose id is absent from listings are deleted in the same transaction.
func (r *Repository) Import(ctx context.Context, listings []Listing, prune bool) (ImportResult, error) {
	var result ImportResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := make([]string, 0, len(listings))
		for i, l := range listings {
			row := toModel(l, i)
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns(updatableColumns),
			}).Create(&row).Error; err != nil {
				return err
			}
			ids = append(ids, l.ID)
		}
		result.Upserted = len(listings)

		if !prune {
			return nil
		}
		q := tx.Model(&models.Listing{})
		if len(ids) > 0 {
			q = q.Where("id NOT IN ?", ids)
		} else {
			q = q.Where("1 = 1")
		}
		res := q.Delete(&models.Listing{})
		if res.Error != nil {
			return res.Error
		}
		result.Pruned = res.RowsAffected
		return nil
	})
	return result, err
}

var updatableColumns = []string{
	"position", "title", "description", "price", "retail_price", "category", "condition",
	"location", "listed_date", "width", "height", "depth", "material", "images",
	"seller_name", "assembly", "weight", "updated_at",
}

func toModel(l Listing, position int) models.Listing {
	return models.Listing{
		ID:          l.ID,
		Position:    position,
		Title:       l.Title,
		Description: l.Description,
		Price:       l.Price,
		RetailPrice: l.RetailPrice,
		Category:    l.Category,
		Condition:   l.Condition,
		Location:    l.Location,
		ListedDate:  l.ListedDate.Time,
		Width:       l.Dimensions.Width,
		Height:      l.Dimensions.Height,
		Depth:       l.Dimensions.Depth,
		Material:    l.Material,
		Images:      dbtypes.StringArray(append([]string{}, l.Images...)),
		SellerName:  l.SellerName,
		Assembly:    l.Assembly,
		Weight:      l.Weight,
	}
}

func fromModel(m models.Listing) Listing {
	listed := m.ListedDate.UTC()
	return Listing{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Price:       m.Price,
		RetailPrice: m.RetailPrice,
		Dimensions:  Dimensions{Width: m.Width, Height: m.Height, Depth: m.Depth},
		Material:    m.Material,
		Category:    m.Category,
		Condition:   m.Condition,
		Images:      append([]string{}, m.Images...),
		Location:    m.Location,
		SellerName:  m.SellerName,
		ListedDate:  NewDate(listed.Year(), listed.Month(), listed.Day()),
		Assembly:    m.Assembly,
		Weight:      m.Weight,
	}
}
