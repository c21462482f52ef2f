package models

import (
	"time"

	dbtypes "github.com/angelmondragon/secondnest/pkg/db/types"
	"github.com/angelmondragon/secondnest/pkg/enums"
)

// Listing is the persisted catalog row. Position keeps catalog insertion order.
type Listing struct {
	ID          string                 `gorm:"column:id;primaryKey"`
	Position    int                    `gorm:"column:position;not null;index:listings_position_idx"`
	Title       string                 `gorm:"column:title;not null"`
	Description string                 `gorm:"column:description;not null"`
	Price       float64                `gorm:"column:price;type:numeric(10,2);not null"`
	RetailPrice float64                `gorm:"column:retail_price;type:numeric(10,2);not null"`
	Category    string                 `gorm:"column:category;not null"`
	Condition   enums.ListingCondition `gorm:"column:condition;not null"`
	Location    string                 `gorm:"column:location;not null"`
	ListedDate  time.Time              `gorm:"column:listed_date;type:date;not null"`
	Width       float64                `gorm:"column:width;not null;default:0"`
	Height      float64                `gorm:"column:height;not null;default:0"`
	Depth       float64                `gorm:"column:depth;not null;default:0"`
	Material    string                 `gorm:"column:material;not null;default:''"`
	Images      dbtypes.StringArray    `gorm:"column:images;not null"`
	SellerName  string                 `gorm:"column:seller_name;not null;default:''"`
	Assembly    string                 `gorm:"column:assembly;not null;default:''"`
	Weight      string                 `gorm:"column:weight;not null;default:''"`
	CreatedAt   time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

func (Listing) TableName() string { return "listings" }
