package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Supplement is a purchasable supplement product.
type Supplement struct {
	ID                uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name              string          `gorm:"column:name;type:text;not null"`
	Description       string          `gorm:"column:description;type:text;not null;default:''"`
	Price             decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	StockQuantity     int             `gorm:"column:stock_quantity;not null;default:0"`
	LowStockThreshold int             `gorm:"column:low_stock_threshold;not null;default:10"`
	ImageURL          *string         `gorm:"column:image_url"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
