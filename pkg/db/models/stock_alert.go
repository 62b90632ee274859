package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/nkhandel/dietplanner-backend/pkg/enums"
)

// StockAlert tracks the low stock notification state for a single product.
// At most one row exists per product; AlertSent flips back to false once the
// product restocks above the threshold so the next dip alerts again.
type StockAlert struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductKind enums.ProductKind `gorm:"column:product_kind;type:text;not null;uniqueIndex:idx_stock_alerts_product"`
	ProductID   uuid.UUID         `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_stock_alerts_product"`
	AlertSent   bool              `gorm:"column:alert_sent;not null;default:false"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
