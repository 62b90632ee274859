package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nkhandel/dietplanner-backend/pkg/enums"
)

// OrderItem is a line on an order. Name and unit price are snapshotted at
// checkout so later catalog edits never rewrite order history.
type OrderItem struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID     uuid.UUID         `gorm:"column:order_id;type:uuid;not null;index"`
	ProductKind enums.ProductKind `gorm:"column:product_kind;type:text;not null"`
	ProductID   uuid.UUID         `gorm:"column:product_id;type:uuid;not null"`
	ProductName string            `gorm:"column:product_name;type:text;not null"`
	Quantity    int               `gorm:"column:quantity;not null"`
	UnitPrice   decimal.Decimal   `gorm:"column:unit_price;type:numeric(10,2);not null"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
}
