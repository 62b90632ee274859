package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nkhandel/dietplanner-backend/pkg/enums"
)

// Order is a placed checkout with its line items. TotalPrice is fixed at
// checkout and never recomputed, even when catalog prices change later.
type Order struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index"`
	Status          enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	TotalPrice      decimal.Decimal   `gorm:"column:total_price;type:numeric(10,2);not null"`
	ShippingAddress string            `gorm:"column:shipping_address;type:text;not null"`
	Phone           string            `gorm:"column:phone;type:text;not null"`
	Items           []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
