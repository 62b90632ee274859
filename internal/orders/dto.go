package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nkhandel/dietplanner-backend/internal/products"
	"github.com/nkhandel/dietplanner-backend/pkg/db/models"
	"github.com/nkhandel/dietplanner-backend/pkg/enums"
)

// OrderItemDTO is one snapshotted line on an order.
type OrderItemDTO struct {
	ID          uuid.UUID         `json:"id"`
	ProductKind enums.ProductKind `json:"product_kind"`
	ProductID   uuid.UUID         `json:"product_id"`
	ProductName string            `json:"product_name"`
	Quantity    int               `json:"quantity"`
	UnitPrice   decimal.Decimal   `json:"unit_price"`
	Subtotal    decimal.Decimal   `json:"subtotal"`
}

// OrderDTO is the transport shape of an order.
type OrderDTO struct {
	ID              uuid.UUID         `json:"id"`
	UserID          uuid.UUID         `json:"user_id"`
	Status          enums.OrderStatus `json:"status"`
	TotalPrice      decimal.Decimal   `json:"total_price"`
	ShippingAddress string            `json:"shipping_address"`
	Phone           string            `json:"phone"`
	Items           []OrderItemDTO    `json:"items"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// OrderListDTO is one page of orders for the staff view. NextCursor is empty
// on the last page.
type OrderListDTO struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

// UpdateStatusRequest is the staff payload for moving an order.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
}

// DashboardDTO summarizes shop state for staff.
type DashboardDTO struct {
	TotalOrders   int64             `json:"total_orders"`
	StatusCounts  map[string]int64  `json:"status_counts"`
	Revenue       decimal.Decimal   `json:"revenue"`
	TotalUsers    int64             `json:"total_users"`
	TotalProducts int64             `json:"total_products"`
	LowStock      []LowStockItemDTO `json:"low_stock"`
}

// LowStockItemDTO names a product the dashboard flags for restocking.
type LowStockItemDTO struct {
	ProductKind       enums.ProductKind `json:"product_kind"`
	ProductID         uuid.UUID         `json:"product_id"`
	Name              string            `json:"name"`
	StockQuantity     int               `json:"stock_quantity"`
	LowStockThreshold int               `json:"low_stock_threshold"`
}

// FromModel converts an order model into its transport shape.
func FromModel(o *models.Order) *OrderDTO {
	if o == nil {
		return nil
	}
	items := make([]OrderItemDTO, 0, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		items = append(items, OrderItemDTO{
			ID:          item.ID,
			ProductKind: item.ProductKind,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}
	return &OrderDTO{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          o.Status,
		TotalPrice:      o.TotalPrice,
		ShippingAddress: o.ShippingAddress,
		Phone:           o.Phone,
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func lowStockItems(list []products.Product) []LowStockItemDTO {
	out := make([]LowStockItemDTO, 0, len(list))
	for i := range list {
		p := &list[i]
		out = append(out, LowStockItemDTO{
			ProductKind:       p.Kind,
			ProductID:         p.ID,
			Name:              p.Name,
			StockQuantity:     p.StockQuantity,
			LowStockThreshold: p.LowStockThreshold,
		})
	}
	return out
}

func fromModels(list []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}
