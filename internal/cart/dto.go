package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nkhandel/dietplanner-backend/pkg/enums"
)

// ViewItem is one hydrated cart line with live catalogue data.
type ViewItem struct {
	Type      enums.ProductKind `json:"type"`
	ProductID uuid.UUID         `json:"product_id"`
	Name      string            `json:"name"`
	UnitPrice decimal.Decimal   `json:"unit_price"`
	Quantity  int               `json:"quantity"`
	Subtotal  decimal.Decimal   `json:"subtotal"`
	InStock   bool              `json:"in_stock"`
}

// View is the cart as presented to the user. Lines whose product has been
// removed from the catalogue are dropped from the view; the stored cart
// keeps them until the user or checkout touches it.
type View struct {
	Items []ViewItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// LineRequest identifies a product in cart mutation payloads.
type LineRequest struct {
	Type      string    `json:"type" validate:"required,oneof=supplement protein_bar"`
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

// QuantityRequest sets an absolute quantity for one cart line.
type QuantityRequest struct {
	Type      string    `json:"type" validate:"required,oneof=supplement protein_bar"`
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity"`
}
