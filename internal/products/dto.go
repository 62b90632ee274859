package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nkhandel/dietplanner-backend/pkg/enums"
)

// ProductDTO is the transport shape of a catalogue product.
type ProductDTO struct {
	Kind              enums.ProductKind `json:"kind"`
	ID                uuid.UUID         `json:"id"`
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	Flavor            *string           `json:"flavor,omitempty"`
	WeightGrams       *int              `json:"weight_grams,omitempty"`
	Price             decimal.Decimal   `json:"price"`
	StockQuantity     int               `json:"stock_quantity"`
	LowStockThreshold int               `json:"low_stock_threshold"`
	ImageURL          *string           `json:"image_url,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// CreateProductRequest is the staff payload for adding a catalogue product.
type CreateProductRequest struct {
	Kind              string          `json:"kind" validate:"required,oneof=supplement protein_bar"`
	Name              string          `json:"name" validate:"required"`
	Description       string          `json:"description"`
	Flavor            *string         `json:"flavor,omitempty"`
	WeightGrams       *int            `json:"weight_grams,omitempty"`
	Price             decimal.Decimal `json:"price" validate:"required"`
	StockQuantity     int             `json:"stock_quantity" validate:"gte=0"`
	LowStockThreshold int             `json:"low_stock_threshold" validate:"gte=0"`
	ImageURL          *string         `json:"image_url,omitempty"`
}

// UpdateProductRequest is the staff payload for editing a catalogue product.
type UpdateProductRequest struct {
	Name              string          `json:"name" validate:"required"`
	Description       string          `json:"description"`
	Flavor            *string         `json:"flavor,omitempty"`
	WeightGrams       *int            `json:"weight_grams,omitempty"`
	Price             decimal.Decimal `json:"price" validate:"required"`
	StockQuantity     int             `json:"stock_quantity" validate:"gte=0"`
	LowStockThreshold int             `json:"low_stock_threshold" validate:"gte=0"`
	ImageURL          *string         `json:"image_url,omitempty"`
}

// ToDTO converts the union value into its transport shape.
func ToDTO(p *Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		Kind:              p.Kind,
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		Flavor:            p.Flavor,
		WeightGrams:       p.WeightGrams,
		Price:             p.Price,
		StockQuantity:     p.StockQuantity,
		LowStockThreshold: p.LowStockThreshold,
		ImageURL:          p.ImageURL,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func toDTOs(items []Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(items))
	for i := range items {
		out = append(out, *ToDTO(&items[i]))
	}
	return out
}
