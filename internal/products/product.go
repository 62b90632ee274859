package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nkhandel/dietplanner-backend/pkg/db/models"
	"github.com/nkhandel/dietplanner-backend/pkg/enums"
)

// Product is the tagged union over the two catalogue tables. Kind selects
// the backing table; Flavor and WeightGrams are only populated for protein
// bars.
type Product struct {
	Kind              enums.ProductKind
	ID                uuid.UUID
	Name              string
	Description       string
	Flavor            *string
	WeightGrams       *int
	Price             decimal.Decimal
	StockQuantity     int
	LowStockThreshold int
	ImageURL          *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock reports whether the product sits at or below its own threshold.
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.LowStockThreshold
}

func fromSupplement(m *models.Supplement) *Product {
	return &Product{
		Kind:              enums.ProductKindSupplement,
		ID:                m.ID,
		Name:              m.Name,
		Description:       m.Description,
		Price:             m.Price,
		StockQuantity:     m.StockQuantity,
		LowStockThreshold: m.LowStockThreshold,
		ImageURL:          m.ImageURL,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func fromProteinBar(m *models.ProteinBar) *Product {
	return &Product{
		Kind:              enums.ProductKindProteinBar,
		ID:                m.ID,
		Name:              m.Name,
		Description:       m.Description,
		Flavor:            m.Flavor,
		WeightGrams:       m.WeightGrams,
		Price:             m.Price,
		StockQuantity:     m.StockQuantity,
		LowStockThreshold: m.LowStockThreshold,
		ImageURL:          m.ImageURL,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func (p *Product) toSupplement() *models.Supplement {
	return &models.Supplement{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		Price:             p.Price,
		StockQuantity:     p.StockQuantity,
		LowStockThreshold: p.LowStockThreshold,
		ImageURL:          p.ImageURL,
	}
}

func (p *Product) toProteinBar() *models.ProteinBar {
	return &models.ProteinBar{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		Flavor:            p.Flavor,
		WeightGrams:       p.WeightGrams,
		Price:             p.Price,
		StockQuantity:     p.StockQuantity,
		LowStockThreshold: p.LowStockThreshold,
		ImageURL:          p.ImageURL,
	}
}
