package products

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nkhandel/dietplanner-backend/pkg/db/models"
	"github.com/nkhandel/dietplanner-backend/pkg/enums"
)

// Repository exposes catalogue persistence over both product tables.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a products repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Find loads one product by its kind and id.
func (r *Repository) Find(ctx context.Context, kind enums.ProductKind, id uuid.UUID) (*Product, error) {
	switch kind {
	case enums.ProductKindSupplement:
		var m models.Supplement
		if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
			return nil, err
		}
		return fromSupplement(&m), nil
	case enums.ProductKindProteinBar:
		var m models.ProteinBar
		if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
			return nil, err
		}
		return fromProteinBar(&m), nil
	default:
		return nil, fmt.Errorf("unknown product kind %q", kind)
	}
}

// ListByKind returns one kind's catalogue ordered by name.
func (r *Repository) ListByKind(ctx context.Context, kind enums.ProductKind) ([]Product, error) {
	switch kind {
	case enums.ProductKindSupplement:
		var rows []models.Supplement
		if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
			return nil, err
		}
		out := make([]Product, 0, len(rows))
		for i := range rows {
			out = append(out, *fromSupplement(&rows[i]))
		}
		return out, nil
	case enums.ProductKindProteinBar:
		var rows []models.ProteinBar
		if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
			return nil, err
		}
		out := make([]Product, 0, len(rows))
		for i := range rows {
			out = append(out, *fromProteinBar(&rows[i]))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown product kind %q", kind)
	}
}

// ListAll returns the full catalogue, supplements first.
func (r *Repository) ListAll(ctx context.Context) ([]Product, error) {
	supplements, err := r.ListByKind(ctx, enums.ProductKindSupplement)
	if err != nil {
		return nil, err
	}
	bars, err := r.ListByKind(ctx, enums.ProductKindProteinBar)
	if err != nil {
		return nil, err
	}
	return append(supplements, bars...), nil
}

// ListLowStock returns every product at or below its own threshold.
func (r *Repository) ListLowStock(ctx context.Context) ([]Product, error) {
	var supplements []models.Supplement
	if err := r.db.WithContext(ctx).
		Where("stock_quantity <= low_stock_threshold").
		Find(&supplements).Error; err != nil {
		return nil, err
	}
	var bars []models.ProteinBar
	if err := r.db.WithContext(ctx).
		Where("stock_quantity <= low_stock_threshold").
		Find(&bars).Error; err != nil {
		return nil, err
	}

	out := make([]Product, 0, len(supplements)+len(bars))
	for i := range supplements {
		out = append(out, *fromSupplement(&supplements[i]))
	}
	for i := range bars {
		out = append(out, *fromProteinBar(&bars[i]))
	}
	return out, nil
}

// CountAll returns the catalogue size across both tables.
func (r *Repository) CountAll(ctx context.Context) (int64, error) {
	var supplements int64
	if err := r.db.WithContext(ctx).Model(&models.Supplement{}).Count(&supplements).Error; err != nil {
		return 0, err
	}
	var bars int64
	if err := r.db.WithContext(ctx).Model(&models.ProteinBar{}).Count(&bars).Error; err != nil {
		return 0, err
	}
	return supplements + bars, nil
}

// Create inserts the product into its kind's table.
func (r *Repository) Create(ctx context.Context, product *Product) (*Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	switch product.Kind {
	case enums.ProductKindSupplement:
		m := product.toSupplement()
		if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
			return nil, err
		}
		return fromSupplement(m), nil
	case enums.ProductKindProteinBar:
		m := product.toProteinBar()
		if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
			return nil, err
		}
		return fromProteinBar(m), nil
	default:
		return nil, fmt.Errorf("unknown product kind %q", product.Kind)
	}
}

// Update overwrites the mutable catalogue fields of one product.
func (r *Repository) Update(ctx context.Context, product *Product) (*Product, error) {
	updates := map[string]any{
		"name":                product.Name,
		"description":         product.Description,
		"price":               product.Price,
		"stock_quantity":      product.StockQuantity,
		"low_stock_threshold": product.LowStockThreshold,
		"image_url":           product.ImageURL,
	}

	var query *gorm.DB
	switch product.Kind {
	case enums.ProductKindSupplement:
		query = r.db.WithContext(ctx).Model(&models.Supplement{}).Where("id = ?", product.ID)
	case enums.ProductKindProteinBar:
		updates["flavor"] = product.Flavor
		updates["weight_grams"] = product.WeightGrams
		query = r.db.WithContext(ctx).Model(&models.ProteinBar{}).Where("id = ?", product.ID)
	default:
		return nil, fmt.Errorf("unknown product kind %q", product.Kind)
	}

	result := query.Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.Find(ctx, product.Kind, product.ID)
}

// DecrementStock atomically subtracts quantity from the product's stock.
// The WHERE clause refuses the write unless enough stock remains, so two
// concurrent checkouts cannot oversell the same units. Returns
// gorm.ErrRecordNotFound when the row was not decremented.
func (r *Repository) DecrementStock(ctx context.Context, kind enums.ProductKind, id uuid.UUID, quantity int) error {
	var query *gorm.DB
	switch kind {
	case enums.ProductKindSupplement:
		query = r.db.WithContext(ctx).Model(&models.Supplement{})
	case enums.ProductKindProteinBar:
		query = r.db.WithContext(ctx).Model(&models.ProteinBar{})
	default:
		return fmt.Errorf("unknown product kind %q", kind)
	}

	result := query.
		Where("id = ? AND stock_quantity >= ?", id, quantity).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
