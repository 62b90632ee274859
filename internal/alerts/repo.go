package alerts

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nkhandel/dietplanner-backend/pkg/db/models"
	"github.com/nkhandel/dietplanner-backend/pkg/enums"
)

// Repository tracks low stock alert state per product.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an alerts repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// MarkSent flips the product's alert state to sent and reports whether this
// call made the transition. Returns false when an alert was already sent,
// which is how repeated saves of a still-low product stay silent.
func (r *Repository) MarkSent(ctx context.Context, kind enums.ProductKind, productID uuid.UUID) (bool, error) {
	var alert models.StockAlert
	err := r.db.WithContext(ctx).
		First(&alert, "product_kind = ? AND product_id = ?", kind, productID).Error
	switch {
	case err == nil:
		if alert.AlertSent {
			return false, nil
		}
		if err := r.db.WithContext(ctx).Model(&alert).Update("alert_sent", true).Error; err != nil {
			return false, err
		}
		return true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		created := models.StockAlert{
			ID:          uuid.New(),
			ProductKind: kind,
			ProductID:   productID,
			AlertSent:   true,
		}
		if err := r.db.WithContext(ctx).Create(&created).Error; err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, err
	}
}

// Reset clears the sent flag once the product has recovered above its
// threshold so the next dip alerts again. Missing rows are a no-op.
func (r *Repository) Reset(ctx context.Context, kind enums.ProductKind, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.StockAlert{}).
		Where("product_kind = ? AND product_id = ? AND alert_sent = ?", kind, productID, true).
		Update("alert_sent", false).Error
}
