package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nkhandel/dietplanner-backend/internal/products"
	"github.com/nkhandel/dietplanner-backend/pkg/enums"
	pkgerrors "github.com/nkhandel/dietplanner-backend/pkg/errors"
)

// Service defines cart operations. Stock is only validated when a line is
// added and again at checkout; quantity edits in between are unchecked.
type Service interface {
	Add(ctx context.Context, userID uuid.UUID, req LineRequest) (*View, error)
	Remove(ctx context.Context, userID uuid.UUID, req LineRequest) (*View, error)
	SetQuantity(ctx context.Context, userID uuid.UUID, req QuantityRequest) (*View, error)
	View(ctx context.Context, userID uuid.UUID) (*View, error)
}

type productFinder interface {
	Find(ctx context.Context, kind enums.ProductKind, id uuid.UUID) (*products.Product, error)
}

type service struct {
	store   *Store
	catalog productFinder
}

// NewService wires cart dependencies.
func NewService(store *Store, catalog productFinder) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "cart store required")
	}
	if catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "product catalog required")
	}
	return &service{store: store, catalog: catalog}, nil
}

func (s *service) Add(ctx context.Context, userID uuid.UUID, req LineRequest) (*View, error) {
	kind, err := s.parseLine(userID, req.Type, req.ProductID)
	if err != nil {
		return nil, err
	}

	product, err := s.catalog.Find(ctx, kind, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if product.StockQuantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeOutOfStock, product.Name+" is out of stock")
	}

	current, err := s.store.Load(ctx, userID.String())
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, userID.String(), current.Add(kind, req.ProductID)); err != nil {
		return nil, err
	}
	return s.View(ctx, userID)
}

func (s *service) Remove(ctx context.Context, userID uuid.UUID, req LineRequest) (*View, error) {
	kind, err := s.parseLine(userID, req.Type, req.ProductID)
	if err != nil {
		return nil, err
	}

	current, err := s.store.Load(ctx, userID.String())
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, userID.String(), current.Remove(kind, req.ProductID)); err != nil {
		return nil, err
	}
	return s.View(ctx, userID)
}

func (s *service) SetQuantity(ctx context.Context, userID uuid.UUID, req QuantityRequest) (*View, error) {
	kind, err := s.parseLine(userID, req.Type, req.ProductID)
	if err != nil {
		return nil, err
	}

	current, err := s.store.Load(ctx, userID.String())
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, userID.String(), current.SetQuantity(kind, req.ProductID, req.Quantity)); err != nil {
		return nil, err
	}
	return s.View(ctx, userID)
}

// View hydrates the stored lines against live catalogue data. Lines whose
// product has vanished are skipped without touching the stored cart.
func (s *service) View(ctx context.Context, userID uuid.UUID) (*View, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	current, err := s.store.Load(ctx, userID.String())
	if err != nil {
		return nil, err
	}

	view := &View{Items: make([]ViewItem, 0, len(current)), Total: decimal.Zero}
	for _, line := range current {
		product, err := s.catalog.Find(ctx, line.Type, line.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}

		subtotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		view.Items = append(view.Items, ViewItem{
			Type:      line.Type,
			ProductID: line.ProductID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  line.Quantity,
			Subtotal:  subtotal,
			InStock:   product.StockQuantity >= line.Quantity,
		})
		view.Total = view.Total.Add(subtotal)
	}
	view.Total = view.Total.Round(2)
	return view, nil
}

func (s *service) parseLine(userID uuid.UUID, rawKind string, productID uuid.UUID) (enums.ProductKind, error) {
	if userID == uuid.Nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	kind, err := enums.ParseProductKind(rawKind)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid product kind")
	}
	if productID == uuid.Nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	return kind, nil
}
