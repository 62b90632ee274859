package products

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nkhandel/dietplanner-backend/pkg/enums"
	pkgerrors "github.com/nkhandel/dietplanner-backend/pkg/errors"
)

// StockObserver is notified after every catalogue write so low stock state
// can be re-evaluated. Implementations must be safe to call from request
// handlers and must never fail the triggering write.
type StockObserver interface {
	ProductSaved(ctx context.Context, product *Product)
}

// Service defines catalogue operations. Writes are staff-only; the
// controller enforces that before calling in.
type Service interface {
	List(ctx context.Context, kind string) ([]ProductDTO, error)
	Get(ctx context.Context, kind string, id uuid.UUID) (*ProductDTO, error)
	Create(ctx context.Context, req CreateProductRequest) (*ProductDTO, error)
	Update(ctx context.Context, kind string, id uuid.UUID, req UpdateProductRequest) (*ProductDTO, error)
}

type repository interface {
	Find(ctx context.Context, kind enums.ProductKind, id uuid.UUID) (*Product, error)
	ListByKind(ctx context.Context, kind enums.ProductKind) ([]Product, error)
	ListAll(ctx context.Context) ([]Product, error)
	Create(ctx context.Context, product *Product) (*Product, error)
	Update(ctx context.Context, product *Product) (*Product, error)
}

type service struct {
	repo     repository
	observer StockObserver
}

// NewService wires catalogue dependencies. The observer may be nil.
func NewService(repo repository, observer StockObserver) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "products repository required")
	}
	return &service{repo: repo, observer: observer}, nil
}

func (s *service) List(ctx context.Context, kind string) ([]ProductDTO, error) {
	if kind == "" {
		items, err := s.repo.ListAll(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
		}
		return toDTOs(items), nil
	}

	parsed, err := enums.ParseProductKind(kind)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product kind")
	}
	items, err := s.repo.ListByKind(ctx, parsed)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return toDTOs(items), nil
}

func (s *service) Get(ctx context.Context, kind string, id uuid.UUID) (*ProductDTO, error) {
	parsed, err := enums.ParseProductKind(kind)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product kind")
	}
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	product, err := s.repo.Find(ctx, parsed, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return ToDTO(product), nil
}

func (s *service) Create(ctx context.Context, req CreateProductRequest) (*ProductDTO, error) {
	kind, err := enums.ParseProductKind(req.Kind)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product kind")
	}
	if !req.Price.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if req.StockQuantity < 0 || req.LowStockThreshold < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock and threshold must not be negative")
	}

	created, err := s.repo.Create(ctx, &Product{
		Kind:              kind,
		Name:              req.Name,
		Description:       req.Description,
		Flavor:            req.Flavor,
		WeightGrams:       req.WeightGrams,
		Price:             req.Price,
		StockQuantity:     req.StockQuantity,
		LowStockThreshold: req.LowStockThreshold,
		ImageURL:          req.ImageURL,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	s.notify(ctx, created)
	return ToDTO(created), nil
}

func (s *service) Update(ctx context.Context, kind string, id uuid.UUID, req UpdateProductRequest) (*ProductDTO, error) {
	parsed, err := enums.ParseProductKind(kind)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product kind")
	}
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if !req.Price.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if req.StockQuantity < 0 || req.LowStockThreshold < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock and threshold must not be negative")
	}

	updated, err := s.repo.Update(ctx, &Product{
		Kind:              parsed,
		ID:                id,
		Name:              req.Name,
		Description:       req.Description,
		Flavor:            req.Flavor,
		WeightGrams:       req.WeightGrams,
		Price:             req.Price,
		StockQuantity:     req.StockQuantity,
		LowStockThreshold: req.LowStockThreshold,
		ImageURL:          req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}

	s.notify(ctx, updated)
	return ToDTO(updated), nil
}

func (s *service) notify(ctx context.Context, product *Product) {
	if s.observer == nil || product == nil {
		return
	}
	s.observer.ProductSaved(ctx, product)
}
