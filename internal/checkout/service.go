package checkout

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nkhandel/dietplanner-backend/internal/cart"
	"github.com/nkhandel/dietplanner-backend/internal/mailer"
	"github.com/nkhandel/dietplanner-backend/internal/orders"
	"github.com/nkhandel/dietplanner-backend/internal/products"
	"github.com/nkhandel/dietplanner-backend/pkg/db"
	"github.com/nkhandel/dietplanner-backend/pkg/db/models"
	"github.com/nkhandel/dietplanner-backend/pkg/enums"
	pkgerrors "github.com/nkhandel/dietplanner-backend/pkg/errors"
	"github.com/nkhandel/dietplanner-backend/pkg/logger"
)

const (
	cartClearRetries = 2
	cartClearBackoff = 50 * time.Millisecond
)

// CheckoutRequest carries the delivery details collected at checkout.
type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address" validate:"required"`
	Phone           string `json:"phone" validate:"required"`
}

// Service turns a cart into an order. The stock check and decrement run in
// one transaction so concurrent checkouts cannot oversell; the confirmation
// email and alert evaluation happen after commit and never fail the order.
type Service interface {
	Checkout(ctx context.Context, userID uuid.UUID, req CheckoutRequest) (*orders.OrderDTO, error)
}

type cartStore interface {
	Load(ctx context.Context, userID string) (cart.Cart, error)
	Clear(ctx context.Context, userID string) error
}

type userLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// ServiceParams wires checkout dependencies. Observer may be nil.
type ServiceParams struct {
	DB       *db.Client
	Cart     cartStore
	Users    userLoader
	Mailer   mailer.Sender
	Observer products.StockObserver
	Logger   *logger.Logger
}

type service struct {
	db       *db.Client
	cart     cartStore
	users    userLoader
	mail     mailer.Sender
	observer products.StockObserver
	logg     *logger.Logger
}

// NewService validates and wires checkout dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "db client required")
	}
	if params.Cart == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "cart store required")
	}
	if params.Users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "user loader required")
	}
	if params.Mailer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "mail sender required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{
		db:       params.DB,
		cart:     params.Cart,
		users:    params.Users,
		mail:     params.Mailer,
		observer: params.Observer,
		logg:     params.Logger,
	}, nil
}

func (s *service) Checkout(ctx context.Context, userID uuid.UUID, req CheckoutRequest) (*orders.OrderDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if strings.TrimSpace(req.ShippingAddress) == "" || strings.TrimSpace(req.Phone) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping address and phone are required")
	}

	lines, err := s.cart.Load(ctx, userID.String())
	if err != nil {
		return nil, err
	}
	if lines.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
	}

	var order *models.Order
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		catalog := products.NewRepository(tx)

		items := make([]models.OrderItem, 0, len(lines))
		total := decimal.Zero
		for _, line := range lines {
			product, err := catalog.Find(ctx, line.Type, line.ProductID)
			if err != nil {
				// A vanished product is silently dropped, not an error.
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
			}
			if line.Quantity > product.StockQuantity {
				return pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock for "+product.Name)
			}

			items = append(items, models.OrderItem{
				ProductKind: line.Type,
				ProductID:   line.ProductID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				UnitPrice:   product.Price,
			})
			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}
		if len(items) == 0 {
			return pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
		}

		for _, item := range items {
			if err := catalog.DecrementStock(ctx, item.ProductKind, item.ProductID, item.Quantity); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock for "+item.ProductName)
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
			}
		}

		order = &models.Order{
			UserID:          userID,
			Status:          enums.OrderStatusPending,
			TotalPrice:      total.Round(2),
			ShippingAddress: strings.TrimSpace(req.ShippingAddress),
			Phone:           strings.TrimSpace(req.Phone),
			Items:           items,
		}
		if err := orders.NewRepository(tx).Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checkout transaction")
	}

	s.clearCart(ctx, userID)

	s.notifyStockObserver(ctx, order.Items)
	s.sendConfirmation(ctx, userID, order)

	return orders.FromModel(order), nil
}

// clearCart empties the cart once the order is committed. A cart that
// survives this point lets a retried checkout order the same lines twice,
// so transient failures are retried before falling back to a log line.
func (s *service) clearCart(ctx context.Context, userID uuid.UUID) {
	backoff := retry.WithMaxRetries(cartClearRetries, retry.NewConstant(cartClearBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if clearErr := s.cart.Clear(ctx, userID.String()); clearErr != nil {
			return retry.RetryableError(clearErr)
		}
		return nil
	})
	if err != nil {
		s.logg.Error(ctx, "clear cart after checkout", err)
	}
}

// notifyStockObserver re-reads each purchased product so the low stock hook
// sees post-decrement quantities.
func (s *service) notifyStockObserver(ctx context.Context, items []models.OrderItem) {
	if s.observer == nil {
		return
	}
	catalog := products.NewRepository(s.db.DB())
	seen := make(map[uuid.UUID]bool, len(items))
	for _, item := range items {
		if seen[item.ProductID] {
			continue
		}
		seen[item.ProductID] = true
		product, err := catalog.Find(ctx, item.ProductKind, item.ProductID)
		if err != nil {
			s.logg.Error(ctx, "reload product for stock alert", err)
			continue
		}
		s.observer.ProductSaved(ctx, product)
	}
}

func (s *service) sendConfirmation(ctx context.Context, userID uuid.UUID, order *models.Order) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		s.logg.Error(ctx, "load user for order confirmation", err)
		return
	}

	mailLines := make([]mailer.OrderLine, 0, len(order.Items))
	for _, item := range order.Items {
		mailLines = append(mailLines, mailer.OrderLine{
			Name:     item.ProductName,
			Quantity: item.Quantity,
			Price:    item.UnitPrice,
		})
	}
	s.mail.Enqueue(mailer.OrderConfirmationMessage(user.Email, order.ID.String(), order.TotalPrice, mailLines))
}
