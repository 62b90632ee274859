package checkout

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nkhandel/dietplanner-backend/internal/cart"
	"github.com/nkhandel/dietplanner-backend/internal/mailer"
	"github.com/nkhandel/dietplanner-backend/internal/products"
	"github.com/nkhandel/dietplanner-backend/pkg/db"
	"github.com/nkhandel/dietplanner-backend/pkg/db/models"
	"github.com/nkhandel/dietplanner-backend/pkg/enums"
	pkgerrors "github.com/nkhandel/dietplanner-backend/pkg/errors"
	"github.com/nkhandel/dietplanner-backend/pkg/logger"
)

type fakeCartStore struct {
	carts         map[string]cart.Cart
	clearFailures int
	clearCalls    int
}

func (f *fakeCartStore) Load(_ context.Context, userID string) (cart.Cart, error) {
	return f.carts[userID], nil
}

func (f *fakeCartStore) Clear(_ context.Context, userID string) error {
	f.clearCalls++
	if f.clearFailures > 0 {
		f.clearFailures--
		return errors.New("connection reset")
	}
	delete(f.carts, userID)
	return nil
}

type captureSender struct {
	messages []mailer.Message
}

func (c *captureSender) Enqueue(msg mailer.Message) {
	c.messages = append(c.messages, msg)
}

type recordingObserver struct {
	saved []*products.Product
}

func (r *recordingObserver) ProductSaved(_ context.Context, product *products.Product) {
	r.saved = append(r.saved, product)
}

type fixture struct {
	svc      Service
	conn     *gorm.DB
	carts    *fakeCartStore
	sender   *captureSender
	observer *recordingObserver
	userID   uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(
		&models.User{}, &models.Supplement{}, &models.ProteinBar{},
		&models.Order{}, &models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        "shopper@example.com",
		PasswordHash: "x",
		FirstName:    "Pat",
		LastName:     "Jones",
		IsActive:     true,
	}
	if err := conn.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	carts := &fakeCartStore{carts: make(map[string]cart.Cart)}
	sender := &captureSender{}
	observer := &recordingObserver{}
	svc, err := NewService(ServiceParams{
		DB:       db.FromConn(conn),
		Cart:     carts,
		Users:    usersRepo{conn: conn},
		Mailer:   sender,
		Observer: observer,
		Logger:   logger.New(logger.Options{ServiceName: "checkout-test", Output: io.Discard}),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return &fixture{svc: svc, conn: conn, carts: carts, sender: sender, observer: observer, userID: user.ID}
}

type usersRepo struct {
	conn *gorm.DB
}

func (u usersRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := u.conn.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (f *fixture) seedSupplement(t *testing.T, name, price string, stock int) uuid.UUID {
	t.Helper()
	m := &models.Supplement{
		ID:                uuid.New(),
		Name:              name,
		Price:             decimal.RequireFromString(price),
		StockQuantity:     stock,
		LowStockThreshold: 10,
	}
	if err := f.conn.Create(m).Error; err != nil {
		t.Fatalf("seed supplement: %v", err)
	}
	return m.ID
}

func (f *fixture) fillCart(lines ...cart.Line) {
	f.carts.carts[f.userID.String()] = cart.Cart(lines)
}

func validRequest() CheckoutRequest {
	return CheckoutRequest{ShippingAddress: "1 Main St, Springfield", Phone: "555-0100"}
}

func TestCheckoutCreatesOrderAndDecrementsStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	vitaminID := f.seedSupplement(t, "Vitamin D", "19.99", 30)
	omegaID := f.seedSupplement(t, "Omega 3", "24.99", 8)

	f.fillCart(
		cart.Line{Type: enums.ProductKindSupplement, ProductID: vitaminID, Quantity: 2},
		cart.Line{Type: enums.ProductKindSupplement, ProductID: omegaID, Quantity: 1},
	)

	order, err := f.svc.Checkout(ctx, f.userID, validRequest())
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if order.Status != enums.OrderStatusPending {
		t.Fatalf("status = %q, want pending", order.Status)
	}
	if !order.TotalPrice.Equal(decimal.RequireFromString("64.97")) {
		t.Fatalf("total = %s, want 64.97", order.TotalPrice)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(order.Items))
	}

	var vitamin models.Supplement
	if err := f.conn.First(&vitamin, "id = ?", vitaminID).Error; err != nil {
		t.Fatalf("reload vitamin: %v", err)
	}
	if vitamin.StockQuantity != 28 {
		t.Fatalf("vitamin stock = %d, want 28", vitamin.StockQuantity)
	}

	if len(f.carts.carts[f.userID.String()]) != 0 {
		t.Fatalf("cart should be cleared after checkout")
	}
	if len(f.sender.messages) != 1 || f.sender.messages[0].Kind != mailer.KindOrderConfirmation {
		t.Fatalf("expected one confirmation email, got %+v", f.sender.messages)
	}
	if !strings.Contains(f.sender.messages[0].Body, "Vitamin D") {
		t.Fatalf("confirmation should list purchased items")
	}
	if len(f.observer.saved) != 2 {
		t.Fatalf("expected stock hook for both products, got %d", len(f.observer.saved))
	}
	for _, p := range f.observer.saved {
		if p.ID == omegaID && p.StockQuantity != 7 {
			t.Fatalf("observer must see post-decrement stock, got %d", p.StockQuantity)
		}
	}
}

func TestCheckoutRetriesCartClear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.seedSupplement(t, "Vitamin D", "19.99", 30)
	f.fillCart(cart.Line{Type: enums.ProductKindSupplement, ProductID: id, Quantity: 1})
	f.carts.clearFailures = 2

	if _, err := f.svc.Checkout(ctx, f.userID, validRequest()); err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if f.carts.clearCalls != 3 {
		t.Fatalf("clear attempted %d times, want 3", f.carts.clearCalls)
	}
	if len(f.carts.carts[f.userID.String()]) != 0 {
		t.Fatalf("cart should be cleared after retries")
	}
}

func TestCheckoutSucceedsWhenCartClearKeepsFailing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.seedSupplement(t, "Zinc", "8.50", 10)
	f.fillCart(cart.Line{Type: enums.ProductKindSupplement, ProductID: id, Quantity: 1})
	f.carts.clearFailures = 10

	// The order is already committed; a dead cart store must not fail it.
	order, err := f.svc.Checkout(ctx, f.userID, validRequest())
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if order == nil || len(order.Items) != 1 {
		t.Fatalf("order should be returned despite the stale cart")
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Checkout(context.Background(), f.userID, validRequest())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeEmptyCart {
		t.Fatalf("expected empty cart error, got %v", err)
	}
}

func TestCheckoutRequiresAddressAndPhone(t *testing.T) {
	f := newFixture(t)
	id := f.seedSupplement(t, "Zinc", "8.50", 10)
	f.fillCart(cart.Line{Type: enums.ProductKindSupplement, ProductID: id, Quantity: 1})

	_, err := f.svc.Checkout(context.Background(), f.userID, CheckoutRequest{ShippingAddress: "  ", Phone: "555"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCheckoutInsufficientStockAbortsWholeOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	plentyID := f.seedSupplement(t, "Vitamin C", "9.99", 50)
	scarceID := f.seedSupplement(t, "Creatine", "14.00", 2)

	f.fillCart(
		cart.Line{Type: enums.ProductKindSupplement, ProductID: plentyID, Quantity: 1},
		cart.Line{Type: enums.ProductKindSupplement, ProductID: scarceID, Quantity: 5},
	)

	_, err := f.svc.Checkout(ctx, f.userID, validRequest())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeInsufficientStock {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if !strings.Contains(typed.Error(), "Creatine") {
		t.Fatalf("error should name the product: %v", typed)
	}

	// No order, no decrement, cart untouched.
	var count int64
	if err := f.conn.Model(&models.Order{}).Count(&count).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if count != 0 {
		t.Fatalf("no order may be created, got %d", count)
	}
	var plenty models.Supplement
	if err := f.conn.First(&plenty, "id = ?", plentyID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if plenty.StockQuantity != 50 {
		t.Fatalf("stock must be untouched, got %d", plenty.StockQuantity)
	}
	if len(f.carts.carts[f.userID.String()]) != 2 {
		t.Fatalf("cart must stay intact after failed checkout")
	}
	if len(f.sender.messages) != 0 {
		t.Fatalf("no email on failed checkout")
	}
}

func TestCheckoutSkipsVanishedProducts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	keepID := f.seedSupplement(t, "Magnesium", "12.00", 10)

	f.fillCart(
		cart.Line{Type: enums.ProductKindSupplement, ProductID: keepID, Quantity: 1},
		cart.Line{Type: enums.ProductKindProteinBar, ProductID: uuid.New(), Quantity: 3},
	)

	order, err := f.svc.Checkout(ctx, f.userID, validRequest())
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if len(order.Items) != 1 || order.Items[0].ProductName != "Magnesium" {
		t.Fatalf("vanished product should be skipped, got %+v", order.Items)
	}
	if !order.TotalPrice.Equal(decimal.RequireFromString("12.00")) {
		t.Fatalf("total = %s, want 12.00", order.TotalPrice)
	}
}

func TestCheckoutAllProductsVanishedIsEmptyCart(t *testing.T) {
	f := newFixture(t)

	f.fillCart(cart.Line{Type: enums.ProductKindSupplement, ProductID: uuid.New(), Quantity: 1})

	_, err := f.svc.Checkout(context.Background(), f.userID, validRequest())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeEmptyCart {
		t.Fatalf("expected empty cart, got %v", err)
	}
}
