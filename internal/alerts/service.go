package alerts

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/nkhandel/dietplanner-backend/internal/mailer"
	"github.com/nkhandel/dietplanner-backend/internal/products"
	"github.com/nkhandel/dietplanner-backend/pkg/config"
	"github.com/nkhandel/dietplanner-backend/pkg/enums"
	pkgerrors "github.com/nkhandel/dietplanner-backend/pkg/errors"
	"github.com/nkhandel/dietplanner-backend/pkg/logger"
)

type repository interface {
	MarkSent(ctx context.Context, kind enums.ProductKind, productID uuid.UUID) (bool, error)
	Reset(ctx context.Context, kind enums.ProductKind, productID uuid.UUID) error
}

type lowStockLister interface {
	ListLowStock(ctx context.Context) ([]products.Product, error)
}

type staffLister interface {
	ListStaffEmails(ctx context.Context) ([]string, error)
}

// Service watches catalogue writes and emails every staff user when a
// product first dips to or below its threshold. One alert per dip: the
// state resets when the product recovers, so the next dip alerts again.
type Service struct {
	repo    repository
	catalog lowStockLister
	staff   staffLister
	mail    mailer.Sender
	logg    *logger.Logger
	cfg     config.AlertsConfig
}

// NewService wires alert dependencies.
func NewService(repo repository, catalog lowStockLister, staff staffLister, mail mailer.Sender, logg *logger.Logger, cfg config.AlertsConfig) (*Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "alerts repository required")
	}
	if staff == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "staff lister required")
	}
	if mail == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "mail sender required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &Service{repo: repo, catalog: catalog, staff: staff, mail: mail, logg: logg, cfg: cfg}, nil
}

// ProductSaved is the post-write hook invoked after every catalogue write.
// It never returns an error to the caller; alerting is observational and
// must not fail the write that triggered it.
func (s *Service) ProductSaved(ctx context.Context, product *products.Product) {
	if product == nil {
		return
	}
	if _, err := s.evaluate(ctx, product); err != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"product_kind": product.Kind.String(),
			"product_id":   product.ID.String(),
		})
		s.logg.Error(ctx, "stock alert evaluation failed", err)
	}
}

// Sweep re-evaluates every product currently at or below its threshold.
// Run periodically to catch alerts missed while the process was down.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	if s.catalog == nil {
		return 0, pkgerrors.New(pkgerrors.CodeDependency, "catalog lister required")
	}
	low, err := s.catalog.ListLowStock(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list low stock products")
	}

	var errs error
	sent := 0
	for i := range low {
		fired, err := s.evaluate(ctx, &low[i])
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if fired {
			sent++
		}
	}
	return sent, errs
}

func (s *Service) evaluate(ctx context.Context, product *products.Product) (bool, error) {
	if !product.IsLowStock() {
		return false, s.repo.Reset(ctx, product.Kind, product.ID)
	}

	// Recipients are resolved before the dip is marked sent: with nobody to
	// mail, the edge stays unconsumed and fires once a staff user exists.
	recipients, err := s.recipients(ctx)
	if err != nil {
		return false, err
	}
	if len(recipients) == 0 {
		s.logg.Warn(ctx, "no staff recipients for low stock alert")
		return false, nil
	}

	newly, err := s.repo.MarkSent(ctx, product.Kind, product.ID)
	if err != nil || !newly {
		return false, err
	}

	s.mail.Enqueue(mailer.LowStockMessage(recipients, product.Name, product.StockQuantity, product.LowStockThreshold))
	ctx = s.logg.WithFields(ctx, map[string]any{
		"product_kind": product.Kind.String(),
		"product_id":   product.ID.String(),
		"stock":        product.StockQuantity,
		"recipients":   len(recipients),
	})
	s.logg.Info(ctx, "low stock alert sent")
	return true, nil
}

// recipients is every staff user's email, plus the optional shared mailbox
// from config when it is not already on the list.
func (s *Service) recipients(ctx context.Context) ([]string, error) {
	emails, err := s.staff.ListStaffEmails(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list staff emails")
	}
	if s.cfg.Recipient == "" {
		return emails, nil
	}
	for _, email := range emails {
		if email == s.cfg.Recipient {
			return emails, nil
		}
	}
	return append(emails, s.cfg.Recipient), nil
}
