package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/shared"
)

// Service manages the locally-owned side of the product catalog.
// Ledger-linked products are maintained by the catalog reconciler and
// are read-only here.
type Service struct {
	repo   catalog.ProductRepository
	logger *zap.Logger
}

// NewService creates a catalog service
func NewService(repo catalog.ProductRepository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Create persists a new locally-owned product
func (s *Service) Create(ctx context.Context, req CreateProductRequest) (*catalog.Product, error) {
	p, err := catalog.NewProduct(req.Name, req.SKU, req.Unit, req.UnitPrice)
	if err != nil {
		return nil, err
	}
	if req.ReorderPoint.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Reorder point cannot be negative")
	}
	p.Description = strings.TrimSpace(req.Description)
	p.ReorderPoint = req.ReorderPoint

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, shared.NewDomainError("PERSISTENCE_FAILURE", "Failed to persist product: "+err.Error())
	}

	s.logger.Info("product created",
		zap.String("product_id", p.ID.String()),
		zap.String("name", p.Name))
	return p, nil
}

// Get loads one product
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns a page of products matching the filter
func (s *Service) List(ctx context.Context, filter ListFilter) (*shared.Paginated[catalog.Product], error) {
	sf := filter.toShared()
	items, err := s.repo.FindAll(ctx, sf)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, sf)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(items, total, sf.Page, sf.PageSize)
	return &page, nil
}
