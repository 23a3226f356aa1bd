package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/wms/backend/internal/domain/shared"
)

// CreateProductRequest carries a new locally-owned product. Unit falls
// back to the catalog default when empty.
type CreateProductRequest struct {
	Name         string
	SKU          string
	Description  string
	Unit         string
	UnitPrice    decimal.Decimal
	ReorderPoint decimal.Decimal
}

// ListFilter narrows and pages the product list
type ListFilter struct {
	Search   string
	Active   *bool
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
}

func (f ListFilter) toShared() shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	if f.Active != nil {
		filter.Filters["is_active"] = *f.Active
	}
	filter.Search = f.Search
	return filter
}
