package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wms/backend/internal/domain/order"
	"github.com/wms/backend/internal/domain/shared"
)

// CreateOrderRequest carries a new order with its lines.
// OrderNumber is optional; when empty a sequential number is assigned.
type CreateOrderRequest struct {
	OrderNumber  string
	CustomerID   *uuid.UUID
	CustomerName string
	Notes        string
	DueDate      *time.Time
	Lines        []CreateOrderLine
}

// CreateOrderLine is one requested line item
type CreateOrderLine struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// TransitionRequest asks to move an order to a new production status
type TransitionRequest struct {
	Status order.ProductionStatus
	Reason *string
	Notes  *string
}

// ListFilter narrows and pages the order list
type ListFilter struct {
	Status   *order.ProductionStatus
	Customer string
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
	if f.Status != nil {
		filter.Filters["production_status"] = string(*f.Status)
	}
	filter.Search = f.Customer
	return filter
}
