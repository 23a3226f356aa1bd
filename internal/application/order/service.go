package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/domain/order"
	"github.com/wms/backend/internal/domain/shared"
)

// ErrPartialCreate is returned when order lines could not be written and
// the order row was rolled back by compensation.
var ErrPartialCreate = shared.NewDomainError("PARTIAL_CREATE_FAILURE", "Order creation failed while writing lines; no order was persisted")

// Service orchestrates the order lifecycle
type Service struct {
	repo   order.Repository
	logger *zap.Logger
}

// NewService creates an order lifecycle service
func NewService(repo order.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Get loads one order with its lines
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns a page of orders matching the filter
func (s *Service) List(ctx context.Context, filter ListFilter) (*shared.Paginated[order.Order], error) {
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

// History returns the status audit trail for an order
func (s *Service) History(ctx context.Context, id uuid.UUID) ([]order.StatusChange, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.FindStatusHistory(ctx, id)
}

// Create persists a new order and its lines as a two-phase write. When
// the line insert fails the order row is deleted again, so the caller
// observes either the complete order or nothing.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest, actorID uuid.UUID) (*order.Order, error) {
	o, err := order.NewOrder(req.CustomerName, req.CustomerID, actorID)
	if err != nil {
		return nil, err
	}
	o.ProductionNotes = req.Notes
	o.DueDate = req.DueDate

	if number := strings.TrimSpace(req.OrderNumber); number != "" {
		o.OrderNumber = number
	} else {
		number, err := s.repo.NextOrderNumber(ctx)
		if err != nil {
			return nil, shared.NewDomainError("PERSISTENCE_FAILURE", "Failed to allocate an order number: "+err.Error())
		}
		o.OrderNumber = number
	}

	lines := make([]order.OrderLine, 0, len(req.Lines))
	for i, reqLine := range req.Lines {
		line, err := order.NewOrderLine(o.ID, i+1, reqLine.ProductID, reqLine.ProductName, reqLine.Quantity, reqLine.UnitPrice)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}
	o.Lines = lines
	o.RecalculateTotal()

	if err := s.repo.Insert(ctx, o); err != nil {
		return nil, shared.NewDomainError("PERSISTENCE_FAILURE", "Failed to persist order: "+err.Error())
	}

	// A lineless order is a valid draft; there is nothing to bulk-insert.
	if len(lines) > 0 {
		if err := s.repo.InsertLines(ctx, lines); err != nil {
			s.logger.Error("order line insert failed, compensating",
				zap.String("order_id", o.ID.String()),
				zap.String("order_number", o.OrderNumber),
				zap.Error(err))
			if delErr := s.repo.HardDelete(ctx, o.ID); delErr != nil {
				s.logger.Error("compensating delete failed, order row may be orphaned",
					zap.String("order_id", o.ID.String()),
					zap.Error(delErr))
			}
			return nil, fmt.Errorf("%w: %v", ErrPartialCreate, err)
		}
	}

	created, err := s.repo.FindByID(ctx, o.ID)
	if err != nil {
		return nil, shared.NewDomainError("PERSISTENCE_FAILURE", "Failed to read back created order: "+err.Error())
	}
	return created, nil
}

// Transition moves an order to a new production status. The repository
// appends the audit row as part of the same write.
func (s *Service) Transition(ctx context.Context, id uuid.UUID, req TransitionRequest, actorID uuid.UUID) (*order.Order, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := order.ValidateTransition(o.ProductionStatus, req.Status); err != nil {
		return nil, err
	}

	delta := order.StatusDelta{
		Status:    req.Status,
		UpdatedBy: actorID,
		Notes:     req.Notes,
	}
	switch {
	case req.Status == order.StatusOnHold:
		if req.Reason == nil || strings.TrimSpace(*req.Reason) == "" {
			return nil, shared.NewDomainError("INVALID_INPUT", "A hold reason is required when placing an order on hold")
		}
		delta.HoldReason = req.Reason
	case o.ProductionStatus == order.StatusOnHold:
		delta.ClearHoldReason = true
	}

	if err := s.repo.UpdateStatus(ctx, id, o.ProductionStatus, delta); err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, shared.NewDomainError("PERSISTENCE_FAILURE", "Failed to update order status: "+err.Error())
	}

	s.logger.Info("order status changed",
		zap.String("order_id", id.String()),
		zap.String("from", o.ProductionStatus.String()),
		zap.String("to", req.Status.String()),
		zap.String("actor", actorID.String()))

	return s.repo.FindByID(ctx, id)
}
