package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/wms/backend/internal/domain/shared"
)

// Repository is the persistence port for orders.
//
// UpdateStatus must apply the delta as a single-row update and append the
// matching StatusChange audit row in the same transaction. HardDelete exists
// only as the compensation step of a failed create; regular deletion goes
// through cancellation.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Insert(ctx context.Context, o *Order) error
	InsertLines(ctx context.Context, lines []OrderLine) error
	HardDelete(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, from ProductionStatus, delta StatusDelta) error
	NextOrderNumber(ctx context.Context) (string, error)
	FindStatusHistory(ctx context.Context, orderID uuid.UUID) ([]StatusChange, error)
}
