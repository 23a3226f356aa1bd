package order

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/domain/order"
	"github.com/wms/backend/internal/domain/shared"
)

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Insert(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) InsertLines(ctx context.Context, lines []order.OrderLine) error {
	args := m.Called(ctx, lines)
	return args.Error(0)
}

func (m *MockOrderRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from order.ProductionStatus, delta order.StatusDelta) error {
	args := m.Called(ctx, id, from, delta)
	return args.Error(0)
}

func (m *MockOrderRepository) NextOrderNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockOrderRepository) FindStatusHistory(ctx context.Context, orderID uuid.UUID) ([]order.StatusChange, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.StatusChange), args.Error(1)
}

func newTestService(repo *MockOrderRepository) *Service {
	return NewService(repo, zap.NewNop())
}

func draftOrder(id uuid.UUID) *order.Order {
	o, _ := order.NewOrder("Acme Corp", nil, uuid.New())
	o.ID = id
	o.OrderNumber = "ORD-00042"
	return o
}

func TestTransition(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	t.Run("order not found", func(t *testing.T) {
		repo := new(MockOrderRepository)
		svc := newTestService(repo)
		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := svc.Transition(ctx, id, TransitionRequest{Status: order.StatusPendingApproval}, actor)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		repo.AssertExpectations(t)
	})

	t.Run("illegal edge reports valid transitions and writes nothing", func(t *testing.T) {
		repo := new(MockOrderRepository)
		svc := newTestService(repo)
		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(draftOrder(id), nil)

		_, err := svc.Transition(ctx, id, TransitionRequest{Status: order.StatusApproved}, actor)

		var transitionErr *order.TransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.ElementsMatch(t,
			[]order.ProductionStatus{order.StatusPendingApproval, order.StatusCancelled},
			transitionErr.Valid)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("legal edge persists delta with actor", func(t *testing.T) {
		repo := new(MockOrderRepository)
		svc := newTestService(repo)
		id := uuid.New()
		o := draftOrder(id)
		updated := draftOrder(id)
		updated.ProductionStatus = order.StatusPendingApproval

		repo.On("FindByID", ctx, id).Return(o, nil).Once()
		repo.On("UpdateStatus", ctx, id, order.StatusDraft, mock.MatchedBy(func(d order.StatusDelta) bool {
			return d.Status == order.StatusPendingApproval && d.UpdatedBy == actor &&
				d.HoldReason == nil && !d.ClearHoldReason
		})).Return(nil)
		repo.On("FindByID", ctx, id).Return(updated, nil).Once()

		result, err := svc.Transition(ctx, id, TransitionRequest{Status: order.StatusPendingApproval}, actor)
		require.NoError(t, err)
		assert.Equal(t, order.StatusPendingApproval, result.ProductionStatus)
		repo.AssertExpectations(t)
	})

	t.Run("on_hold requires a reason", func(t *testing.T) {
		repo := new(MockOrderRepository)
		svc := newTestService(repo)
		id := uuid.New()
		o := draftOrder(id)
		o.ProductionStatus = order.StatusInProduction
		repo.On("FindByID", ctx, id).Return(o, nil)

		_, err := svc.Transition(ctx, id, TransitionRequest{Status: order.StatusOnHold}, actor)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("on_hold stores the reason", func(t *testing.T) {
		repo := new(MockOrderRepository)
		svc := newTestService(repo)
		id := uuid.New()
		o := draftOrder(id)
		o.ProductionStatus = order.StatusInProduction
		reason := "awaiting material"
		held := draftOrder(id)
		held.ProductionStatus = order.StatusOnHold
		held.HoldReason = &reason

		repo.On("FindByID", ctx, id).Return(o, nil).Once()
		repo.On("UpdateStatus", ctx, id, order.StatusInProduction, mock.MatchedBy(func(d order.StatusDelta) bool {
			return d.Status == order.StatusOnHold && d.HoldReason != nil && *d.HoldReason == reason
		})).Return(nil)
		repo.On("FindByID", ctx, id).Return(held, nil).Once()

		result, err := svc.Transition(ctx, id, TransitionRequest{Status: order.StatusOnHold, Reason: &reason}, actor)
		require.NoError(t, err)
		require.NotNil(t, result.HoldReason)
		assert.Equal(t, reason, *result.HoldReason)
		repo.AssertExpectations(t)
	})

	t.Run("leaving on_hold clears the reason", func(t *testing.T) {
		repo := new(MockOrderRepository)
		svc := newTestService(repo)
		id := uuid.New()
		reason := "awaiting material"
		o := draftOrder(id)
		o.ProductionStatus = order.StatusOnHold
		o.HoldReason = &reason
		resumed := draftOrder(id)
		resumed.ProductionStatus = order.StatusInProduction

		repo.On("FindByID", ctx, id).Return(o, nil).Once()
		repo.On("UpdateStatus", ctx, id, order.StatusOnHold, mock.MatchedBy(func(d order.StatusDelta) bool {
			return d.Status == order.StatusInProduction && d.ClearHoldReason && d.HoldReason == nil
		})).Return(nil)
		repo.On("FindByID", ctx, id).Return(resumed, nil).Once()

		result, err := svc.Transition(ctx, id, TransitionRequest{Status: order.StatusInProduction}, actor)
		require.NoError(t, err)
		assert.Nil(t, result.HoldReason)
		repo.AssertExpectations(t)
	})

	t.Run("notes overwrite on any transition", func(t *testing.T) {
		repo := new(MockOrderRepository)
		svc := newTestService(repo)
		id := uuid.New()
		notes := "rush job, confirmed by phone"
		repo.On("FindByID", ctx, id).Return(draftOrder(id), nil)
		repo.On("UpdateStatus", ctx, id, order.StatusDraft, mock.MatchedBy(func(d order.StatusDelta) bool {
			return d.Notes != nil && *d.Notes == notes
		})).Return(nil)

		_, err := svc.Transition(ctx, id, TransitionRequest{Status: order.StatusCancelled, Notes: &notes}, actor)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("storage failure surfaces as persistence error", func(t *testing.T) {
		repo := new(MockOrderRepository)
		svc := newTestService(repo)
		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(draftOrder(id), nil)
		repo.On("UpdateStatus", ctx, id, order.StatusDraft, mock.Anything).
			Return(errors.New("connection reset"))

		_, err := svc.Transition(ctx, id, TransitionRequest{Status: order.StatusCancelled}, actor)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PERSISTENCE_FAILURE", domainErr.Code)
	})
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	threeLines := func() []CreateOrderLine {
		return []CreateOrderLine{
			{ProductID: uuid.New(), ProductName: "Widget", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(10)},
			{ProductID: uuid.New(), ProductName: "Gadget", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(5)},
			{ProductID: uuid.New(), ProductName: "Sprocket", Quantity: decimal.NewFromInt(4), UnitPrice: decimal.NewFromInt(3)},
		}
	}

	t.Run("assigns line numbers and total", func(t *testing.T) {
		repo := new(MockOrderRepository)
		svc := newTestService(repo)

		var inserted *order.Order
		repo.On("NextOrderNumber", ctx).Return("ORD-00007", nil)
		repo.On("Insert", ctx, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) { inserted = args.Get(1).(*order.Order) }).
			Return(nil)
		repo.On("InsertLines", ctx, mock.MatchedBy(func(lines []order.OrderLine) bool {
			if len(lines) != 3 {
				return false
			}
			for i, line := range lines {
				if line.LineNumber != i+1 {
					return false
				}
			}
			return true
		})).Return(nil)
		repo.On("FindByID", ctx, mock.Anything).Return(draftOrder(uuid.New()), nil)

		_, err := svc.Create(ctx, CreateOrderRequest{CustomerName: "Acme Corp", Lines: threeLines()}, actor)
		require.NoError(t, err)
		require.NotNil(t, inserted)
		assert.Equal(t, "ORD-00007", inserted.OrderNumber)
		assert.True(t, inserted.TotalAmount.Equal(decimal.NewFromInt(37)))
		repo.AssertExpectations(t)
	})

	t.Run("keeps a caller-supplied order number", func(t *testing.T) {
		repo := new(MockOrderRepository)
		svc := newTestService(repo)

		repo.On("Insert", ctx, mock.MatchedBy(func(o *order.Order) bool {
			return o.OrderNumber == "CUSTOM-123"
		})).Return(nil)
		repo.On("InsertLines", ctx, mock.Anything).Return(nil)
		repo.On("FindByID", ctx, mock.Anything).Return(draftOrder(uuid.New()), nil)

		_, err := svc.Create(ctx, CreateOrderRequest{
			OrderNumber:  "CUSTOM-123",
			CustomerName: "Acme Corp",
			Lines:        threeLines(),
		}, actor)
		require.NoError(t, err)
		repo.AssertNotCalled(t, "NextOrderNumber", mock.Anything)
	})

	t.Run("line failure compensates the order row", func(t *testing.T) {
		repo := new(MockOrderRepository)
		svc := newTestService(repo)

		var orderID uuid.UUID
		repo.On("NextOrderNumber", ctx).Return("ORD-00008", nil)
		repo.On("Insert", ctx, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) { orderID = args.Get(1).(*order.Order).ID }).
			Return(nil)
		repo.On("InsertLines", ctx, mock.Anything).Return(errors.New("unique constraint violated"))
		repo.On("HardDelete", ctx, mock.MatchedBy(func(id uuid.UUID) bool { return id == orderID })).
			Return(nil)

		_, err := svc.Create(ctx, CreateOrderRequest{CustomerName: "Acme Corp", Lines: threeLines()}, actor)

		assert.ErrorIs(t, err, ErrPartialCreate)
		assert.Contains(t, err.Error(), "unique constraint violated")
		repo.AssertExpectations(t)
	})

	t.Run("creates a lineless order", func(t *testing.T) {
		repo := new(MockOrderRepository)
		svc := newTestService(repo)

		repo.On("NextOrderNumber", ctx).Return("ORD-00009", nil)
		repo.On("Insert", ctx, mock.MatchedBy(func(o *order.Order) bool {
			return len(o.Lines) == 0 && o.TotalAmount.IsZero()
		})).Return(nil)
		repo.On("FindByID", ctx, mock.Anything).Return(draftOrder(uuid.New()), nil)

		_, err := svc.Create(ctx, CreateOrderRequest{CustomerName: "Acme Corp"}, actor)
		require.NoError(t, err)
		repo.AssertNotCalled(t, "InsertLines", mock.Anything, mock.Anything)
	})
}
