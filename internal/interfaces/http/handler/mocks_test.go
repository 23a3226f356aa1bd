package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/wms/backend/internal/domain/accounting"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/order"
	"github.com/wms/backend/internal/domain/shared"
)

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *mockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *mockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOrderRepository) Insert(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockOrderRepository) InsertLines(ctx context.Context, lines []order.OrderLine) error {
	return m.Called(ctx, lines).Error(0)
}

func (m *mockOrderRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from order.ProductionStatus, delta order.StatusDelta) error {
	return m.Called(ctx, id, from, delta).Error(0)
}

func (m *mockOrderRepository) NextOrderNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockOrderRepository) FindStatusHistory(ctx context.Context, orderID uuid.UUID) ([]order.StatusChange, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.StatusChange), args.Error(1)
}

type mockLedgerProvider struct {
	mock.Mock
}

func (m *mockLedgerProvider) AuthorizationURL(state string) string {
	return m.Called(state).String(0)
}

func (m *mockLedgerProvider) ExchangeCode(ctx context.Context, code string) (*accounting.TokenSet, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.TokenSet), args.Error(1)
}

func (m *mockLedgerProvider) RefreshTokens(ctx context.Context, refreshToken string) (*accounting.TokenSet, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.TokenSet), args.Error(1)
}

func (m *mockLedgerProvider) FetchCompanyInfo(ctx context.Context, accessToken, realmID string) (*accounting.CompanyInfo, error) {
	args := m.Called(ctx, accessToken, realmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.CompanyInfo), args.Error(1)
}

func (m *mockLedgerProvider) QueryItems(ctx context.Context, accessToken, realmID string, startPos, pageSize int) (*accounting.ItemPage, error) {
	args := m.Called(ctx, accessToken, realmID, startPos, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.ItemPage), args.Error(1)
}

type mockStateStore struct {
	mock.Mock
}

func (m *mockStateStore) Save(ctx context.Context, state string, ttl time.Duration) error {
	return m.Called(ctx, state, ttl).Error(0)
}

func (m *mockStateStore) Consume(ctx context.Context, state string) (bool, error) {
	args := m.Called(ctx, state)
	return args.Bool(0), args.Error(1)
}

type mockConnectionRepository struct {
	mock.Mock
}

func (m *mockConnectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.Connection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Connection), args.Error(1)
}

func (m *mockConnectionRepository) FindByRealmID(ctx context.Context, realmID string) (*accounting.Connection, error) {
	args := m.Called(ctx, realmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Connection), args.Error(1)
}

func (m *mockConnectionRepository) FindActive(ctx context.Context) ([]accounting.Connection, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]accounting.Connection), args.Error(1)
}

func (m *mockConnectionRepository) Upsert(ctx context.Context, c *accounting.Connection) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockConnectionRepository) Save(ctx context.Context, c *accounting.Connection) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockConnectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *mockProductRepository) FindByQBItemID(ctx context.Context, qbItemID string) (*catalog.Product, error) {
	args := m.Called(ctx, qbItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *mockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *mockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProductRepository) Create(ctx context.Context, p *catalog.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductRepository) Update(ctx context.Context, p *catalog.Product) error {
	return m.Called(ctx, p).Error(0)
}
