package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/wms/backend/internal/domain/accounting"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/shared"
)

// MockLedgerProvider is a mock implementation of accounting.LedgerProvider
type MockLedgerProvider struct {
	mock.Mock
}

func (m *MockLedgerProvider) AuthorizationURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockLedgerProvider) ExchangeCode(ctx context.Context, code string) (*accounting.TokenSet, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.TokenSet), args.Error(1)
}

func (m *MockLedgerProvider) RefreshTokens(ctx context.Context, refreshToken string) (*accounting.TokenSet, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.TokenSet), args.Error(1)
}

func (m *MockLedgerProvider) FetchCompanyInfo(ctx context.Context, accessToken, realmID string) (*accounting.CompanyInfo, error) {
	args := m.Called(ctx, accessToken, realmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.CompanyInfo), args.Error(1)
}

func (m *MockLedgerProvider) QueryItems(ctx context.Context, accessToken, realmID string, startPos, pageSize int) (*accounting.ItemPage, error) {
	args := m.Called(ctx, accessToken, realmID, startPos, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.ItemPage), args.Error(1)
}

// MockConnectionRepository is a mock implementation of accounting.ConnectionRepository
type MockConnectionRepository struct {
	mock.Mock
}

func (m *MockConnectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.Connection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Connection), args.Error(1)
}

func (m *MockConnectionRepository) FindByRealmID(ctx context.Context, realmID string) (*accounting.Connection, error) {
	args := m.Called(ctx, realmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Connection), args.Error(1)
}

func (m *MockConnectionRepository) FindActive(ctx context.Context) ([]accounting.Connection, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]accounting.Connection), args.Error(1)
}

func (m *MockConnectionRepository) Upsert(ctx context.Context, c *accounting.Connection) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockConnectionRepository) Save(ctx context.Context, c *accounting.Connection) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockConnectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStateStore is a mock implementation of accounting.StateStore
type MockStateStore struct {
	mock.Mock
}

func (m *MockStateStore) Save(ctx context.Context, state string, ttl time.Duration) error {
	args := m.Called(ctx, state, ttl)
	return args.Error(0)
}

func (m *MockStateStore) Consume(ctx context.Context, state string) (bool, error) {
	args := m.Called(ctx, state)
	return args.Bool(0), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByQBItemID(ctx context.Context, qbItemID string) (*catalog.Product, error) {
	args := m.Called(ctx, qbItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, p *catalog.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, p *catalog.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
