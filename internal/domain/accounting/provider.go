package accounting

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ItemType classifies a remote catalog item
type ItemType string

const (
	ItemTypeInventory    ItemType = "Inventory"
	ItemTypeNonInventory ItemType = "NonInventory"
	ItemTypeService      ItemType = "Service"
	ItemTypeCategory     ItemType = "Category"
)

// IsTrackable reports whether the item type maps to a stock product.
// Service items, categories and anything unrecognized are skipped.
func (t ItemType) IsTrackable() bool {
	return t == ItemTypeInventory || t == ItemTypeNonInventory
}

// TokenSet is an access/refresh token pair with its absolute expiry
type TokenSet struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// CompanyInfo is the company metadata fetched after authorization
type CompanyInfo struct {
	CompanyName string
	Country     string
}

// LedgerItem is one catalog item as the remote ledger reports it.
// Unit and ReorderPoint are optional on the remote side.
type LedgerItem struct {
	ID           string
	Name         string
	SKU          string
	Description  string
	Type         ItemType
	UnitPrice    decimal.Decimal
	Unit         string
	ReorderPoint *decimal.Decimal
	Active       bool
}

// ItemPage is one page of a remote catalog query
type ItemPage struct {
	Items      []LedgerItem
	StartPos   int
	MaxResults int
}

// LedgerProvider is the port to the external accounting ledger.
// Implementations live in infrastructure and map transport failures
// to the sentinel errors in this package.
type LedgerProvider interface {
	AuthorizationURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*TokenSet, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*TokenSet, error)
	FetchCompanyInfo(ctx context.Context, accessToken, realmID string) (*CompanyInfo, error)
	QueryItems(ctx context.Context, accessToken, realmID string, startPos, pageSize int) (*ItemPage, error)
}

// StateStore issues and consumes single-use OAuth state values.
// Consume must report true at most once per saved state.
type StateStore interface {
	Save(ctx context.Context, state string, ttl time.Duration) error
	Consume(ctx context.Context, state string) (bool, error)
}
