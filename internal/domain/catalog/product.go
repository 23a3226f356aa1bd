package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wms/backend/internal/domain/shared"
)

// DefaultUnit is applied when a remote catalog item carries no unit
const DefaultUnit = "ea"

// Product represents a stock item in the local catalog.
//
// QBItemID links the product to its QuickBooks item. It is nil for
// locally-owned products, which the ledger reconciler never touches,
// and unique across the table when set.
type Product struct {
	shared.BaseEntity
	Name         string          `gorm:"type:varchar(200);not null"`
	SKU          string          `gorm:"type:varchar(100);index"`
	Description  string          `gorm:"type:text"`
	Unit         string          `gorm:"type:varchar(20);not null;default:'ea'"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReorderPoint decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	QBItemID     *string         `gorm:"type:varchar(50);uniqueIndex"`
	IsActive     bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a locally-owned active product
func NewProduct(name, sku, unit string, unitPrice decimal.Decimal) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product name is required")
	}
	if unit == "" {
		unit = DefaultUnit
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unit price cannot be negative")
	}
	return &Product{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         name,
		SKU:          strings.TrimSpace(sku),
		Unit:         unit,
		UnitPrice:    unitPrice,
		ReorderPoint: decimal.Zero,
		IsActive:     true,
	}, nil
}

// IsLedgerLinked reports whether the product mirrors a remote catalog item
func (p *Product) IsLedgerLinked() bool {
	return p.QBItemID != nil && *p.QBItemID != ""
}
