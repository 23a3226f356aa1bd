package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wms/backend/internal/domain/shared"
)

// Order is the aggregate root for a production order
type Order struct {
	shared.BaseEntity
	OrderNumber      string           `gorm:"type:varchar(30);not null;uniqueIndex"`
	CustomerID       *uuid.UUID       `gorm:"type:uuid;index"`
	CustomerName     string           `gorm:"type:varchar(200);not null"`
	ProductionStatus ProductionStatus `gorm:"type:varchar(30);not null;default:'draft';index"`
	TotalAmount      decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	HoldReason       *string          `gorm:"type:text"`
	ProductionNotes  string           `gorm:"type:text"`
	DueDate          *time.Time
	CreatedBy        uuid.UUID   `gorm:"type:uuid;not null"`
	UpdatedBy        uuid.UUID   `gorm:"type:uuid;not null"`
	Lines            []OrderLine `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderLine is a single line item on an order.
// LineNumber is 1-based and unique within the order.
type OrderLine struct {
	shared.BaseEntity
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_order_line_number,priority:1"`
	LineNumber  int             `gorm:"not null;uniqueIndex:idx_order_line_number,priority:2"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (OrderLine) TableName() string {
	return "order_lines"
}

// StatusChange is the audit record appended on every status update
type StatusChange struct {
	shared.BaseEntity
	OrderID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	FromStatus ProductionStatus `gorm:"type:varchar(30);not null"`
	ToStatus   ProductionStatus `gorm:"type:varchar(30);not null"`
	ChangedBy  uuid.UUID        `gorm:"type:uuid;not null"`
	Reason     *string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (StatusChange) TableName() string {
	return "order_status_history"
}

// NewOrder creates an order in draft with no lines
func NewOrder(customerName string, customerID *uuid.UUID, createdBy uuid.UUID) (*Order, error) {
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer name is required")
	}
	return &Order{
		BaseEntity:       shared.NewBaseEntity(),
		CustomerID:       customerID,
		CustomerName:     customerName,
		ProductionStatus: StatusDraft,
		TotalAmount:      decimal.Zero,
		CreatedBy:        createdBy,
		UpdatedBy:        createdBy,
	}, nil
}

// NewOrderLine builds a line for the given order position
func NewOrderLine(orderID uuid.UUID, lineNumber int, productID uuid.UUID, productName string, quantity, unitPrice decimal.Decimal) (*OrderLine, error) {
	if lineNumber < 1 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Line number must be positive")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity must be greater than zero")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unit price cannot be negative")
	}
	return &OrderLine{
		BaseEntity:  shared.NewBaseEntity(),
		OrderID:     orderID,
		LineNumber:  lineNumber,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Amount:      quantity.Mul(unitPrice),
	}, nil
}

// RecalculateTotal sums line amounts into TotalAmount
func (o *Order) RecalculateTotal() {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.Amount)
	}
	o.TotalAmount = total
}

// StatusDelta is the single-row field update applied on a transition.
// HoldReason distinguishes "set" from "clear": Clear wins over Reason.
type StatusDelta struct {
	Status          ProductionStatus
	UpdatedBy       uuid.UUID
	HoldReason      *string
	ClearHoldReason bool
	Notes           *string
}
