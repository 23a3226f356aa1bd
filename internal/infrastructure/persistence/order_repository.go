package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wms/backend/internal/domain/order"
	"github.com/wms/backend/internal/domain/shared"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID, with lines
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("line_number ASC") }).
		First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindAll finds orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.applyFilter(r.db.WithContext(ctx).Model(&order.Order{}), filter)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&order.Order{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Insert writes the order row without its lines
func (r *GormOrderRepository) Insert(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Omit("Lines").Create(o).Error
}

// InsertLines writes all lines in one batch
func (r *GormOrderRepository) InsertLines(ctx context.Context, lines []order.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&lines).Error
}

// HardDelete removes the order row and any lines. It exists as the
// compensation step of a failed create.
func (r *GormOrderRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&order.OrderLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order.Order{}, "id = ?", id).Error
	})
}

// UpdateStatus applies the field delta as a single-row update and
// appends the audit row in the same transaction.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from order.ProductionStatus, delta order.StatusDelta) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"production_status": delta.Status,
			"updated_by":        delta.UpdatedBy,
		}
		switch {
		case delta.ClearHoldReason:
			updates["hold_reason"] = nil
		case delta.HoldReason != nil:
			updates["hold_reason"] = *delta.HoldReason
		}
		if delta.Notes != nil {
			updates["production_notes"] = *delta.Notes
		}

		result := tx.Model(&order.Order{}).
			Where("id = ? AND production_status = ?", id, from).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		change := order.StatusChange{
			BaseEntity: shared.NewBaseEntity(),
			OrderID:    id,
			FromStatus: from,
			ToStatus:   delta.Status,
			ChangedBy:  delta.UpdatedBy,
			Reason:     delta.HoldReason,
		}
		return tx.Create(&change).Error
	})
}

// NextOrderNumber derives the next sequential number from the current
// row count. Format: ORD-NNNNN. Concurrent callers can derive the same
// number; the unique index on order_number rejects the loser.
func (r *GormOrderRepository) NextOrderNumber(ctx context.Context) (string, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&order.Order{}).Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD-%05d", count+1), nil
}

// FindStatusHistory returns the audit trail for an order, oldest first
func (r *GormOrderRepository) FindStatusHistory(ctx context.Context, orderID uuid.UUID) ([]order.StatusChange, error) {
	var history []order.StatusChange
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&history).Error; err != nil {
		return nil, err
	}
	return history, nil
}

// applyFilter applies filter options to the query
func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, OrderSortFields, "created_at")
	dir := ValidateSortOrder(filter.OrderDir)
	return query.Order(fmt.Sprintf("%s %s", orderBy, dir))
}

// applyFilterWithoutPagination applies only the narrowing clauses
func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if status, ok := filter.Filters["production_status"]; ok {
		query = query.Where("production_status = ?", status)
	}
	if filter.Search != "" {
		query = query.Where("customer_name ILIKE ?", "%"+filter.Search+"%")
	}
	return query
}
