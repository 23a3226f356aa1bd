package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wms/backend/internal/domain/accounting"
	"github.com/wms/backend/internal/domain/shared"
)

// GormConnectionRepository implements accounting.ConnectionRepository using GORM
type GormConnectionRepository struct {
	db *gorm.DB
}

// NewGormConnectionRepository creates a new GormConnectionRepository
func NewGormConnectionRepository(db *gorm.DB) *GormConnectionRepository {
	return &GormConnectionRepository{db: db}
}

// FindByID finds a connection by its ID
func (r *GormConnectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.Connection, error) {
	var c accounting.Connection
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByRealmID finds the connection for a QuickBooks company
func (r *GormConnectionRepository) FindByRealmID(ctx context.Context, realmID string) (*accounting.Connection, error) {
	var c accounting.Connection
	if err := r.db.WithContext(ctx).
		Where("realm_id = ?", realmID).
		First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindActive returns all active connections, oldest first
func (r *GormConnectionRepository) FindActive(ctx context.Context) ([]accounting.Connection, error) {
	var conns []accounting.Connection
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&conns).Error; err != nil {
		return nil, err
	}
	return conns, nil
}

// Upsert inserts the connection or, when the realm already has a row,
// replaces its credentials and metadata in place
func (r *GormConnectionRepository) Upsert(ctx context.Context, c *accounting.Connection) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "realm_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"company_name", "access_token", "refresh_token", "token_expires_at",
			"is_active", "last_error", "error_count", "updated_at",
		}),
	}).Create(c).Error
}

// Save updates all fields of an existing connection
func (r *GormConnectionRepository) Save(ctx context.Context, c *accounting.Connection) error {
	result := r.db.WithContext(ctx).Model(c).Select("*").Omit("id", "created_at").Updates(c)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a connection row
func (r *GormConnectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&accounting.Connection{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
