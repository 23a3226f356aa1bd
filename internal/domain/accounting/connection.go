package accounting

import (
	"time"

	"github.com/wms/backend/internal/domain/shared"
)

// Connection holds the OAuth credentials and sync state for one
// QuickBooks company (realm). At most one row exists per realm.
type Connection struct {
	shared.BaseEntity
	RealmID        string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	CompanyName    string    `gorm:"type:varchar(200);not null"`
	AccessToken    string    `gorm:"type:text;not null"`
	RefreshToken   string    `gorm:"type:text;not null"`
	TokenExpiresAt time.Time `gorm:"not null"`
	IsActive       bool      `gorm:"not null;default:true"`
	LastError      *string   `gorm:"type:text"`
	ErrorCount     int       `gorm:"not null;default:0"`
	LastSyncAt     *time.Time
}

// TableName returns the table name for GORM
func (Connection) TableName() string {
	return "quickbooks_connections"
}

// NewConnection creates an active connection from a completed handshake
func NewConnection(realmID, companyName string, tokens TokenSet) *Connection {
	c := &Connection{
		BaseEntity:  shared.NewBaseEntity(),
		RealmID:     realmID,
		CompanyName: companyName,
		IsActive:    true,
	}
	c.ApplyTokens(tokens)
	return c
}

// ApplyTokens installs a fresh token pair and clears any recorded
// error state, since a successful grant proves the connection works.
func (c *Connection) ApplyTokens(tokens TokenSet) {
	c.AccessToken = tokens.AccessToken
	c.RefreshToken = tokens.RefreshToken
	c.TokenExpiresAt = tokens.ExpiresAt
	c.LastError = nil
	c.ErrorCount = 0
	c.Touch()
}

// RecordError notes a failed remote interaction without deactivating
func (c *Connection) RecordError(msg string) {
	c.LastError = &msg
	c.ErrorCount++
	c.Touch()
}

// RecordSync marks a successful catalog sync
func (c *Connection) RecordSync(at time.Time) {
	c.LastSyncAt = &at
	c.Touch()
}

// NeedsRefresh reports whether the access token expires within the
// given window (or already has)
func (c *Connection) NeedsRefresh(within time.Duration) bool {
	return time.Now().Add(within).After(c.TokenExpiresAt)
}
