package accounting

import (
	"context"

	"github.com/google/uuid"
)

// ConnectionRepository is the persistence port for ledger connections.
// Upsert inserts or replaces the row for the connection's realm.
type ConnectionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Connection, error)
	FindByRealmID(ctx context.Context, realmID string) (*Connection, error)
	FindActive(ctx context.Context) ([]Connection, error)
	Upsert(ctx context.Context, c *Connection) error
	Save(ctx context.Context, c *Connection) error
	Delete(ctx context.Context, id uuid.UUID) error
}
