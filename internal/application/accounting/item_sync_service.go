package accounting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wms/backend/internal/domain/accounting"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/shared"
)

// itemPageSize is the page size used when walking the remote catalog
const itemPageSize = 100

// ItemSyncFailure records one item that could not be synced
type ItemSyncFailure struct {
	ItemID   string `json:"item_id"`
	ItemName string `json:"item_name"`
	Reason   string `json:"reason"`
}

// ItemSyncResult summarizes one catalog reconciliation run
type ItemSyncResult struct {
	Synced   int               `json:"synced"`
	Created  int               `json:"created"`
	Updated  int               `json:"updated"`
	Skipped  int               `json:"skipped"`
	Failures []ItemSyncFailure `json:"failures,omitempty"`
}

// ItemSyncService reconciles the local product catalog against the
// ledger's item list. Runs are idempotent: items are matched on their
// remote id, so repeated runs update rather than duplicate.
type ItemSyncService struct {
	provider accounting.LedgerProvider
	conns    accounting.ConnectionRepository
	products catalog.ProductRepository
	refresh  *TokenRefreshService
	logger   *zap.Logger
}

// NewItemSyncService creates a catalog reconciliation service
func NewItemSyncService(provider accounting.LedgerProvider, conns accounting.ConnectionRepository, products catalog.ProductRepository, refresh *TokenRefreshService, logger *zap.Logger) *ItemSyncService {
	return &ItemSyncService{
		provider: provider,
		conns:    conns,
		products: products,
		refresh:  refresh,
		logger:   logger,
	}
}

// SyncItems walks the remote catalog and creates or updates local
// products. A failure on one item is recorded and the run continues;
// each item is either fully written or left untouched.
func (s *ItemSyncService) SyncItems(ctx context.Context) (*ItemSyncResult, error) {
	conns, err := s.conns.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(conns) == 0 {
		return nil, accounting.ErrNoActiveConnection
	}
	conn := &conns[0]

	if err := s.refresh.EnsureFreshToken(ctx, conn); err != nil {
		return nil, fmt.Errorf("%w: %v", accounting.ErrRefreshFailed, err)
	}

	result := &ItemSyncResult{}
	startPos := 1
	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		page, err := s.provider.QueryItems(ctx, conn.AccessToken, conn.RealmID, startPos, itemPageSize)
		if err != nil {
			conn.RecordError(err.Error())
			if saveErr := s.conns.Save(ctx, conn); saveErr != nil {
				s.logger.Error("failed to record sync error",
					zap.String("realm_id", conn.RealmID),
					zap.Error(saveErr))
			}
			return result, err
		}

		for i := range page.Items {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			s.syncItem(ctx, &page.Items[i], result)
		}

		if len(page.Items) < itemPageSize {
			break
		}
		startPos += itemPageSize
	}

	conn.RecordSync(time.Now())
	if err := s.conns.Save(ctx, conn); err != nil {
		s.logger.Error("failed to record sync timestamp",
			zap.String("realm_id", conn.RealmID),
			zap.Error(err))
	}

	s.logger.Info("catalog sync finished",
		zap.String("realm_id", conn.RealmID),
		zap.Int("synced", result.Synced),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", len(result.Failures)))
	return result, nil
}

func (s *ItemSyncService) syncItem(ctx context.Context, item *accounting.LedgerItem, result *ItemSyncResult) {
	if !item.Type.IsTrackable() {
		result.Skipped++
		return
	}

	existing, err := s.products.FindByQBItemID(ctx, item.ID)
	switch {
	case err == nil:
		applyLedgerItem(existing, item)
		if err := s.products.Update(ctx, existing); err != nil {
			result.Failures = append(result.Failures, ItemSyncFailure{
				ItemID: item.ID, ItemName: item.Name, Reason: err.Error(),
			})
			return
		}
		result.Updated++

	case errors.Is(err, shared.ErrNotFound):
		p := &catalog.Product{
			BaseEntity: shared.NewBaseEntity(),
			QBItemID:   &item.ID,
		}
		applyLedgerItem(p, item)
		if err := s.products.Create(ctx, p); err != nil {
			result.Failures = append(result.Failures, ItemSyncFailure{
				ItemID: item.ID, ItemName: item.Name, Reason: err.Error(),
			})
			return
		}
		result.Created++

	default:
		result.Failures = append(result.Failures, ItemSyncFailure{
			ItemID: item.ID, ItemName: item.Name, Reason: err.Error(),
		})
		return
	}

	result.Synced++
}

// applyLedgerItem maps remote fields onto the local product, filling
// defaults where the ledger omits a value
func applyLedgerItem(p *catalog.Product, item *accounting.LedgerItem) {
	p.Name = item.Name
	p.SKU = item.SKU
	p.Description = item.Description
	p.UnitPrice = item.UnitPrice
	p.IsActive = item.Active

	if item.Unit != "" {
		p.Unit = item.Unit
	} else if p.Unit == "" {
		p.Unit = catalog.DefaultUnit
	}

	if item.ReorderPoint != nil {
		p.ReorderPoint = *item.ReorderPoint
	}

	p.Touch()
}
