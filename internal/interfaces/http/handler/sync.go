package handler

import (
	"github.com/gin-gonic/gin"

	accountingapp "github.com/wms/backend/internal/application/accounting"
	"github.com/wms/backend/internal/interfaces/http/middleware"
)

// SyncHandler exposes the scheduled and manual synchronization triggers
type SyncHandler struct {
	BaseHandler
	refresh    *accountingapp.TokenRefreshService
	items      *accountingapp.ItemSyncService
	cronSecret string
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(refresh *accountingapp.TokenRefreshService, items *accountingapp.ItemSyncService, cronSecret string) *SyncHandler {
	return &SyncHandler{
		refresh:    refresh,
		items:      items,
		cronSecret: cronSecret,
	}
}

// RegisterRoutes registers the sync routes.
// The token refresh trigger is guarded by the cron secret; the item
// sync trigger requires an admin token and is wired by the router with
// auth middleware in front.
func (h *SyncHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sync := rg.Group("/sync")
	{
		sync.GET("/refresh-tokens", h.DescribeRefreshTokens)
		sync.POST("/refresh-tokens", middleware.CronSecret(h.cronSecret), h.RefreshTokens)
	}
}

// RegisterAdminRoutes registers sync routes that need an authenticated
// admin
func (h *SyncHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	sync := rg.Group("/sync")
	{
		sync.POST("/items", h.SyncItems)
	}
}

// DescribeRefreshTokens handles GET /sync/refresh-tokens. Schedulers
// probe the route with GET before wiring it up, so the read variant
// answers without triggering a sweep.
func (h *SyncHandler) DescribeRefreshTokens(c *gin.Context) {
	h.Success(c, gin.H{
		"endpoint":    "/sync/refresh-tokens",
		"method":      "POST",
		"description": "Refreshes ledger access tokens that expire within the next 30 minutes",
	})
}

// RefreshTokens handles POST /sync/refresh-tokens.
// One connection failing does not stop the sweep, so the response is
// 200 with per-connection outcomes.
func (h *SyncHandler) RefreshTokens(c *gin.Context) {
	report, err := h.refresh.RefreshAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// SyncItems handles POST /sync/items
func (h *SyncHandler) SyncItems(c *gin.Context) {
	result, err := h.items.SyncItems(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
