package handler

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	accountingapp "github.com/wms/backend/internal/application/accounting"
	"github.com/wms/backend/internal/domain/accounting"
	"github.com/wms/backend/internal/interfaces/http/dto"
)

// stateCookieName holds the OAuth state between connect and callback so
// the callback can verify the browser that finishes the handshake is
// the one that started it.
const stateCookieName = "qb_oauth_state"

const stateCookieMaxAge = 10 * time.Minute

// QuickBooksHandler handles the ledger connection endpoints
type QuickBooksHandler struct {
	BaseHandler
	oauth        *accountingapp.OAuthService
	adminPageURL string
	secureCookie bool
}

// NewQuickBooksHandler creates a new QuickBooksHandler.
// adminPageURL is where the browser lands after the OAuth callback.
func NewQuickBooksHandler(oauth *accountingapp.OAuthService, adminPageURL string, secureCookie bool) *QuickBooksHandler {
	return &QuickBooksHandler{
		oauth:        oauth,
		adminPageURL: adminPageURL,
		secureCookie: secureCookie,
	}
}

// RegisterRoutes registers the QuickBooks routes
func (h *QuickBooksHandler) RegisterRoutes(rg *gin.RouterGroup) {
	qb := rg.Group("/quickbooks")
	{
		qb.GET("/connect", h.Connect)
		qb.GET("/callback", h.Callback)
		qb.GET("/connections", h.Connections)
		qb.DELETE("/connections/:id", h.Disconnect)
	}
}

// ConnectionResponse represents a ledger connection in API responses.
// Token values are never included.
type ConnectionResponse struct {
	ID             string     `json:"id"`
	RealmID        string     `json:"realm_id"`
	CompanyName    string     `json:"company_name"`
	IsActive       bool       `json:"is_active"`
	TokenExpiresAt time.Time  `json:"token_expires_at"`
	LastError      *string    `json:"last_error,omitempty"`
	ErrorCount     int        `json:"error_count"`
	LastSyncAt     *time.Time `json:"last_sync_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Connect handles GET /quickbooks/connect.
// Issues a single-use state, pins it in an HTTP-only cookie and sends
// the browser to the Intuit consent page.
func (h *QuickBooksHandler) Connect(c *gin.Context) {
	authz, err := h.oauth.BeginAuthorization(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookieName, authz.State, int(stateCookieMaxAge.Seconds()), "/", "", h.secureCookie, true)
	c.Redirect(http.StatusFound, authz.URL)
}

// Callback handles GET /quickbooks/callback.
// Always redirects back to the admin page; the outcome travels in the
// query string so the page can surface it.
func (h *QuickBooksHandler) Callback(c *gin.Context) {
	if errParam := c.Query("error"); errParam != "" {
		h.redirectWithError(c, "oauth_error")
		return
	}

	code := c.Query("code")
	realmID := c.Query("realmId")
	state := c.Query("state")
	if code == "" || realmID == "" || state == "" {
		h.redirectWithError(c, "missing_params")
		return
	}

	cookieState, err := c.Cookie(stateCookieName)
	if err != nil || cookieState != state {
		h.redirectWithError(c, "invalid_state")
		return
	}
	h.clearStateCookie(c)

	_, err = h.oauth.CompleteAuthorization(c.Request.Context(), code, state, realmID)
	if err != nil {
		h.redirectWithError(c, callbackErrorCode(err))
		return
	}

	c.Redirect(http.StatusFound, h.adminPageURL+"?success=connected")
}

// Connections handles GET /quickbooks/connections
func (h *QuickBooksHandler) Connections(c *gin.Context) {
	conns, err := h.oauth.Connections(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items := make([]ConnectionResponse, 0, len(conns))
	for i := range conns {
		items = append(items, toConnectionResponse(&conns[i]))
	}
	h.Success(c, items)
}

// Disconnect handles DELETE /quickbooks/connections/:id
func (h *QuickBooksHandler) Disconnect(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid connection ID format")
		return
	}
	id := uuid.MustParse(req.ID)

	if err := h.oauth.Disconnect(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *QuickBooksHandler) redirectWithError(c *gin.Context, code string) {
	c.Redirect(http.StatusFound, h.adminPageURL+"?error="+url.QueryEscape(code))
}

func (h *QuickBooksHandler) clearStateCookie(c *gin.Context) {
	c.SetCookie(stateCookieName, "", -1, "/", "", h.secureCookie, true)
}

// callbackErrorCode maps handshake failures to the admin page's error
// query values
func callbackErrorCode(err error) string {
	switch {
	case errors.Is(err, accounting.ErrStateMismatch):
		return "invalid_state"
	case errors.Is(err, accounting.ErrExchangeFailed):
		return "unauthorized"
	case errors.Is(err, accounting.ErrMetadataFetchFailed):
		return "callback_error"
	case errors.Is(err, accounting.ErrConnectionUpdateFailed):
		return "update_failed"
	case errors.Is(err, accounting.ErrConnectionCreateFailed):
		return "create_failed"
	default:
		return "callback_error"
	}
}

func toConnectionResponse(conn *accounting.Connection) ConnectionResponse {
	return ConnectionResponse{
		ID:             conn.ID.String(),
		RealmID:        conn.RealmID,
		CompanyName:    conn.CompanyName,
		IsActive:       conn.IsActive,
		TokenExpiresAt: conn.TokenExpiresAt,
		LastError:      conn.LastError,
		ErrorCount:     conn.ErrorCount,
		LastSyncAt:     conn.LastSyncAt,
		CreatedAt:      conn.CreatedAt,
	}
}
