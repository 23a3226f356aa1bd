package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogapp "github.com/wms/backend/internal/application/catalog"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/interfaces/http/dto"
	"github.com/wms/backend/internal/interfaces/http/middleware"
)

// ProductHandler handles the locally-owned product catalog endpoints
type ProductHandler struct {
	BaseHandler
	products *catalogapp.Service
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products *catalogapp.Service) *ProductHandler {
	return &ProductHandler{products: products}
}

// RegisterRoutes registers the product routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.POST("", h.Create)
		products.GET("", h.List)
		products.GET("/:id", h.GetByID)
	}
}

// CreateProductRequest represents a request to create a local product
type CreateProductRequest struct {
	Name         string  `json:"name" binding:"required,min=1,max=200"`
	SKU          string  `json:"sku" binding:"omitempty,max=100"`
	Description  string  `json:"description" binding:"omitempty,max=2000"`
	Unit         string  `json:"unit" binding:"omitempty,max=20"`
	UnitPrice    float64 `json:"unit_price" binding:"gte=0"`
	ReorderPoint float64 `json:"reorder_point" binding:"omitempty,gte=0"`
}

// ListProductsRequest represents query parameters for the product list
type ListProductsRequest struct {
	dto.ListRequest
	Active *bool `form:"active"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	SKU          string    `json:"sku,omitempty"`
	Description  string    `json:"description,omitempty"`
	Unit         string    `json:"unit"`
	UnitPrice    float64   `json:"unit_price"`
	ReorderPoint float64   `json:"reorder_point"`
	QBItemID     *string   `json:"qb_item_id,omitempty"`
	LedgerLinked bool      `json:"ledger_linked"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	created, err := h.products.Create(c.Request.Context(), catalogapp.CreateProductRequest{
		Name:         req.Name,
		SKU:          req.SKU,
		Description:  req.Description,
		Unit:         req.Unit,
		UnitPrice:    decimal.NewFromFloat(req.UnitPrice),
		ReorderPoint: decimal.NewFromFloat(req.ReorderPoint),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toProductResponse(created))
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	req := ListProductsRequest{ListRequest: dto.DefaultListRequest()}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.products.List(c.Request.Context(), catalogapp.ListFilter{
		Search:   req.Search,
		Active:   req.Active,
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items := make([]ProductResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, toProductResponse(&page.Items[i]))
	}
	h.SuccessWithMeta(c, items, page.Total, page.Page, page.PageSize)
}

// GetByID handles GET /products/:id
func (h *ProductHandler) GetByID(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}
	id := uuid.MustParse(req.ID)

	p, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toProductResponse(p))
}

func toProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID.String(),
		Name:         p.Name,
		SKU:          p.SKU,
		Description:  p.Description,
		Unit:         p.Unit,
		UnitPrice:    p.UnitPrice.InexactFloat64(),
		ReorderPoint: p.ReorderPoint.InexactFloat64(),
		QBItemID:     p.QBItemID,
		LedgerLinked: p.IsLedgerLinked(),
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
