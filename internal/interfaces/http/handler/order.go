package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	orderapp "github.com/wms/backend/internal/application/order"
	"github.com/wms/backend/internal/domain/order"
	"github.com/wms/backend/internal/interfaces/http/dto"
	"github.com/wms/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles order lifecycle API endpoints
type OrderHandler struct {
	BaseHandler
	orders *orderapp.Service
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *orderapp.Service) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// RegisterRoutes registers the order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.GET("/:id", h.GetByID)
		orders.GET("/:id/history", h.History)
		orders.PATCH("/:id/status", h.UpdateStatus)
	}
}

// CreateOrderRequest represents a request to create a new order
type CreateOrderRequest struct {
	OrderNumber  string                   `json:"order_number" binding:"omitempty,max=30"`
	CustomerID   *string                  `json:"customer_id" binding:"omitempty,uuid"`
	CustomerName string                   `json:"customer_name" binding:"required,min=1,max=200"`
	Notes        string                   `json:"notes" binding:"max=2000"`
	DueDate      *time.Time               `json:"due_date"`
	Lines        []CreateOrderLineRequest `json:"lines" binding:"omitempty,dive"`
}

// CreateOrderLineRequest represents one line in the create request
type CreateOrderLineRequest struct {
	ProductID   string  `json:"product_id" binding:"required,uuid"`
	ProductName string  `json:"product_name" binding:"required,min=1,max=200"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0"`
	UnitPrice   float64 `json:"unit_price" binding:"required,gte=0"`
}

// UpdateStatusRequest represents a request to move an order through the
// production lifecycle
type UpdateStatusRequest struct {
	Status string  `json:"status" binding:"required"`
	Reason *string `json:"reason" binding:"omitempty,max=500"`
	Notes  *string `json:"notes" binding:"omitempty,max=2000"`
}

// ListOrdersRequest represents query parameters for the order list
type ListOrdersRequest struct {
	dto.ListRequest
	Status   string `form:"status"`
	Customer string `form:"customer"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID               string              `json:"id"`
	OrderNumber      string              `json:"order_number"`
	CustomerID       *string             `json:"customer_id,omitempty"`
	CustomerName     string              `json:"customer_name"`
	ProductionStatus string              `json:"production_status"`
	TotalAmount      float64             `json:"total_amount"`
	HoldReason       *string             `json:"hold_reason,omitempty"`
	ProductionNotes  string              `json:"production_notes,omitempty"`
	DueDate          *time.Time          `json:"due_date,omitempty"`
	Lines            []OrderLineResponse `json:"lines"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// OrderLineResponse represents an order line in API responses
type OrderLineResponse struct {
	ID          string  `json:"id"`
	LineNumber  int     `json:"line_number"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"`
}

// StatusChangeResponse represents one audit entry in API responses
type StatusChangeResponse struct {
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ChangedBy  string    `json:"changed_by"`
	Reason     *string   `json:"reason,omitempty"`
	ChangedAt  time.Time `json:"changed_at"`
}

// Create handles POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	appReq := orderapp.CreateOrderRequest{
		OrderNumber:  req.OrderNumber,
		CustomerName: req.CustomerName,
		Notes:        req.Notes,
		DueDate:      req.DueDate,
	}
	if req.CustomerID != nil && *req.CustomerID != "" {
		customerID, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			h.BadRequest(c, "Invalid customer ID format")
			return
		}
		appReq.CustomerID = &customerID
	}
	for _, line := range req.Lines {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			h.BadRequest(c, "Invalid product ID format")
			return
		}
		appReq.Lines = append(appReq.Lines, orderapp.CreateOrderLine{
			ProductID:   productID,
			ProductName: line.ProductName,
			Quantity:    decimal.NewFromFloat(line.Quantity),
			UnitPrice:   decimal.NewFromFloat(line.UnitPrice),
		})
	}

	created, err := h.orders.Create(c.Request.Context(), appReq, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toOrderResponse(created))
}

// List handles GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	req := ListOrdersRequest{ListRequest: dto.DefaultListRequest()}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := orderapp.ListFilter{
		Customer: req.Customer,
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
	}
	if req.Status != "" {
		status := order.ProductionStatus(req.Status)
		if !status.IsValid() {
			h.Error(c, 400, dto.ErrCodeUnknownState, "Unknown production status: "+req.Status)
			return
		}
		filter.Status = &status
	}

	page, err := h.orders.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items := make([]OrderResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, toOrderResponse(&page.Items[i]))
	}
	h.SuccessWithMeta(c, items, page.Total, page.Page, page.PageSize)
}

// GetByID handles GET /orders/:id
func (h *OrderHandler) GetByID(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}
	id := uuid.MustParse(req.ID)

	found, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toOrderResponse(found))
}

// History handles GET /orders/:id/history
func (h *OrderHandler) History(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}
	id := uuid.MustParse(req.ID)

	changes, err := h.orders.History(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items := make([]StatusChangeResponse, 0, len(changes))
	for _, change := range changes {
		items = append(items, StatusChangeResponse{
			FromStatus: change.FromStatus.String(),
			ToStatus:   change.ToStatus.String(),
			ChangedBy:  change.ChangedBy.String(),
			Reason:     change.Reason,
			ChangedAt:  change.CreatedAt,
		})
	}
	h.Success(c, items)
}

// UpdateStatus handles PATCH /orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var uriReq dto.IDRequest
	if err := c.ShouldBindUri(&uriReq); err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}
	id := uuid.MustParse(uriReq.ID)

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	updated, err := h.orders.Transition(c.Request.Context(), id, orderapp.TransitionRequest{
		Status: order.ProductionStatus(req.Status),
		Reason: req.Reason,
		Notes:  req.Notes,
	}, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toOrderResponse(updated))
}

func toOrderResponse(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:               o.ID.String(),
		OrderNumber:      o.OrderNumber,
		CustomerName:     o.CustomerName,
		ProductionStatus: o.ProductionStatus.String(),
		TotalAmount:      o.TotalAmount.InexactFloat64(),
		HoldReason:       o.HoldReason,
		ProductionNotes:  o.ProductionNotes,
		DueDate:          o.DueDate,
		Lines:            make([]OrderLineResponse, 0, len(o.Lines)),
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
	if o.CustomerID != nil {
		id := o.CustomerID.String()
		resp.CustomerID = &id
	}
	for _, line := range o.Lines {
		resp.Lines = append(resp.Lines, OrderLineResponse{
			ID:          line.ID.String(),
			LineNumber:  line.LineNumber,
			ProductID:   line.ProductID.String(),
			ProductName: line.ProductName,
			Quantity:    line.Quantity.InexactFloat64(),
			UnitPrice:   line.UnitPrice.InexactFloat64(),
			Amount:      line.Amount.InexactFloat64(),
		})
	}
	return resp
}
