package handler

import (
	"github.com/erp/seeder/internal/seeder"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SeederHandler exposes the generation endpoints for admin use
type SeederHandler struct {
	BaseHandler
	customers *seeder.CustomerGenerator
	orders    *seeder.OrderGenerator
	logger    *zap.Logger
}

// NewSeederHandler creates a new SeederHandler
func NewSeederHandler(
	customers *seeder.CustomerGenerator,
	orders *seeder.OrderGenerator,
	logger *zap.Logger,
) *SeederHandler {
	return &SeederHandler{
		customers: customers,
		orders:    orders,
		logger:    logger,
	}
}

// RegisterRoutes registers the seeder routes
func (h *SeederHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/seeder")
	{
		group.POST("/customers", h.GenerateCustomers)
		group.POST("/orders", h.GenerateOrders)
	}
}

// GenerateCustomersRequest is the request body for customer generation
type GenerateCustomersRequest struct {
	Count         int               `json:"count" binding:"omitempty,min=1,max=1000"`
	Website       string            `json:"website"`
	Store         string            `json:"store"`
	Locale        string            `json:"locale"`
	WithAddresses *bool             `json:"with_addresses"`
	AddressCount  int               `json:"address_count" binding:"omitempty,min=1,max=5"`
	Attributes    map[string]string `json:"attributes"`
}

// GenerateCustomers handles POST /seeder/customers
func (h *SeederHandler) GenerateCustomers(c *gin.Context) {
	var req GenerateCustomersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	overrides, err := seeder.ParseCustomerOverrides(req.Attributes)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	cfg := seeder.CustomerRunConfig{
		Count:         req.Count,
		WebsiteCode:   req.Website,
		StoreCode:     req.Store,
		Locale:        req.Locale,
		WithAddresses: true,
		AddressCount:  req.AddressCount,
		Overrides:     overrides,
	}
	if req.WithAddresses != nil {
		cfg.WithAddresses = *req.WithAddresses
	}

	result, err := h.customers.Generate(c.Request.Context(), cfg)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.logger.Info("customer generation run finished",
		zap.Int("generated", result.Generated()),
		zap.Int("failed", result.Failed()),
	)
	h.Success(c, result)
}

// GenerateOrdersRequest is the request body for order generation
type GenerateOrdersRequest struct {
	Count          int      `json:"count" binding:"omitempty,min=1,max=1000"`
	Store          string   `json:"store"`
	Locale         string   `json:"locale"`
	SKUs           []string `json:"skus"`
	CustomerType   string   `json:"customer_type"`
	CustomerID     string   `json:"customer_id" binding:"omitempty,uuid"`
	CustomerEmail  string   `json:"customer_email" binding:"omitempty,email"`
	ShippingMethod string   `json:"shipping_method"`
	PaymentMethod  string   `json:"payment_method"`
	ForceInvoice   bool     `json:"force_invoice"`
	ForceShipment  bool     `json:"force_shipment"`
	Tag            string   `json:"tag"`
	Currency       string   `json:"currency"`
	ProductType    string   `json:"product_type"`
	ItemCount      int      `json:"item_count"`
	WithDiscount   bool     `json:"with_discount"`
	TaxExempt      bool     `json:"tax_exempt"`
	PartialInvoice bool     `json:"partial_invoice"`
	MultiAddress   bool     `json:"multi_address"`
	OrderStatus    string   `json:"order_status"`
}

// GenerateOrders handles POST /seeder/orders
func (h *SeederHandler) GenerateOrders(c *gin.Context) {
	var req GenerateOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customerType, err := seeder.ParseCustomerType(req.CustomerType)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	cfg := seeder.OrderRunConfig{
		Count:          req.Count,
		StoreCode:      req.Store,
		Locale:         req.Locale,
		SKUs:           req.SKUs,
		CustomerType:   customerType,
		CustomerEmail:  req.CustomerEmail,
		ShippingMethod: req.ShippingMethod,
		PaymentMethod:  req.PaymentMethod,
		ForceInvoice:   req.ForceInvoice,
		ForceShipment:  req.ForceShipment,
		Tag:            req.Tag,
		Currency:       req.Currency,
		ProductType:    req.ProductType,
		ItemCount:      req.ItemCount,
		WithDiscount:   req.WithDiscount,
		TaxExempt:      req.TaxExempt,
		PartialInvoice: req.PartialInvoice,
		MultiAddress:   req.MultiAddress,
		TargetStatus:   req.OrderStatus,
	}
	if req.CustomerID != "" {
		id, parseErr := uuid.Parse(req.CustomerID)
		if parseErr != nil {
			h.BadRequest(c, "Invalid customer_id")
			return
		}
		cfg.CustomerID = &id
	}

	result, err := h.orders.Generate(c.Request.Context(), cfg)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.logger.Info("order generation run finished",
		zap.Int("generated", result.Generated()),
		zap.Int("failed", result.Failed()),
	)
	h.Success(c, result)
}
