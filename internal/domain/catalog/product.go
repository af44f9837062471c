package catalog

import (
	"strings"
	"time"

	"github.com/erp/seeder/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductType represents the composition type of a product
type ProductType string

const (
	ProductTypeSimple       ProductType = "simple"
	ProductTypeVirtual      ProductType = "virtual"
	ProductTypeDownloadable ProductType = "downloadable"
	ProductTypeConfigurable ProductType = "configurable"
	ProductTypeBundle       ProductType = "bundle"
)

// IsValid checks if the value is a known product type
func (t ProductType) IsValid() bool {
	switch t {
	case ProductTypeSimple, ProductTypeVirtual, ProductTypeDownloadable, ProductTypeConfigurable, ProductTypeBundle:
		return true
	}
	return false
}

// IsShippable reports whether items of this type need physical shipping
func (t ProductType) IsShippable() bool {
	return t != ProductTypeVirtual && t != ProductTypeDownloadable
}

// ProductStatus represents the enabled/disabled state of a product
type ProductStatus string

const (
	ProductStatusEnabled  ProductStatus = "enabled"
	ProductStatusDisabled ProductStatus = "disabled"
)

// Visibility controls where the product appears in the storefront
type Visibility string

const (
	VisibilityNotVisible    Visibility = "not_visible"
	VisibilityCatalog       Visibility = "catalog"
	VisibilitySearch        Visibility = "search"
	VisibilityCatalogSearch Visibility = "catalog_search"
)

// Product represents a purchasable catalog entry
type Product struct {
	shared.StoreEntity
	SKU        string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	Name       string          `gorm:"type:varchar(200);not null"`
	Type       ProductType     `gorm:"type:varchar(20);not null;default:'simple'"`
	Status     ProductStatus   `gorm:"type:varchar(20);not null;default:'enabled'"`
	Visibility Visibility      `gorm:"type:varchar(20);not null;default:'catalog_search'"`
	Price      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	StockQty   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	InStock    bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product in a store
func NewProduct(storeID uuid.UUID, sku, name string, productType ProductType, price decimal.Decimal) (*Product, error) {
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 64 {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 64 characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if !productType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRODUCT_TYPE", "Unknown product type")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	return &Product{
		StoreEntity: shared.NewStoreEntity(storeID),
		SKU:         strings.ToUpper(sku),
		Name:        name,
		Type:        productType,
		Status:      ProductStatusEnabled,
		Visibility:  VisibilityCatalogSearch,
		Price:       price,
		InStock:     true,
	}, nil
}

// IsEnabled reports whether the product is enabled
func (p *Product) IsEnabled() bool {
	return p.Status == ProductStatusEnabled
}

// IsVisible reports whether the product is individually visible
func (p *Product) IsVisible() bool {
	return p.Visibility != VisibilityNotVisible
}

// IsSaleable reports whether the product is currently purchasable:
// enabled, in stock, and visible in the storefront
func (p *Product) IsSaleable() bool {
	return p.IsEnabled() && p.InStock && p.IsVisible()
}

// SetStock updates the stock quantity and in-stock flag
func (p *Product) SetStock(qty decimal.Decimal, inStock bool) {
	p.StockQty = qty
	p.InStock = inStock
	p.UpdatedAt = time.Now()
}

// Disable disables the product
func (p *Product) Disable() {
	p.Status = ProductStatusDisabled
	p.UpdatedAt = time.Now()
}

// Hide removes the product from individual storefront visibility
func (p *Product) Hide() {
	p.Visibility = VisibilityNotVisible
	p.UpdatedAt = time.Now()
}
