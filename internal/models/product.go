package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Brand struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	LogoURL   string    `json:"logo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Product struct {
	ID            uuid.UUID           `json:"id"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	SKU           string              `json:"sku"`
	Price         decimal.Decimal     `json:"price"`
	OriginalPrice decimal.NullDecimal `json:"original_price"`
	StockQuantity int                 `json:"stock_quantity"`
	Sizes         []string            `json:"sizes"`
	Images        []string            `json:"images"`
	WeightGrams   int                 `json:"weight_grams"`
	CategoryID    uuid.NullUUID       `json:"category_id"`
	BrandID       uuid.NullUUID       `json:"brand_id"`
	Active        bool                `json:"active"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	Category      *Category           `json:"category,omitempty"`
	Brand         *Brand              `json:"brand,omitempty"`
}

// HasSize reports whether size is one of the product's sizes. Products without sizes accept only "".
func (p *Product) HasSize(size string) bool {
	if len(p.Sizes) == 0 {
		return size == ""
	}

	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}

	return false
}

func (p *Product) MainImage() string {
	if len(p.Images) == 0 {
		return ""
	}

	return p.Images[0]
}

type CreateProductRequest struct {
	Name          string              `json:"name" validate:"required,min=3,max=200"`
	Description   string              `json:"description,omitempty" validate:"omitempty,max=5000"`
	SKU           string              `json:"sku" validate:"omitempty,min=3,max=50"`
	Price         decimal.Decimal     `json:"price" validate:"required,gt=0"`
	OriginalPrice decimal.NullDecimal `json:"original_price,omitempty" validate:"omitempty,gt=0"`
	StockQuantity *int                `json:"stock_quantity" validate:"required,gte=0"`
	Sizes         []string            `json:"sizes,omitempty" validate:"omitempty,dive,required,max=10"`
	Images        []string            `json:"images,omitempty" validate:"omitempty,dive,url"`
	WeightGrams   int                 `json:"weight_grams,omitempty" validate:"omitempty,gt=0"`
	CategoryID    *uuid.UUID          `json:"category_id,omitempty"`
	BrandID       *uuid.UUID          `json:"brand_id,omitempty"`
	Active        *bool               `json:"active,omitempty"`
}

type UpdateProductRequest struct {
	Name          *string              `json:"name,omitempty" validate:"omitempty,min=3,max=200"`
	Description   *string              `json:"description,omitempty" validate:"omitempty,max=5000"`
	SKU           *string              `json:"sku,omitempty" validate:"omitempty,min=3,max=50"`
	Price         *decimal.Decimal     `json:"price,omitempty" validate:"omitempty,gt=0"`
	OriginalPrice *decimal.NullDecimal `json:"original_price,omitempty" validate:"omitempty,gt=0"`
	StockQuantity *int                 `json:"stock_quantity,omitempty" validate:"omitempty,gte=0"`
	Sizes         *[]string            `json:"sizes,omitempty" validate:"omitempty,dive,required,max=10"`
	Images        *[]string            `json:"images,omitempty" validate:"omitempty,dive,url"`
	WeightGrams   *int                 `json:"weight_grams,omitempty" validate:"omitempty,gt=0"`
	CategoryID    *uuid.UUID           `json:"category_id,omitempty"`
	BrandID       *uuid.UUID           `json:"brand_id,omitempty"`
	Active        *bool                `json:"active,omitempty"`
}

// ProductFilter narrows catalog listings. Empty fields do not filter.
type ProductFilter struct {
	Search     string
	CategoryID *uuid.UUID
	BrandID    *uuid.UUID
	ActiveOnly bool
	Page       int
	PageSize   int
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Slug        string `json:"slug" validate:"omitempty,min=2,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

type CreateBrandRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Slug    string `json:"slug" validate:"omitempty,min=2,max=100"`
	LogoURL string `json:"logo_url,omitempty" validate:"omitempty,url"`
}
