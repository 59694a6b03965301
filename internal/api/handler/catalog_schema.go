package handler

import (
	"github.com/mugstore/backoffice/internal/core/domain"
	"github.com/mugstore/backoffice/internal/core/ports"
)

// --- Request types ---

type categoryRequest struct {
	Name        string `json:"name"        form:"name"        validate:"required,max=128"`
	Description string `json:"description" form:"description" validate:"max=2048"`
	ParentID    string `json:"parent_id"   form:"parent_id"`
	IsActive    bool   `json:"is_active"   form:"is_active"`
	SortOrder   int    `json:"sort_order"  form:"sort_order"  validate:"gte=0"`
}

type tagRequest struct {
	Name  string `json:"name"  form:"name"  validate:"required,max=64"`
	Color string `json:"color" form:"color" validate:"omitempty,hexcolor"`
}

type productRequest struct {
	Name             string   `json:"name"              form:"name"              validate:"required,max=256"`
	SKU              string   `json:"sku"               form:"sku"               validate:"required,max=64"`
	CategoryID       string   `json:"category_id"       form:"category_id"       validate:"required"`
	TagIDs           []string `json:"tag_ids"           form:"tag_ids"`
	Description      string   `json:"description"       form:"description"`
	ShortDescription string   `json:"short_description" form:"short_description" validate:"max=512"`
	Price            float64  `json:"price"             form:"price"             validate:"gte=0"`
	ComparePrice     float64  `json:"compare_price"     form:"compare_price"     validate:"gte=0"`
	CostPrice        float64  `json:"cost_price"        form:"cost_price"        validate:"gte=0"`
	WeightGrams      float64  `json:"weight_grams"      form:"weight_grams"      validate:"gte=0"`
	Dimensions       string   `json:"dimensions"        form:"dimensions"`
	Material         string   `json:"material"          form:"material"`
	Color            string   `json:"color"             form:"color"`
	Capacity         string   `json:"capacity"          form:"capacity"`
	Status           string   `json:"status"            form:"status"            validate:"required,oneof=draft active inactive out_of_stock"`
	IsFeatured       bool     `json:"is_featured"       form:"is_featured"`
	StockQuantity    int      `json:"stock_quantity"    form:"stock_quantity"    validate:"gte=0"`
}

type variantRequest struct {
	Name         string  `json:"name"          form:"name"          validate:"required,max=128"`
	SKU          string  `json:"sku"           form:"sku"           validate:"required,max=64"`
	Price        float64 `json:"price"         form:"price"         validate:"gte=0"`
	ComparePrice float64 `json:"compare_price" form:"compare_price" validate:"gte=0"`
	Colorway     string  `json:"colorway"      form:"colorway"`
	Size         string  `json:"size"          form:"size"`
	Material     string  `json:"material"      form:"material"`
	IsActive     bool    `json:"is_active"     form:"is_active"`
	SortOrder    int     `json:"sort_order"    form:"sort_order"    validate:"gte=0"`
}

type galleryImageRequest struct {
	AltText   string `json:"alt_text"   form:"alt_text"   validate:"max=256"`
	SortOrder int    `json:"sort_order" form:"sort_order" validate:"gte=0"`
	IsActive  bool   `json:"is_active"  form:"is_active"`
}

// --- Response types ---

type productResponse struct {
	*domain.Product
	IsOnSale           bool `json:"is_on_sale"`
	DiscountPercentage int  `json:"discount_percentage"`
}

type productDetailResponse struct {
	productResponse
	Images   []*domain.ProductImage   `json:"images"`
	Variants []*domain.ProductVariant `json:"variants"`
}

type productListResponse struct {
	Items      []productResponse `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

type bulkUploadResponse struct {
	Accepted int `json:"accepted"`
}

// --- Mappers ---

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		Product:            p,
		IsOnSale:           p.IsOnSale(),
		DiscountPercentage: p.DiscountPercentage(),
	}
}

func toProductDetailResponse(d *ports.ProductDetail) productDetailResponse {
	images := d.Images
	if images == nil {
		images = []*domain.ProductImage{}
	}
	variants := d.Variants
	if variants == nil {
		variants = []*domain.ProductVariant{}
	}
	return productDetailResponse{
		productResponse: toProductResponse(d.Product),
		Images:          images,
		Variants:        variants,
	}
}
