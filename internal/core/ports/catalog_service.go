package ports

import (
	"context"

	"github.com/mugstore/backoffice/internal/core/domain"
)

// CategoryInput carries the editable category fields.
type CategoryInput struct {
	Name        string
	Description string
	ParentID    string
	IsActive    bool
	SortOrder   int
	Image       *Upload // optional
}

// TagInput carries the editable tag fields.
type TagInput struct {
	Name  string
	Color string // empty = default
}

// ProductInput carries the editable product fields.
type ProductInput struct {
	Name             string
	SKU              string
	CategoryID       string
	TagIDs           []string
	Description      string
	ShortDescription string
	Price            float64
	ComparePrice     float64
	CostPrice        float64
	WeightGrams      float64
	Dimensions       string
	Material         string
	Color            string
	Capacity         string
	Status           domain.ProductStatus
	IsFeatured       bool
	StockQuantity    int
	FeaturedImage    *Upload // optional
}

// VariantInput carries the editable variant fields.
type VariantInput struct {
	Name         string
	SKU          string
	Price        float64 // 0 = inherit product price
	ComparePrice float64
	Colorway     string
	Size         string
	Material     string
	IsActive     bool
	SortOrder    int
	Image        *Upload // optional
}

// GalleryImageInput carries one gallery entry.
type GalleryImageInput struct {
	AltText   string
	SortOrder int
	IsActive  bool
	Image     *Upload // required on create
}

// ProductDetail is the full product view: the product plus its ordered
// gallery and variants.
type ProductDetail struct {
	Product  *domain.Product
	Images   []*domain.ProductImage
	Variants []*domain.ProductVariant
}

// ListProductsResult is returned by the product listing.
type ListProductsResult struct {
	Items      []*domain.Product
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// CatalogService defines the catalog CRUD use cases. Product mutations emit
// one audit entry each; category, tag, variant and gallery mutations are not
// separately audited. Deleting a product cascades to its gallery and
// variants.
type CatalogService interface {
	CreateCategory(ctx context.Context, actor Actor, input CategoryInput) (*domain.Category, error)
	UpdateCategory(ctx context.Context, actor Actor, id string, input CategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, actor Actor, id string) error
	ListCategories(ctx context.Context) ([]*domain.Category, error)

	CreateTag(ctx context.Context, actor Actor, input TagInput) (*domain.Tag, error)
	UpdateTag(ctx context.Context, actor Actor, id string, input TagInput) (*domain.Tag, error)
	DeleteTag(ctx context.Context, actor Actor, id string) error
	ListTags(ctx context.Context) ([]*domain.Tag, error)

	CreateProduct(ctx context.Context, actor Actor, input ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, actor Actor, id string, input ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, actor Actor, id string) error
	GetProduct(ctx context.Context, id string) (*ProductDetail, error)
	ListProducts(ctx context.Context, filter ListProductsFilter) (*ListProductsResult, error)

	AddVariant(ctx context.Context, actor Actor, productID string, input VariantInput) (*domain.ProductVariant, error)
	UpdateVariant(ctx context.Context, actor Actor, id string, input VariantInput) (*domain.ProductVariant, error)
	DeleteVariant(ctx context.Context, actor Actor, id string) error

	AddGalleryImage(ctx context.Context, actor Actor, productID string, input GalleryImageInput) (*domain.ProductImage, error)
	DeleteGalleryImage(ctx context.Context, actor Actor, id string) error
}
