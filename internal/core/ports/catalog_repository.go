package ports

import (
	"context"

	"github.com/mugstore/backoffice/internal/core/domain"
)

// ListProductsFilter carries the query parameters for the product listing.
// Search matches name or SKU, case-insensitive substring, OR-combined.
type ListProductsFilter struct {
	Search     string
	Status     domain.ProductStatus // optional
	CategoryID string               // optional
	Page       int                  // 1-based
	Limit      int
}

// CategoryRepository persists catalog categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) error
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	// List returns all categories in display order (sort_order, then name).
	List(ctx context.Context) ([]*domain.Category, error)
}

// TagRepository persists product tags.
type TagRepository interface {
	Create(ctx context.Context, t *domain.Tag) error
	Update(ctx context.Context, t *domain.Tag) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Tag, error)
	List(ctx context.Context) ([]*domain.Tag, error)
}

// ProductRepository persists products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// List returns a page of products, newest first, and the total count.
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, int64, error)
	// ListByCategory returns every product filed directly under the category.
	ListByCategory(ctx context.Context, categoryID string) ([]*domain.Product, error)
}

// ProductImageRepository persists gallery images.
type ProductImageRepository interface {
	Insert(ctx context.Context, img *domain.ProductImage) error
	Update(ctx context.Context, img *domain.ProductImage) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.ProductImage, error)
	// ListByProduct returns the gallery ordered by sort_order.
	ListByProduct(ctx context.Context, productID string) ([]*domain.ProductImage, error)
	DeleteByProduct(ctx context.Context, productID string) error
}

// ProductVariantRepository persists product variants.
type ProductVariantRepository interface {
	Insert(ctx context.Context, v *domain.ProductVariant) error
	Update(ctx context.Context, v *domain.ProductVariant) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.ProductVariant, error)
	// ListByProduct returns the variants ordered by sort_order.
	ListByProduct(ctx context.Context, productID string) ([]*domain.ProductVariant, error)
	DeleteByProduct(ctx context.Context, productID string) error
}
