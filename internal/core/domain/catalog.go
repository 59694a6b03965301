package domain

import "time"

// ProductStatus is the publication state of a product.
type ProductStatus string

const (
	StatusDraft      ProductStatus = "draft"
	StatusActive     ProductStatus = "active"
	StatusInactive   ProductStatus = "inactive"
	StatusOutOfStock ProductStatus = "out_of_stock"
)

// ValidProductStatus reports whether s is a known product status.
func ValidProductStatus(s ProductStatus) bool {
	switch s {
	case StatusDraft, StatusActive, StatusInactive, StatusOutOfStock:
		return true
	}
	return false
}

// Category is a node in the catalog tree. The parent link must stay acyclic;
// the service layer rejects assignments that would close a cycle.
type Category struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Slug        string    `bson:"slug" json:"slug"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	ImagePath   string    `bson:"image_path,omitempty" json:"image_path,omitempty"`
	ParentID    string    `bson:"parent_id,omitempty" json:"parent_id,omitempty"`
	IsActive    bool      `bson:"is_active" json:"is_active"`
	SortOrder   int       `bson:"sort_order" json:"sort_order"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// Tag is a flat label attachable to products.
type Tag struct {
	ID    string `bson:"_id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Slug  string `bson:"slug" json:"slug"`
	Color string `bson:"color" json:"color"` // hex code, e.g. #007bff
}

// DefaultTagColor is applied when a tag is created without a color.
const DefaultTagColor = "#007bff"

// Product is a catalog item. Slug and SKU are globally unique. The slug is
// derived from the name once at creation and intentionally not refreshed on
// rename.
type Product struct {
	ID               string        `bson:"_id" json:"id"`
	Name             string        `bson:"name" json:"name"`
	Slug             string        `bson:"slug" json:"slug"`
	SKU              string        `bson:"sku" json:"sku"`
	CategoryID       string        `bson:"category_id" json:"category_id"`
	TagIDs           []string      `bson:"tag_ids,omitempty" json:"tag_ids,omitempty"`
	Description      string        `bson:"description" json:"description"`
	ShortDescription string        `bson:"short_description,omitempty" json:"short_description,omitempty"`
	Price            float64       `bson:"price" json:"price"`
	ComparePrice     float64       `bson:"compare_price,omitempty" json:"compare_price,omitempty"`
	CostPrice        float64       `bson:"cost_price,omitempty" json:"cost_price,omitempty"`
	WeightGrams      float64       `bson:"weight_grams,omitempty" json:"weight_grams,omitempty"`
	Dimensions       string        `bson:"dimensions,omitempty" json:"dimensions,omitempty"`
	Material         string        `bson:"material,omitempty" json:"material,omitempty"`
	Color            string        `bson:"color,omitempty" json:"color,omitempty"`
	Capacity         string        `bson:"capacity,omitempty" json:"capacity,omitempty"`
	FeaturedImage    string        `bson:"featured_image,omitempty" json:"featured_image,omitempty"`
	Status           ProductStatus `bson:"status" json:"status"`
	IsFeatured       bool          `bson:"is_featured" json:"is_featured"`
	StockQuantity    int           `bson:"stock_quantity" json:"stock_quantity"`
	CreatedAt        time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time     `bson:"updated_at" json:"updated_at"`
}

// IsOnSale reports whether the product carries a strike-through price.
func (p *Product) IsOnSale() bool {
	return p.ComparePrice > 0 && p.ComparePrice > p.Price
}

// DiscountPercentage returns the rounded-down sale discount, or 0 when the
// product is not on sale.
func (p *Product) DiscountPercentage() int {
	if !p.IsOnSale() {
		return 0
	}
	return int((p.ComparePrice - p.Price) / p.ComparePrice * 100)
}

// ProductImage is one entry in a product's ordered gallery.
type ProductImage struct {
	ID        string `bson:"_id" json:"id"`
	ProductID string `bson:"product_id" json:"product_id"`
	ImagePath string `bson:"image_path" json:"image_path"`
	AltText   string `bson:"alt_text,omitempty" json:"alt_text,omitempty"`
	SortOrder int    `bson:"sort_order" json:"sort_order"`
	IsActive  bool   `bson:"is_active" json:"is_active"`
}

// ProductVariant is a purchasable configuration of a product. A variant
// without its own price inherits the product price.
type ProductVariant struct {
	ID           string  `bson:"_id" json:"id"`
	ProductID    string  `bson:"product_id" json:"product_id"`
	Name         string  `bson:"name" json:"name"`
	SKU          string  `bson:"sku" json:"sku"`
	Price        float64 `bson:"price,omitempty" json:"price,omitempty"`
	ComparePrice float64 `bson:"compare_price,omitempty" json:"compare_price,omitempty"`
	ImagePath    string  `bson:"image_path,omitempty" json:"image_path,omitempty"`
	Colorway     string  `bson:"colorway,omitempty" json:"colorway,omitempty"`
	Size         string  `bson:"size,omitempty" json:"size,omitempty"`
	Material     string  `bson:"material,omitempty" json:"material,omitempty"`
	IsActive     bool    `bson:"is_active" json:"is_active"`
	SortOrder    int     `bson:"sort_order" json:"sort_order"`
}

// EffectivePrice resolves the price a variant sells at: its own price when
// set, otherwise the owning product's price.
func (v *ProductVariant) EffectivePrice(p *Product) float64 {
	if v.Price > 0 {
		return v.Price
	}
	return p.Price
}
