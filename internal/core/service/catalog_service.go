package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mugstore/backoffice/internal/core/domain"
	"github.com/mugstore/backoffice/internal/core/ports"
)

const productPageSize = 20

// maxAncestorDepth bounds the cycle-check walk so a corrupted tree can never
// hang a request.
const maxAncestorDepth = 64

// CatalogService implements catalog CRUD. Product mutations are audited;
// category, tag, variant and gallery mutations are not.
type CatalogService struct {
	categories ports.CategoryRepository
	tags       ports.TagRepository
	products   ports.ProductRepository
	images     ports.ProductImageRepository
	variants   ports.ProductVariantRepository
	media      ports.MediaStore
	audit      ports.AuditService
	logger     zerolog.Logger
}

func NewCatalogService(
	categories ports.CategoryRepository,
	tags ports.TagRepository,
	products ports.ProductRepository,
	images ports.ProductImageRepository,
	variants ports.ProductVariantRepository,
	media ports.MediaStore,
	audit ports.AuditService,
	logger zerolog.Logger,
) *CatalogService {
	return &CatalogService{
		categories: categories,
		tags:       tags,
		products:   products,
		images:     images,
		variants:   variants,
		media:      media,
		audit:      audit,
		logger:     logger,
	}
}

// --- Categories ---

func (s *CatalogService) CreateCategory(ctx context.Context, actor ports.Actor, input ports.CategoryInput) (*domain.Category, error) {
	if input.ParentID != "" {
		if _, err := s.categories.FindByID(ctx, input.ParentID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	cat := &domain.Category{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Slug:        domain.Slugify(input.Name),
		Description: input.Description,
		ParentID:    input.ParentID,
		IsActive:    input.IsActive,
		SortOrder:   input.SortOrder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// New images are normalized before anything is persisted, so a bad file
	// aborts the whole save.
	if input.Image != nil {
		path, err := s.media.Save(ctx, ports.MediaPrefixCategories, *input.Image)
		if err != nil {
			return nil, err
		}
		cat.ImagePath = path
	}

	if err := s.categories.Create(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// UpdateCategory applies the editable fields. The slug is never re-derived on
// rename. A parent assignment that would close a cycle is rejected.
func (s *CatalogService) UpdateCategory(ctx context.Context, actor ports.Actor, id string, input ports.CategoryInput) (*domain.Category, error) {
	cat, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.ParentID != "" {
		if err := s.checkCategoryCycle(ctx, id, input.ParentID); err != nil {
			return nil, err
		}
	}

	if input.Image != nil {
		path, err := s.media.Save(ctx, ports.MediaPrefixCategories, *input.Image)
		if err != nil {
			return nil, err
		}
		cat.ImagePath = path
	}

	cat.Name = input.Name
	cat.Description = input.Description
	cat.ParentID = input.ParentID
	cat.IsActive = input.IsActive
	cat.SortOrder = input.SortOrder
	cat.UpdatedAt = time.Now().UTC()

	if err := s.categories.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// checkCategoryCycle walks the ancestor chain from newParentID and fails if
// it reaches id.
func (s *CatalogService) checkCategoryCycle(ctx context.Context, id, newParentID string) error {
	if newParentID == id {
		return domain.ErrCategoryCycle
	}

	cursor := newParentID
	for depth := 0; cursor != "" && depth < maxAncestorDepth; depth++ {
		parent, err := s.categories.FindByID(ctx, cursor)
		if err != nil {
			return err
		}
		if parent.ParentID == id {
			return domain.ErrCategoryCycle
		}
		cursor = parent.ParentID
	}
	return nil
}

// DeleteCategory hard-deletes the category, its descendant categories and
// every product filed under any of them, including those products' galleries
// and variants.
func (s *CatalogService) DeleteCategory(ctx context.Context, actor ports.Actor, id string) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return err
	}

	subtree, err := s.categorySubtree(ctx, id)
	if err != nil {
		return err
	}

	for _, catID := range subtree {
		products, err := s.products.ListByCategory(ctx, catID)
		if err != nil {
			return err
		}
		for _, p := range products {
			if err := s.products.Delete(ctx, p.ID); err != nil {
				return err
			}
			if err := s.images.DeleteByProduct(ctx, p.ID); err != nil {
				return fmt.Errorf("gallery cascade: %w", err)
			}
			if err := s.variants.DeleteByProduct(ctx, p.ID); err != nil {
				return fmt.Errorf("variant cascade: %w", err)
			}
		}
		if err := s.categories.Delete(ctx, catID); err != nil {
			return err
		}
	}

	s.logger.Info().Str("category_id", id).Int("categories", len(subtree)).
		Msg("category deleted with subtree and products")
	return nil
}

// categorySubtree returns id followed by all of its descendants, breadth
// first.
func (s *CatalogService) categorySubtree(ctx context.Context, id string) ([]string, error) {
	all, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	children := make(map[string][]string, len(all))
	for _, c := range all {
		if c.ParentID != "" {
			children[c.ParentID] = append(children[c.ParentID], c.ID)
		}
	}

	ids := []string{id}
	for i := 0; i < len(ids); i++ {
		ids = append(ids, children[ids[i]]...)
	}
	return ids, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}

// --- Tags ---

func (s *CatalogService) CreateTag(ctx context.Context, actor ports.Actor, input ports.TagInput) (*domain.Tag, error) {
	color := input.Color
	if color == "" {
		color = domain.DefaultTagColor
	}

	tag := &domain.Tag{
		ID:    uuid.NewString(),
		Name:  input.Name,
		Slug:  domain.Slugify(input.Name),
		Color: color,
	}

	if err := s.tags.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *CatalogService) UpdateTag(ctx context.Context, actor ports.Actor, id string, input ports.TagInput) (*domain.Tag, error) {
	tag, err := s.tags.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tag.Name = input.Name
	if input.Color != "" {
		tag.Color = input.Color
	}

	if err := s.tags.Update(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *CatalogService) DeleteTag(ctx context.Context, actor ports.Actor, id string) error {
	if _, err := s.tags.FindByID(ctx, id); err != nil {
		return err
	}
	return s.tags.Delete(ctx, id)
}

func (s *CatalogService) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	return s.tags.List(ctx)
}

// --- Products ---

func (s *CatalogService) CreateProduct(ctx context.Context, actor ports.Actor, input ports.ProductInput) (*domain.Product, error) {
	if err := s.validateProductRefs(ctx, input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:               uuid.NewString(),
		Name:             input.Name,
		Slug:             domain.Slugify(input.Name),
		SKU:              input.SKU,
		CategoryID:       input.CategoryID,
		TagIDs:           input.TagIDs,
		Description:      input.Description,
		ShortDescription: input.ShortDescription,
		Price:            input.Price,
		ComparePrice:     input.ComparePrice,
		CostPrice:        input.CostPrice,
		WeightGrams:      input.WeightGrams,
		Dimensions:       input.Dimensions,
		Material:         input.Material,
		Color:            input.Color,
		Capacity:         input.Capacity,
		Status:           input.Status,
		IsFeatured:       input.IsFeatured,
		StockQuantity:    input.StockQuantity,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if input.FeaturedImage != nil {
		path, err := s.media.Save(ctx, ports.MediaPrefixProducts, *input.FeaturedImage)
		if err != nil {
			return nil, err
		}
		product.FeaturedImage = path
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, domain.ActionCreate, "Product", product.ID, "Created product: "+product.Name)
	s.logger.Info().Str("sku", product.SKU).Str("name", product.Name).Msg("product created")
	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, actor ports.Actor, id string, input ports.ProductInput) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateProductRefs(ctx, input); err != nil {
		return nil, err
	}

	if input.FeaturedImage != nil {
		path, err := s.media.Save(ctx, ports.MediaPrefixProducts, *input.FeaturedImage)
		if err != nil {
			return nil, err
		}
		product.FeaturedImage = path
	}

	product.Name = input.Name
	product.SKU = input.SKU
	product.CategoryID = input.CategoryID
	product.TagIDs = input.TagIDs
	product.Description = input.Description
	product.ShortDescription = input.ShortDescription
	product.Price = input.Price
	product.ComparePrice = input.ComparePrice
	product.CostPrice = input.CostPrice
	product.WeightGrams = input.WeightGrams
	product.Dimensions = input.Dimensions
	product.Material = input.Material
	product.Color = input.Color
	product.Capacity = input.Capacity
	product.Status = input.Status
	product.IsFeatured = input.IsFeatured
	product.StockQuantity = input.StockQuantity
	product.UpdatedAt = time.Now().UTC()

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, domain.ActionUpdate, "Product", product.ID, "Updated product: "+product.Name)
	return product, nil
}

// DeleteProduct hard-deletes the product and cascades to its gallery and
// variants.
func (s *CatalogService) DeleteProduct(ctx context.Context, actor ports.Actor, id string) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.images.DeleteByProduct(ctx, id); err != nil {
		return fmt.Errorf("gallery cascade: %w", err)
	}
	if err := s.variants.DeleteByProduct(ctx, id); err != nil {
		return fmt.Errorf("variant cascade: %w", err)
	}

	s.audit.Record(ctx, actor, domain.ActionDelete, "Product", id, "Deleted product: "+product.Name)
	s.logger.Info().Str("product_id", id).Msg("product deleted with gallery and variants")
	return nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*ports.ProductDetail, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	images, err := s.images.ListByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	variants, err := s.variants.ListByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ports.ProductDetail{Product: product, Images: images, Variants: variants}, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, filter ports.ListProductsFilter) (*ports.ListProductsResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 || filter.Limit > productPageSize {
		filter.Limit = productPageSize
	}

	items, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListProductsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *CatalogService) validateProductRefs(ctx context.Context, input ports.ProductInput) error {
	if !domain.ValidProductStatus(input.Status) {
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, input.Status)
	}
	if _, err := s.categories.FindByID(ctx, input.CategoryID); err != nil {
		return err
	}
	for _, tagID := range input.TagIDs {
		if _, err := s.tags.FindByID(ctx, tagID); err != nil {
			return err
		}
	}
	return nil
}

// --- Variants ---

func (s *CatalogService) AddVariant(ctx context.Context, actor ports.Actor, productID string, input ports.VariantInput) (*domain.ProductVariant, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	variant := &domain.ProductVariant{
		ID:           uuid.NewString(),
		ProductID:    productID,
		Name:         input.Name,
		SKU:          input.SKU,
		Price:        input.Price,
		ComparePrice: input.ComparePrice,
		Colorway:     input.Colorway,
		Size:         input.Size,
		Material:     input.Material,
		IsActive:     input.IsActive,
		SortOrder:    input.SortOrder,
	}

	if input.Image != nil {
		path, err := s.media.Save(ctx, ports.MediaPrefixProductVariants, *input.Image)
		if err != nil {
			return nil, err
		}
		variant.ImagePath = path
	}

	if err := s.variants.Insert(ctx, variant); err != nil {
		return nil, err
	}
	return variant, nil
}

func (s *CatalogService) UpdateVariant(ctx context.Context, actor ports.Actor, id string, input ports.VariantInput) (*domain.ProductVariant, error) {
	variant, err := s.variants.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Image != nil {
		path, err := s.media.Save(ctx, ports.MediaPrefixProductVariants, *input.Image)
		if err != nil {
			return nil, err
		}
		variant.ImagePath = path
	}

	variant.Name = input.Name
	variant.SKU = input.SKU
	variant.Price = input.Price
	variant.ComparePrice = input.ComparePrice
	variant.Colorway = input.Colorway
	variant.Size = input.Size
	variant.Material = input.Material
	variant.IsActive = input.IsActive
	variant.SortOrder = input.SortOrder

	if err := s.variants.Update(ctx, variant); err != nil {
		return nil, err
	}
	return variant, nil
}

func (s *CatalogService) DeleteVariant(ctx context.Context, actor ports.Actor, id string) error {
	if _, err := s.variants.FindByID(ctx, id); err != nil {
		return err
	}
	return s.variants.Delete(ctx, id)
}

// --- Gallery ---

func (s *CatalogService) AddGalleryImage(ctx context.Context, actor ports.Actor, productID string, input ports.GalleryImageInput) (*domain.ProductImage, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	if input.Image == nil {
		return nil, domain.ErrBadImage
	}

	path, err := s.media.Save(ctx, ports.MediaPrefixProductGallery, *input.Image)
	if err != nil {
		return nil, err
	}

	img := &domain.ProductImage{
		ID:        uuid.NewString(),
		ProductID: productID,
		ImagePath: path,
		AltText:   input.AltText,
		SortOrder: input.SortOrder,
		IsActive:  input.IsActive,
	}

	if err := s.images.Insert(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

func (s *CatalogService) DeleteGalleryImage(ctx context.Context, actor ports.Actor, id string) error {
	img, err := s.images.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.images.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.media.Remove(ctx, img.ImagePath); err != nil {
		s.logger.Error().Err(err).Str("path", img.ImagePath).Msg("failed to remove gallery file")
	}
	return nil
}

// Process consumes one bulk-upload row through the standard create path,
// satisfying ports.RowProcessor for the ingest dispatcher.
func (s *CatalogService) Process(ctx context.Context, job ports.ProductRowJob) error {
	_, err := s.CreateProduct(ctx, job.Actor, job.Input)
	return err
}
