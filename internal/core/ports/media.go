package ports

import "context"

// Stable path prefixes for stored media. External asset pipelines depend on
// this layout; do not rename.
const (
	MediaPrefixAvatars         = "avatars"
	MediaPrefixCategories      = "categories"
	MediaPrefixProducts        = "products"
	MediaPrefixProductGallery  = "products/gallery"
	MediaPrefixProductVariants = "products/variants"
)

// MediaStore persists uploaded images. Save decodes the upload, downsizes it
// to fit within the normalization box when needed, and writes it under the
// given prefix, returning the stored relative path. A file that cannot be
// decoded is rejected with domain.ErrBadImage and nothing is written.
type MediaStore interface {
	Save(ctx context.Context, prefix string, upload Upload) (string, error)
	Remove(ctx context.Context, path string) error
}
